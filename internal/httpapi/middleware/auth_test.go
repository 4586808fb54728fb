package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAdmin_AllowsAdminKey_BlocksPublicKey(t *testing.T) {
	keys := Keys{
		Public: []string{"pub_key"},
		Admin:  []string{"adm_key"},
	}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"admin x-api-key", "X-API-Key", "adm_key", http.StatusOK},
		{"admin bearer", "Authorization", "Bearer adm_key", http.StatusOK},
		{"public key", "X-API-Key", "pub_key", http.StatusForbidden},
		{"missing key", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/runs", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			RequireAdmin(keys)(okHandler).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireAny_AcceptsBothKindsAndOpenWhenUnconfigured(t *testing.T) {
	keys := Keys{Public: []string{"pub_key"}, Admin: []string{"adm_key"}}
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	for _, k := range []string{"pub_key", "adm_key"} {
		req := httptest.NewRequest(http.MethodGet, "/api/endpoints", nil)
		req.Header.Set("Authorization", "bearer "+k)
		rec := httptest.NewRecorder()
		RequireAny(keys)(okHandler).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: want 200 got %d", k, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/endpoints", nil)
	req.Header.Set("X-API-Key", "nope")
	rec := httptest.NewRecorder()
	RequireAny(keys)(okHandler).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unknown key: want 403 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RequireAny(Keys{})(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("no keys configured should allow, got %d", rec.Code)
	}
}
