package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunCheck_PrintsTableAndFailsOnMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1":
			w.Write([]byte(`{"status": "ok"}`))
		case "/v1/page":
			w.Write([]byte(`<html>maintenance</html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	file := writeFile(t, "endpoints.json", fmt.Sprintf(`[
		{"name": "api", "path": "%s/v1/", "keys": "status",
		 "more": [{"name": "page", "path": "page", "format": "html", "regx": "welcome"}]}
	]`, srv.URL))

	cfg.LogDir = t.TempDir()
	cfg.RetryAttempts = 1
	checkOpts.endpoints = file
	checkOpts.maxLevel = 3
	checkOpts.minItems = 1
	checkOpts.asJSON = false
	checkOpts.quiet = false
	checkOpts.saveDir = t.TempDir()

	var out, errOut bytes.Buffer
	err := runCheck(context.Background(), &out, &errOut)
	if !errors.Is(err, errFailures) {
		t.Fatalf("want errFailures, got %v", err)
	}
	s := out.String()
	for _, want := range []string{"api", srv.URL + "/v1", "FAIL", "cannot find `welcome` in response data from: " + srv.URL + "/v1/page"} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
	if !strings.Contains(errOut.String(), "Jupiter: Failure in checking endpoint - page") {
		t.Fatalf("alarm not printed to stderr: %q", errOut.String())
	}
}
