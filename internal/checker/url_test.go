package checker

import "testing"

func TestValidURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://abc/v0", true},
		{"http://foobar/v1", true},
		{"https://example.com:8443/x?y=1", true},
		{"bad/foobar/v3", false},
		{"", false},
		{"https://", false},
		{"//host/only", false},
		{"http://[::1", false},
		{"localhost:8080/x", false},
	}
	for _, c := range cases {
		if got := ValidURL(c.in); got != c.want {
			t.Fatalf("ValidURL(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestSanitize_StripsOneSlash(t *testing.T) {
	cases := map[string]string{
		"https://abc/v0/":  "https://abc/v0",
		"https://abc/v0//": "https://abc/v0/",
		"https://abc/v0":   "https://abc/v0",
	}
	for in, want := range cases {
		if got := sanitize(in); got != want {
			t.Fatalf("sanitize(%q)=%q want %q", in, got, want)
		}
	}
}

func TestEffectivePath(t *testing.T) {
	cases := []struct {
		base, in, want string
	}{
		{"", "bad/foobar/v3", "bad/foobar/v3"},
		{"https://abc/v0", "status", "https://abc/v0/status"},
		{"https://abc/v0", "/status", "https://abc/v0/status"},
		{"https://abc/v0", "https://other/x", "https://other/x"},
		{"https://abc/v0", "", "https://abc/v0"},
		{"https://abc/v0", "ftp:only", "ftp:only"},
	}
	for _, c := range cases {
		if got := effectivePath(c.base, c.in); got != c.want {
			t.Fatalf("effectivePath(%q, %q)=%q want %q", c.base, c.in, got, c.want)
		}
	}
}
