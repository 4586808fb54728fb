// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hamed0406/endpointwatch/internal/calendar"
	"github.com/hamed0406/endpointwatch/internal/config"
	"github.com/hamed0406/endpointwatch/internal/endpoint"
)

func main() {
	failed := false
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		failed = true
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg := config.FromEnv()

	specs, err := endpoint.Load(cfg.EndpointsFile)
	if err != nil {
		fail("ENDPOINTS_FILE: " + err.Error())
	} else {
		_, problems, enough := endpoint.Screen(specs, cfg.MinItems)
		for _, p := range problems {
			warn(p)
		}
		if !enough {
			fail(fmt.Sprintf("%s has fewer than MIN_ITEMS=%d usable endpoints", cfg.EndpointsFile, cfg.MinItems))
		} else {
			ok(fmt.Sprintf("%s: %d endpoints", cfg.EndpointsFile, endpoint.Count(specs)))
		}
	}

	if cfg.FallbackEndpointsFile != "" {
		if fb, err := endpoint.Load(cfg.FallbackEndpointsFile); err != nil {
			fail("FALLBACK_ENDPOINTS_FILE: " + err.Error())
		} else {
			ok(fmt.Sprintf("%s: %d fallback endpoints", cfg.FallbackEndpointsFile, endpoint.Count(fb)))
		}
	}

	if len(cfg.AdminAPIKeys) == 0 {
		warn("ADMIN_API_KEYS is empty (POST /api/runs is open).")
	}
	if len(cfg.PublicAPIKeys) == 0 {
		warn("PUBLIC_API_KEYS is empty (read routes are open).")
	}
	for name, v := range map[string]string{"ADMIN_API_KEYS": os.Getenv("ADMIN_API_KEYS"), "PUBLIC_API_KEYS": os.Getenv("PUBLIC_API_KEYS")} {
		if strings.Contains(v, " ") {
			warn(name + " contains spaces; use comma-separated with no spaces, e.g. key1,key2")
		}
	}

	ok("API_ADDR=" + cfg.Addr)

	switch {
	case cfg.DatabaseURL != "":
		ok("DATABASE_URL present (postgres store)")
	case cfg.SQLitePath != "":
		ok("SQLITE_PATH=" + cfg.SQLitePath)
	default:
		ok("RESULTS_DIR=" + cfg.ResultsDir)
	}

	if cfg.SlackWebhook == "" {
		warn("SLACK_WEBHOOK empty; alarms only go to the log.")
	} else {
		ok("SLACK_WEBHOOK present")
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		fail("TIMEZONE: " + err.Error())
	}
	if _, err := calendar.Parse(strings.Join(cfg.Holidays, ",")); err != nil {
		fail("HOLIDAYS: " + err.Error())
	}

	if failed {
		os.Exit(1)
	}
	ok("preflight passed")
}
