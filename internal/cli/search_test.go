package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fareplan/pkg/trip"
)

func TestSearchOptsInclusion(t *testing.T) {
	tests := []struct {
		name string
		opts searchOpts
		want trip.Inclusion
	}{
		{"default", searchOpts{}, trip.IncludeEither},
		{"with", searchOpts{withOpt: true}, trip.IncludeOnly},
		{"without", searchOpts{withoutOpt: true}, trip.IncludeNever},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.inclusion(); got != tt.want {
				t.Errorf("inclusion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultKeyDeterministic(t *testing.T) {
	cfg := trip.DefaultConfig()
	opts := trip.Options{Window: "mid", TopN: 5}

	k1, err := resultKey([]byte("fares"), cfg, opts)
	if err != nil {
		t.Fatalf("resultKey: %v", err)
	}
	k2, err := resultKey([]byte("fares"), cfg, opts)
	if err != nil {
		t.Fatalf("resultKey: %v", err)
	}
	if k1 != k2 {
		t.Error("identical inputs must produce identical keys")
	}

	k3, _ := resultKey([]byte("fares"), cfg, trip.Options{Window: "late", TopN: 5})
	if k1 == k3 {
		t.Error("different options must produce different keys")
	}
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Home != trip.DefaultConfig().Home {
		t.Errorf("empty path should load the built-in scenario, got home %s", cfg.Home)
	}
}

func TestRunSearchWithoutFareFile(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	opts := searchOpts{topN: 3, cacheFlags: cacheFlags{noCache: true}}
	run, err := runSearch(ctx, opts)
	if err != nil {
		t.Fatalf("runSearch: %v", err)
	}

	if run.cached {
		t.Error("first run with caching disabled cannot be a cache hit")
	}
	if len(run.results.Ranked) == 0 {
		t.Error("built-in scenario should yield itineraries even without fares")
	}
	if len(run.results.Ranked) > 3 {
		t.Errorf("ranked list has %d entries, want at most 3", len(run.results.Ranked))
	}
}

func TestRunSearchUnknownWindow(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	opts := searchOpts{window: "never", cacheFlags: cacheFlags{noCache: true}}
	if _, err := runSearch(ctx, opts); err == nil {
		t.Error("unknown window should fail")
	}
}
