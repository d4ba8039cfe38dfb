package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func mustLoad(t *testing.T, path string) *Config {
	t.Helper()
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}
	return cfg
}

func TestLoad_DefaultsApplied(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	cfg := mustLoad(t, writeConfig(t, t.TempDir(), "tmdb:\n  api_key: abc123\n"))

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"api key", cfg.TMDB.APIKey, "abc123"},
		{"language", cfg.TMDB.Language, "id-ID"},
		{"base url", cfg.TMDB.BaseURL, "https://api.themoviedb.org/3"},
		{"max attempts", cfg.TMDB.MaxAttempts, 3},
		{"debounce", cfg.UI.DebounceMs, 500},
		{"addr", cfg.Server.Addr, ":8080"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, c.got)
		}
	}
	if cfg.Warmup.OnStartup == nil || !*cfg.Warmup.OnStartup {
		t.Error("expected warmup.on_startup to default to true")
	}
}

func TestLoad_EnvOverridesKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")
	cfg := mustLoad(t, writeConfig(t, t.TempDir(), "tmdb:\n  api_key: from-file\n  language: en-US\n"))

	if cfg.TMDB.APIKey != "from-env" {
		t.Errorf("expected key from environment, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("expected language en-US, got %q", cfg.TMDB.Language)
	}
}

func TestLoad_ExpandsEnvInYAML(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	t.Setenv("MOVIEDECK_TEST_ADDR", ":9999")
	cfg := mustLoad(t, writeConfig(t, t.TempDir(), "tmdb:\n  api_key: k\nserver:\n  addr: ${MOVIEDECK_TEST_ADDR}\n"))

	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected expanded addr :9999, got %q", cfg.Server.Addr)
	}
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-only")
	cfg := mustLoad(t, filepath.Join(t.TempDir(), "absent.yaml"))

	if cfg.TMDB.APIKey != "env-only" {
		t.Errorf("expected key from environment, got %q", cfg.TMDB.APIKey)
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		env     string
		body    string
		wantErr string
	}{
		{"placeholder key", "", "tmdb:\n  api_key: your_api_key_here\n", "API key is required"},
		{"invalid yaml", "k", "tmdb: [unclosed\n", "failed to parse config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(APIKeyEnv, tc.env)
			_, err := Load(writeConfig(t, t.TempDir(), tc.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidate_WarmupInterval(t *testing.T) {
	cfg := &Config{TMDB: TMDBConfig{APIKey: "k"}, Warmup: WarmupConfig{Enabled: true, IntervalMinutes: -1}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected a negative warmup interval to be rejected")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	dir := t.TempDir()
	path := writeConfig(t, dir, "tmdb:\n  api_key: k\n  language: id-ID\n")

	var reloads atomic.Int32
	var lastLanguage atomic.Value
	w, err := NewWatcher(path, 20*time.Millisecond, func(cfg *Config) {
		reloads.Add(1)
		lastLanguage.Store(cfg.TMDB.Language)
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	// Several quick writes should coalesce into a single reload.
	for i := 0; i < 3; i++ {
		writeConfig(t, dir, "tmdb:\n  api_key: k\n  language: en-US\n")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if v, _ := lastLanguage.Load().(string); v == "en-US" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("config was not reloaded after the file changed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if n := reloads.Load(); n > 2 {
		t.Errorf("expected debounced reloads, got %d", n)
	}
}
