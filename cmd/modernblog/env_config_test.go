package main

// Notes:
// - The process environment is injected through Environment, so these tests
//   run in parallel without t.Setenv.
// - godotenv parsing itself is not retested; we check that .env values fill
//   gaps and never override the real environment.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-modernblog/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadProcessEnv - .env layering
// ---------------------------------------------------------------------------

func TestLoadProcessEnv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dotEnv := filepath.Join(dir, ".env")
	content := "MODERNBLOG_BASE_PATH=/from-file/\nMODERNBLOG_DOMAIN=file.example.com\n"
	if err := os.WriteFile(dotEnv, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	env, _, _ := testEnv(map[string]string{"MODERNBLOG_BASE_PATH": "/real/"})
	env.DotEnv = dotEnv

	p, err := loadProcessEnv(env)
	if err != nil {
		t.Fatalf("loadProcessEnv() error = %v", err)
	}

	if v, _ := p.Lookup("MODERNBLOG_BASE_PATH"); v != "/real/" {
		t.Errorf("real environment should win, got %q", v)
	}
	if v, _ := p.Lookup("MODERNBLOG_DOMAIN"); v != "file.example.com" {
		t.Errorf(".env value should fill the gap, got %q", v)
	}
	if _, ok := p.Lookup("MODERNBLOG_WORKERS"); ok {
		t.Error("unset variable reported as set")
	}
}

func TestLoadProcessEnv_MissingFile(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	env.DotEnv = filepath.Join(t.TempDir(), ".env")

	if _, err := loadProcessEnv(env); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestLoadProcessEnv_Unreadable(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	env.DotEnv = t.TempDir() // a directory cannot be read as a file

	if _, err := loadProcessEnv(env); err == nil {
		t.Error("expected error for unreadable .env")
	}
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want envConfig
	}{
		{
			name: "all variables",
			vars: map[string]string{
				"MODERNBLOG_CONFIG":      "site.yaml",
				"MODERNBLOG_BASE_PATH":   " /blog ",
				"MODERNBLOG_DOMAIN":      " blog.example.com ",
				"MODERNBLOG_CONTENT_DIR": "posts",
				"MODERNBLOG_OUTPUT_DIR":  "out",
				"MODERNBLOG_WORKERS":     "4",
			},
			want: envConfig{
				ConfigPath: "site.yaml",
				BasePath:   "/blog/",
				Domain:     "blog.example.com",
				ContentDir: "posts",
				OutputDir:  "out",
				Workers:    4,
			},
		},
		{
			name: "nothing set",
			vars: nil,
			want: envConfig{},
		},
		{
			name: "blank base path ignored",
			vars: map[string]string{"MODERNBLOG_BASE_PATH": "  "},
			want: envConfig{},
		},
		{
			name: "invalid workers ignored",
			vars: map[string]string{"MODERNBLOG_WORKERS": "many"},
			want: envConfig{},
		},
		{
			name: "negative workers ignored",
			vars: map[string]string{"MODERNBLOG_WORKERS": "-2"},
			want: envConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, _ := testEnv(tt.vars)
			p, err := loadProcessEnv(env)
			if err != nil {
				t.Fatalf("loadProcessEnv() error = %v", err)
			}
			if got := *loadEnvConfig(p); got != tt.want {
				t.Errorf("loadEnvConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"HOME",
		"MODERNBLOG_BASE_PATH",
		"MODERNBLOG_BASEPATH",
		"MODERNBLOG_WORKER",
	})

	out := buf.String()
	for _, want := range []string{"MODERNBLOG_BASEPATH", "MODERNBLOG_WORKER "} {
		if !strings.Contains(out, want) {
			t.Errorf("missing warning for %q in %q", want, out)
		}
	}
	if strings.Contains(out, "MODERNBLOG_BASE_PATH") || strings.Contains(out, "HOME") {
		t.Errorf("unexpected warning in %q", out)
	}
}

func TestProcessEnvNames(t *testing.T) {
	t.Parallel()

	p := &processEnv{dotEnv: map[string]string{"MODERNBLOG_DOMAIN": "x", "A": "1"}}
	got := p.names([]string{"A=2", "B=3=4"})
	want := []string{"A", "B", "MODERNBLOG_DOMAIN"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("names() = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Site.BasePath = "/file/"
	cfg.Site.Domain = "file.example.com"

	applyEnvConfig(&envConfig{BasePath: "/env/", OutputDir: "public", Workers: 3}, cfg)

	if cfg.Site.BasePath != "/env/" {
		t.Errorf("BasePath = %q, want env value", cfg.Site.BasePath)
	}
	if cfg.Site.Domain != "file.example.com" {
		t.Errorf("Domain = %q, unset env must keep file value", cfg.Site.Domain)
	}
	if cfg.Output.Dir != "public" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Content.Dir != config.DefaultContentDir {
		t.Errorf("Content.Dir = %q, want default", cfg.Content.Dir)
	}
	if cfg.Build.Workers != 3 {
		t.Errorf("Workers = %d", cfg.Build.Workers)
	}
}
