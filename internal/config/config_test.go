package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, path, err := LoadSettings(context.Background(), LoadOptions{
		ProjectDir: t.TempDir(),
		ConfigDir:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want none", path)
	}
	if s.Log.Level != "warn" || !s.History.Enabled || s.Templates.Dir != "" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestLoadSettings_ProjectFile(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, ".express-ts-gen.yaml", "log:\n  level: debug\nhistory:\n  enabled: false\ngeneration:\n  skip_tests: true\n")

	s, path, err := LoadSettings(context.Background(), LoadOptions{ProjectDir: project, ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !strings.HasSuffix(path, ".express-ts-gen.yaml") {
		t.Errorf("resolved path = %q", path)
	}
	if s.Log.Level != "debug" || s.History.Enabled || !s.Generation.SkipTests {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadSettings_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "custom.toml", "[templates]\ndir = \"/srv/templates\"\n")

	s, path, err := LoadSettings(context.Background(), LoadOptions{SettingsFile: file})
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if path != file {
		t.Errorf("resolved path = %q, want %q", path, file)
	}
	if s.Templates.Dir != "/srv/templates" {
		t.Errorf("templates.dir = %q", s.Templates.Dir)
	}
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("EXPRESS_TS_GEN_LOG_LEVEL", "INFO")

	s, _, err := LoadSettings(context.Background(), LoadOptions{ProjectDir: t.TempDir(), ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", s.Log.Level)
	}
}

func TestLoadSettings_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "log:\n  level: chatty\n")

	tests := []struct {
		name string
		opts LoadOptions
	}{
		{"missing explicit file", LoadOptions{SettingsFile: filepath.Join(dir, "nope.yaml")}},
		{"invalid level", LoadOptions{SettingsFile: bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := LoadSettings(context.Background(), tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadSettings_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := LoadSettings(ctx, LoadOptions{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		key     string
		want    any
		wantErr string
	}{
		{name: "json", file: "o.json", data: `{"author": "jo", "port": 3307}`, key: "author", want: "jo"},
		{name: "yaml", file: "o.yaml", data: "author: jo\ntimestamps: false\n", key: "timestamps", want: false},
		{name: "yml", file: "o.yml", data: "dbName: shop\n", key: "dbName", want: "shop"},
		{name: "toml", file: "o.toml", data: "envVar = \"SHOP_URI\"\n", key: "envVar", want: "SHOP_URI"},
		{name: "json without extension", file: "generator-config", data: `{"force": true}`, key: "force", want: true},
		{name: "json with other extension", file: "o.conf", data: `{"dbName": "shop"}`, key: "dbName", want: "shop"},
		{name: "other extension not json", file: "o.ini", data: "a=b", wantErr: "failed to parse"},
		{name: "not an object", file: "o.json", data: `[1, 2]`, wantErr: "failed to parse"},
		{name: "malformed", file: "o.yaml", data: "a: [", wantErr: "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOverrides(tt.file, []byte(tt.data))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParseOverrides() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOverrides() error = %v", err)
			}
			if got[tt.key] != tt.want {
				t.Errorf("%s = %v (%T), want %v", tt.key, got[tt.key], got[tt.key], tt.want)
			}
		})
	}
}
