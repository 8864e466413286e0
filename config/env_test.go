package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	defaults := defaultValues()

	for _, key := range []string{
		"MONGO_URI", "MONGO_DB", "JWT_SECRET", "APP_PORT", "APP_ENV",
		"CORS_ORIGINS", "ADMIN_EMAIL", "ADMIN_PASSWORD", "LOG_TO_MONGO",
		"MAX_BODY_BYTES",
	} {
		if _, ok := defaults[key]; !ok {
			t.Errorf("expected %s in defaults", key)
		}
	}

	if defaults["APP_PORT"] != "5000" {
		t.Errorf("unexpected default port: %s", defaults["APP_PORT"])
	}
	if defaults["ADMIN_PASSWORD"] != "" {
		t.Error("admin password must have no default")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("MAX_BODY_BYTES", "1024")

	if err := loadFromFiles("no-such-config.json", "no-such.env"); err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		mu.Unlock()
	})

	if got := get("APP_PORT", ""); got != "8080" {
		t.Errorf("expected env to override default port, got %q", got)
	}
	if got := get("MAX_BODY_BYTES", "4194304"); got != "1024" {
		t.Errorf("expected MAX_BODY_BYTES from env, got %q", got)
	}
}

func TestDotEnvParsing(t *testing.T) {
	out := defaultValues()

	path := filepath.Join(t.TempDir(), ".env")
	contents := "# comment\nAPP_PORT=7000\nJWT_SECRET=\"quoted-secret\"\n\nbroken-line\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	if err := mergeDotEnv(path, out); err != nil {
		t.Fatalf("merge: %v", err)
	}

	if out["APP_PORT"] != "7000" {
		t.Errorf("unexpected port: %s", out["APP_PORT"])
	}
	if out["JWT_SECRET"] != "quoted-secret" {
		t.Errorf("quotes must be stripped, got %q", out["JWT_SECRET"])
	}
}
