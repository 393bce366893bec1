package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDotEnv(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write dotenv file: %v", err)
	}
	return path
}

func TestLoadDotEnv_SetsVariables(t *testing.T) {
	path := writeDotEnv(t, `
# comment line
LABORCALC_TEST_PLAIN=hello
export LABORCALC_TEST_EXPORTED=world
LABORCALC_TEST_QUOTED="quoted value"
LABORCALC_TEST_SINGLE='single quoted'
not-a-pair
=novalue
`)
	for _, key := range []string{
		"LABORCALC_TEST_PLAIN", "LABORCALC_TEST_EXPORTED",
		"LABORCALC_TEST_QUOTED", "LABORCALC_TEST_SINGLE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv returned error: %v", err)
	}

	cases := map[string]string{
		"LABORCALC_TEST_PLAIN":    "hello",
		"LABORCALC_TEST_EXPORTED": "world",
		"LABORCALC_TEST_QUOTED":   "quoted value",
		"LABORCALC_TEST_SINGLE":   "single quoted",
	}
	for key, want := range cases {
		if got := os.Getenv(key); got != want {
			t.Fatalf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoadDotEnv_DoesNotOverwriteExisting(t *testing.T) {
	path := writeDotEnv(t, "LABORCALC_TEST_KEEP=from_file\n")
	t.Setenv("LABORCALC_TEST_KEEP", "from_env")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv returned error: %v", err)
	}
	if got := os.Getenv("LABORCALC_TEST_KEEP"); got != "from_env" {
		t.Fatalf("existing variable overwritten: %q", got)
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}
