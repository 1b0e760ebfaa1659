// ABOUTME: Tests for .env loading: parsing, quoting, comments, and no-clobber semantics.
// ABOUTME: Uses t.Setenv for isolation so the process environment is restored per test.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDotEnvBasic(t *testing.T) {
	t.Setenv("CARDPRESS_TEST_BASIC", "")
	os.Unsetenv("CARDPRESS_TEST_BASIC")

	path := writeDotEnv(t, "CARDPRESS_TEST_BASIC=hello\n")
	loadDotEnv(path)

	if got := os.Getenv("CARDPRESS_TEST_BASIC"); got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
}

func TestLoadDotEnvDoesNotClobber(t *testing.T) {
	t.Setenv("CARDPRESS_TEST_KEEP", "original")

	path := writeDotEnv(t, "CARDPRESS_TEST_KEEP=overwritten\n")
	loadDotEnv(path)

	if got := os.Getenv("CARDPRESS_TEST_KEEP"); got != "original" {
		t.Errorf("got %q, want original", got)
	}
}

func TestLoadDotEnvQuotesAndComments(t *testing.T) {
	for _, name := range []string{"CARDPRESS_TEST_DQ", "CARDPRESS_TEST_SQ", "CARDPRESS_TEST_EXP"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	path := writeDotEnv(t, `# a comment
CARDPRESS_TEST_DQ="double quoted"
CARDPRESS_TEST_SQ='single quoted'
export CARDPRESS_TEST_EXP=exported

not-a-pair
`)
	loadDotEnv(path)

	tests := []struct{ key, want string }{
		{"CARDPRESS_TEST_DQ", "double quoted"},
		{"CARDPRESS_TEST_SQ", "single quoted"},
		{"CARDPRESS_TEST_EXP", "exported"},
	}
	for _, tc := range tests {
		if got := os.Getenv(tc.key); got != tc.want {
			t.Errorf("%s = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestLoadDotEnvValueWithEquals(t *testing.T) {
	t.Setenv("CARDPRESS_TEST_EQ", "")
	os.Unsetenv("CARDPRESS_TEST_EQ")

	path := writeDotEnv(t, "CARDPRESS_TEST_EQ=a=b=c\n")
	loadDotEnv(path)

	if got := os.Getenv("CARDPRESS_TEST_EQ"); got != "a=b=c" {
		t.Errorf("got %q, want a=b=c", got)
	}
}

func TestLoadDotEnvMissingFileIsSilent(t *testing.T) {
	loadDotEnv(filepath.Join(t.TempDir(), "does-not-exist"))
}
