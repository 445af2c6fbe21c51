package buildinfo

import (
	"runtime"
	"testing"
)

func withVars(t *testing.T, version, commit, buildTime, goVersion string) {
	t.Helper()
	oldV, oldC, oldB, oldG := Version, Commit, BuildTime, GoVersion
	Version, Commit, BuildTime, GoVersion = version, commit, buildTime, goVersion
	t.Cleanup(func() {
		Version, Commit, BuildTime, GoVersion = oldV, oldC, oldB, oldG
	})
}

func TestGet(t *testing.T) {
	withVars(t, "v1.2.3", "abc123", "2026-01-01T00:00:00Z", "go1.24.4")

	info := Get()
	want := Info{
		Version:   "v1.2.3",
		Commit:    "abc123",
		BuildTime: "2026-01-01T00:00:00Z",
		GoVersion: "go1.24.4",
	}
	if info != want {
		t.Errorf("Get() = %+v, want %+v", info, want)
	}
}

func TestGet_GoVersionFallback(t *testing.T) {
	withVars(t, "dev", "unknown", "unknown", "")

	if got := Get().GoVersion; got != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", got, runtime.Version())
	}
}

func TestStringAndUserAgent(t *testing.T) {
	withVars(t, "v0.9.0", "deadbeef", "now", "")

	if got := String(); got != "v0.9.0 (deadbeef) built at now" {
		t.Errorf("String() = %q", got)
	}
	if got := UserAgent(); got != "endpointauth/v0.9.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}
