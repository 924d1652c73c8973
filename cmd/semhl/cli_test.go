package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// semhlBin is the path to the compiled binary, set by TestMain. It is built
// without the libclang tag, so these tests cover everything but parsing.
var semhlBin string

func TestMain(m *testing.M) {
	// Build binary once for all tests.
	tmp, err := os.MkdirTemp("", "semhl-cli-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create temp dir: %v\n", err)
		os.Exit(1)
	}

	semhlBin = filepath.Join(tmp, "semhl")
	cmd := exec.Command("go", "build", "-o", semhlBin, ".")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.RemoveAll(tmp)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// runSemhl executes the binary in dir with args, returns stdout, stderr, exit code.
func runSemhl(t *testing.T, dir string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(semhlBin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "NO_COLOR=1")

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("exec error (not ExitError): %v", err)
		}
	}
	return
}

func TestGroups(t *testing.T) {
	stdout, _, exit := runSemhl(t, t.TempDir(), "groups")
	if exit != 0 {
		t.Fatalf("exit %d", exit)
	}
	for _, want := range []string{"hi default link Keyword Keyword", "hi default link FunctionCall ", "hi default link Identifier "} {
		if !strings.Contains(stdout, want) {
			t.Errorf("groups output missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfig_Defaults(t *testing.T) {
	stdout, _, exit := runSemhl(t, t.TempDir(), "config")
	if exit != 0 {
		t.Fatalf("exit %d", exit)
	}
	for _, want := range []string{"Root:", "Socket:", "not running", "-std=c++17", "log_level: warn"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfig_InitThenFlagAppends(t *testing.T) {
	dir := t.TempDir()
	if _, _, exit := runSemhl(t, dir, "config", "init"); exit != 0 {
		t.Fatalf("config init exit %d", exit)
	}
	if _, err := os.Stat(filepath.Join(dir, ".semhl.yaml")); err != nil {
		t.Fatalf(".semhl.yaml not written: %v", err)
	}

	stdout, _, exit := runSemhl(t, dir, "config", "--flag=-DNDEBUG")
	if exit != 0 {
		t.Fatalf("exit %d", exit)
	}
	if !strings.Contains(stdout, "-DNDEBUG") {
		t.Errorf("extra flag not applied:\n%s", stdout)
	}

	// A second init refuses to overwrite.
	_, stderr, exit := runSemhl(t, dir, "config", "init")
	if exit != 1 || !strings.Contains(stderr, "already exists") {
		t.Errorf("second init: exit %d, stderr: %s", exit, stderr)
	}
}

func TestConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".semhl.yaml"), "log_level: loud\n")

	_, stderr, exit := runSemhl(t, dir, "config")
	if exit != 1 {
		t.Fatalf("exit %d, want 1", exit)
	}
	if !strings.Contains(stderr, "unknown log level") {
		t.Errorf("stderr: %s", stderr)
	}
}

func TestHighlight_WithoutFrontend(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.c"), "int x = 1;\n")

	stdout, stderr, exit := runSemhl(t, dir, "highlight", "x.c")
	if exit != 1 {
		t.Fatalf("exit %d, want 1", exit)
	}
	if stdout != "" {
		t.Errorf("nothing should reach stdout:\n%s", stdout)
	}
	if !strings.Contains(stderr, "not compiled in") || !strings.Contains(stderr, "semhl doctor") {
		t.Errorf("stderr should explain the missing frontend:\n%s", stderr)
	}
}

func TestHighlight_PatternWithoutMatches(t *testing.T) {
	_, stderr, exit := runSemhl(t, t.TempDir(), "highlight", "src/**/*.cpp")
	if exit != 1 {
		t.Fatalf("exit %d, want 1", exit)
	}
	if !strings.Contains(stderr, "matched no files") {
		t.Errorf("stderr: %s", stderr)
	}
}

func TestHighlight_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.c"), "int x;\n")

	_, stderr, exit := runSemhl(t, dir, "highlight", "--format", "html", "x.c")
	if exit != 1 || !strings.Contains(stderr, `unknown format "html"`) {
		t.Errorf("exit %d, stderr: %s", exit, stderr)
	}
}

func TestDaemon_StatusAndStopWhenNotRunning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".semhl.yaml"), "socket: "+filepath.Join(dir, "d.sock")+"\n")

	stdout, _, exit := runSemhl(t, dir, "daemon", "status")
	if exit != 0 || !strings.Contains(stdout, "not running") {
		t.Errorf("status: exit %d, stdout: %s", exit, stdout)
	}
	stdout, _, exit = runSemhl(t, dir, "daemon", "stop")
	if exit != 0 || !strings.Contains(stdout, "not running") {
		t.Errorf("stop: exit %d, stdout: %s", exit, stdout)
	}
}
