package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns stdout and stderr.
// Flag values are reset first, cobra keeps them between runs.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	runCleanups()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// project creates a temp dir with a cache-less regionorm.toml and files.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	files["regionorm.toml"] = "[run]\ncache = false\n"
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestNormalizeCommandPrintsFile(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f(x: &u8) -> &u8;\n"})
	stdout, stderr, err := execute(t, "normalize", filepath.Join(root, "a.rsig"))
	if err != nil {
		t.Fatalf("normalize: %v (stderr %q)", err, stderr)
	}
	if want := "fn f<'__f0>(x: &'__f0 u8) -> &'__f0 u8;\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestNormalizeCommandWrite(t *testing.T) {
	root := project(t, map[string]string{
		"a.rsig":     "/// Foo accessors\nimpl Foo { // hot\n    fn get(&self) -> &u8; // borrowed\n}\n",
		"sub/b.rsig": "fn g<'a>(x: &'a u8) -> &'a u8;\n",
	})
	stdout, stderr, err := execute(t, "normalize", "--write", "--ui", "off", root)
	if err != nil {
		t.Fatalf("normalize: %v (stderr %q)", err, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	got, err := os.ReadFile(filepath.Join(root, "a.rsig"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "/// Foo accessors\nimpl Foo {\n    // hot\n    fn get<'__f0>(&'__f0 self) -> &'__f0 u8; // borrowed\n}\n"; string(got) != want {
		t.Errorf("a.rsig = %q, want %q", got, want)
	}
	if !strings.Contains(stderr, "normalized "+filepath.ToSlash(filepath.Join(root, "a.rsig"))) {
		t.Errorf("stderr %q does not list a.rsig", stderr)
	}
	if strings.Contains(stderr, "b.rsig") {
		t.Errorf("unchanged b.rsig reported: %q", stderr)
	}
}

func TestNormalizeCommandWarnsOnAmbiguousOutput(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f(x: &u8, y: &u8) -> &u8;\n"})
	_, stderr, err := execute(t, "normalize", filepath.Join(root, "a.rsig"))
	if err != nil {
		t.Fatalf("warnings must not fail the run: %v", err)
	}
	if !strings.Contains(stderr, "NRM4001") {
		t.Errorf("stderr %q lacks NRM4001", stderr)
	}
}

func TestNormalizeCommandSyntaxError(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f(x: &u8 -> &u8;\n"})
	stdout, stderr, err := execute(t, "normalize", filepath.Join(root, "a.rsig"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "SYN") {
		t.Errorf("stderr %q lacks a syntax diagnostic", stderr)
	}
}

func TestNormalizeCommandJSON(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f(x: &u8) -> &u8;\n"})
	stdout, _, err := execute(t, "normalize", "--format", "json", filepath.Join(root, "a.rsig"))
	if err != nil {
		t.Fatal(err)
	}
	var report normalizeReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("bad json %q: %v", stdout, err)
	}
	if len(report.Files) != 1 {
		t.Fatalf("files = %d, want 1", len(report.Files))
	}
	f := report.Files[0]
	if !f.Changed || f.Summary.Generated != 1 || f.Summary.Signatures != 1 {
		t.Errorf("unexpected report %+v", f)
	}
	if f.Output == "" {
		t.Error("output missing")
	}
}

func TestNormalizeCommandRejectsBadFormat(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f();\n"})
	if _, _, err := execute(t, "normalize", "--format", "xml", filepath.Join(root, "a.rsig")); err == nil {
		t.Fatal("expected an error for --format xml")
	}
}

func TestNormalizeCommandRejectsBadConfig(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f();\n"})
	cfg := filepath.Join(root, "bad.toml")
	if err := os.WriteFile(cfg, []byte("[normalize]\nheader_prefix = \"__x\"\nsignature_prefix = \"__x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := execute(t, "--config", cfg, "normalize", filepath.Join(root, "a.rsig"))
	if err == nil {
		t.Fatal("expected overlapping prefixes to be rejected")
	}
}

func TestInspectCommandJSON(t *testing.T) {
	root := project(t, map[string]string{
		"a.rsig": "impl Wrap<'_> {\n    fn get(&self) -> &u8;\n    fn pick(a: &u8, b: &u8) -> &u8;\n}\n",
	})
	stdout, _, err := execute(t, "inspect", "--format", "json", filepath.Join(root, "a.rsig"))
	if err != nil {
		t.Fatal(err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("bad json %q: %v", stdout, err)
	}
	if len(report.Headers) != 1 || report.Headers[0].SelfTy != "Wrap<'__i0>" {
		t.Errorf("headers = %+v", report.Headers)
	}
	if len(report.Signatures) != 2 {
		t.Fatalf("signatures = %+v", report.Signatures)
	}
	get, pick := report.Signatures[0], report.Signatures[1]
	if get.Name != "Wrap<'__i0>::get" || get.Rule != "receiver" || get.Region != "'__f0" {
		t.Errorf("get = %+v", get)
	}
	if pick.Rule != "ambiguous" || pick.Inputs != "multiple" {
		t.Errorf("pick = %+v", pick)
	}
	if len(report.Unresolved) != 1 || report.Unresolved[0].Pos.Line != 3 {
		t.Errorf("unresolved = %+v", report.Unresolved)
	}
}

func TestTokenizeCommand(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f()"})
	stdout, _, err := execute(t, "tokenize", "--format", "json", filepath.Join(root, "a.rsig"))
	if err != nil {
		t.Fatal(err)
	}
	var tokens []map[string]any
	if err := json.Unmarshal([]byte(stdout), &tokens); err != nil {
		t.Fatalf("bad json %q: %v", stdout, err)
	}
	if len(tokens) != 5 {
		t.Errorf("tokens = %d, want 5", len(tokens))
	}
}

func TestVersionCommandJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "regionorm" || !strings.HasPrefix(payload.Semver, "v") {
		t.Errorf("payload = %+v", payload)
	}
	if payload.GitCommit != "" {
		t.Errorf("commit shown without --hash: %q", payload.GitCommit)
	}
}

func TestCacheClean(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	stdout, _, err := execute(t, "cache", "clean")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "not found") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestTraceFlagWritesEvents(t *testing.T) {
	root := project(t, map[string]string{"a.rsig": "fn f(x: &u8) -> &u8;\n"})
	tracePath := filepath.Join(root, "run.ndjson")
	_, _, err := execute(t, "--trace", tracePath, "--trace-level", "debug", "normalize", filepath.Join(root, "a.rsig"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"signature"`) {
		t.Errorf("trace lacks the signature event:\n%s", data)
	}
}
