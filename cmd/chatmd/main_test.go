package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path}, nil)
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	reader, closer, err = openInputs([]string{"file://" + path}, nil)
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("stream"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL}, nil)
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "stream" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second}, nil)
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	defer func() { _ = closer.Close() }()
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenInputsDefaultsToStdin(t *testing.T) {
	stdin := strings.NewReader("piped")
	reader, closer, err := openInputs(nil, stdin)
	if err != nil || closer != nil {
		t.Fatalf("openInputs stdin: %v %v", closer, err)
	}
	if reader != stdin {
		t.Fatalf("expected stdin reader")
	}
}

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":  true,
		"off": false,
		"1":   true,
		"0":   false,
	}
	for input, want := range cases {
		got, err := resolveOSC8(input)
		if err != nil {
			t.Fatalf("resolveOSC8(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("resolveOSC8(%q)=%v want %v", input, got, want)
		}
	}
	if _, err := resolveOSC8("nope"); err == nil {
		t.Fatalf("expected error for invalid osc8 value")
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRunHTML(t *testing.T) {
	out, errOut, code := runCLI(t, "H~2~O[^n]\n\n[^n]: note\n", "--doc-id", "m7")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "<sub>2</sub>") {
		t.Fatalf("missing subscript: %s", out)
	}
	if !strings.Contains(out, `href="#fn-m7-1"`) {
		t.Fatalf("missing doc id anchor: %s", out)
	}
}

func TestRunText(t *testing.T) {
	out, errOut, code := runCLI(t, "::: tip\nx^2^\n:::\n", "--format", "text", "--boring", "--locale", "en", "--osc8", "off")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	want := "┃ TIP: Tip\n┃ x²\n"
	if out != want {
		t.Fatalf("unexpected text output:\n%q\nwant\n%q", out, want)
	}
}

func TestRunSimulateWritesFinalRenderOnce(t *testing.T) {
	src := "# Streamed\n\nA message with *emphasis* arriving in small pieces.\n"
	out, errOut, code := runCLI(t, src, "--simulate", "--simulate-chunk", "5", "--simulate-delay", "0s")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if strings.Count(out, "<h1>") != 1 {
		t.Fatalf("expected one final render, got: %s", out)
	}
	plain, _, _ := runCLI(t, src)
	if out != plain {
		t.Fatalf("simulated output differs:\n%s\nvs\n%s", out, plain)
	}
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatmd.yaml")
	cfg := "extensions:\n  - name: subsup\n    enabled: false\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, errOut, code := runCLI(t, "H~2~O\n", "--config", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if strings.Contains(out, "<sub>") {
		t.Fatalf("subsup should be disabled: %s", out)
	}

	if err := os.WriteFile(path, []byte("extensions:\n  - name: nope\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, code := runCLI(t, "x\n", "--config", path); code != 1 {
		t.Fatalf("expected exit 1 for unknown extension, got %d", code)
	}
}

func TestRunMaterializesWithCommands(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	out, errOut, code := runCLI(t, "$x+1$\n", "--typeset-cmd", "cat")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, `data-processed="true"`) {
		t.Fatalf("formula not materialized: %s", out)
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	if _, _, code := runCLI(t, "", "--format", "pdf"); code != 2 {
		t.Fatalf("expected exit 2 for bad format, got %d", code)
	}
	if _, _, code := runCLI(t, "", "--log-level", "loud"); code != 2 {
		t.Fatalf("expected exit 2 for bad log level, got %d", code)
	}
	if _, _, code := runCLI(t, "", "--format", "text", "--theme", "nope"); code != 2 {
		t.Fatalf("expected exit 2 for unknown theme, got %d", code)
	}
	if _, _, code := runCLI(t, "\x00\x01binary"); code != 1 {
		t.Fatalf("expected exit 1 for binary input, got %d", code)
	}
}

func TestListThemes(t *testing.T) {
	out, _, code := runCLI(t, "", "--list-themes")
	if code != 0 || !strings.Contains(out, "default\n") {
		t.Fatalf("unexpected theme list (%d): %q", code, out)
	}
}

func TestParseCommand(t *testing.T) {
	argv, err := parseCommand(`mmdc -i - -o - --title "two words"`)
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if len(argv) != 7 || argv[6] != "two words" {
		t.Fatalf("unexpected argv: %q", argv)
	}
	if _, err := parseCommand("   "); err == nil {
		t.Fatalf("expected error for empty command")
	}
	if _, err := parseCommand(`katex "unterminated`); err == nil {
		t.Fatalf("expected error for unterminated quote")
	}
}
