package command_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"better/internal/command"
)

func TestParseAndExpandKeepsArgumentsIntact(t *testing.T) {
	tmpl, err := command.Parse("ffmpeg -threads 1 -i {input} -acodec alac {output}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tmpl.Binary() != "ffmpeg" {
		t.Fatalf("unexpected binary %q", tmpl.Binary())
	}
	if got := tmpl.Placeholders(); !reflect.DeepEqual(got, []string{"input", "output"}) {
		t.Fatalf("unexpected placeholders %v", got)
	}

	argv, err := tmpl.Expand(map[string]string{
		"input":  "/music/It's $(rm -rf ~) ; `x`.flac",
		"output": "/out/a b.m4a",
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{"ffmpeg", "-threads", "1", "-i", "/music/It's $(rm -rf ~) ; `x`.flac", "-acodec", "alac", "/out/a b.m4a"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
}

func TestExpandSubstitutesInsideArguments(t *testing.T) {
	tmpl := command.MustParse("tool --out={output}.tmp")
	argv, err := tmpl.Expand(map[string]string{"output": "x"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if argv[1] != "--out=x.tmp" {
		t.Fatalf("unexpected arg %q", argv[1])
	}
}

func TestParseHonoursQuotedArguments(t *testing.T) {
	tmpl := command.MustParse(`ffmpeg -i {input} -metadata "comment=ripped by me" -metadata 'title={input}' {output}`)
	argv, err := tmpl.Expand(map[string]string{"input": "a.flac", "output": "a.mp3"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{"ffmpeg", "-i", "a.flac", "-metadata", "comment=ripped by me", "-metadata", "title=a.flac", "a.mp3"}
	if !reflect.DeepEqual(argv, want) {
		t.Fatalf("argv = %q, want %q", argv, want)
	}
}

func TestParseRejectsUnterminatedQuote(t *testing.T) {
	if _, err := command.Parse(`ffmpeg -metadata "comment=open {output}`); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestExpandRejectsUnknownPlaceholder(t *testing.T) {
	tmpl := command.MustParse("mktorrent -a {announce} {source}")
	if _, err := tmpl.Expand(map[string]string{"source": "/x"}); err == nil {
		t.Fatal("expected error for missing announce value")
	}
}

func TestParseRejectsInvalidTemplates(t *testing.T) {
	for _, raw := range []string{"", "   ", "{input} -x"} {
		if _, err := command.Parse(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestAvailable(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "present-tool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)

	if err := command.MustParse("present-tool {input}").Available(); err != nil {
		t.Fatalf("expected tool to be available: %v", err)
	}
	err := command.MustParse("clearly-not-present-binary {input}").Available()
	if !errors.Is(err, command.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExecExecutorCapturesStderrAndExitCode(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fail.sh")
	body := "#!/bin/sh\nprintf 'bad input\\377\\n' >&2\necho ignored\nexit 3\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	stderr, err := command.ExecExecutor{}.Run(context.Background(), []string{script})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if code := command.ExitCode(err); code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
	if got := command.DecodeOutput(stderr); got != "bad input" {
		t.Fatalf("unexpected decoded stderr %q", got)
	}
	if strings.Contains(string(stderr), "ignored") {
		t.Fatal("stdout should not be captured")
	}
}

func TestExitCode(t *testing.T) {
	if command.ExitCode(nil) != 0 {
		t.Fatal("expected 0 for nil error")
	}
	if command.ExitCode(errors.New("boom")) != -1 {
		t.Fatal("expected -1 for non-exit error")
	}
}
