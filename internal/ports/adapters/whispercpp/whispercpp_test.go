package whispercpp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytscribe/internal/errs"
	"ytscribe/internal/execx"
	"ytscribe/internal/ports"
	"ytscribe/internal/types"
)

const sampleOutput = `{
  "result": {"language": "en"},
  "transcription": [
    {"offsets": {"from": 0, "to": 1200}, "text": " hello world"},
    {"offsets": {"from": 1200, "to": 2500}, "text": " second segment "},
    {"offsets": {"from": 2500, "to": 2600}, "text": "   "}
  ]
}`

func TestParseOutput(t *testing.T) {
	t.Parallel()

	tr, err := ParseOutput([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tr.Language != "en" {
		t.Fatalf("language = %q", tr.Language)
	}
	if tr.Text != "hello world second segment" {
		t.Fatalf("text = %q", tr.Text)
	}
	if len(tr.Segments) != 2 {
		t.Fatalf("want 2 segments (blank dropped), got %d", len(tr.Segments))
	}
	if tr.Segments[0].Start != 0 || tr.Segments[0].End != 1.2 {
		t.Fatalf("segment 0 offsets wrong: %+v", tr.Segments[0])
	}
	if tr.Segments[1].Start != 1.2 || tr.Segments[1].End != 2.5 {
		t.Fatalf("segment 1 offsets wrong: %+v", tr.Segments[1])
	}
}

func TestParseOutputMalformed(t *testing.T) {
	t.Parallel()

	_, err := ParseOutput([]byte("not json"))
	var perr *errs.Error
	if !errors.As(err, &perr) || perr.Kind != errs.KindRecognition {
		t.Fatalf("want recognition error, got %v", err)
	}
}

func TestLoaderMissingModel(t *testing.T) {
	t.Parallel()

	l := NewLoader("whisper-cli", t.TempDir(), nil)
	_, err := l.Load(context.Background(), "small")
	var perr *errs.Error
	if !errors.As(err, &perr) || perr.Kind != errs.KindRecognition {
		t.Fatalf("want recognition error, got %v", err)
	}
}

// writingRunner pretends to be whisper.cpp: it writes the JSON document the
// engine expects next to the -of prefix.
type writingRunner struct {
	args []string
}

func (w *writingRunner) Run(_ context.Context, _ string, args ...string) (execx.Result, error) {
	w.args = args
	for i, a := range args {
		if a == "-of" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1]+".json", []byte(sampleOutput), 0o644); err != nil {
				return execx.Result{}, err
			}
		}
	}
	return execx.Result{}, nil
}

func TestEngineRecognize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	modelPath := filepath.Join(dir, ModelFileName("base"))
	if err := os.WriteFile(modelPath, []byte("ggml"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	runner := &writingRunner{}
	l := NewLoader("whisper-cli", dir, runner)
	eng, err := l.Load(context.Background(), "base")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tr, err := eng.Recognize(context.Background(), "/tmp/audio.wav", ports.RecognizeOptions{
		Task:     types.TaskTranslate,
		Language: "zh",
	})
	if err != nil {
		t.Fatalf("recognize: %v", err)
	}
	if tr.Text == "" || len(tr.Segments) == 0 {
		t.Fatalf("empty transcript: %+v", tr)
	}

	joined := strings.Join(runner.args, " ")
	for _, want := range []string{"-m " + modelPath, "-f /tmp/audio.wav", "--translate", "-l zh", "-oj"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
}

func TestEngineAutoLanguageOmitsFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ModelFileName("base")), []byte("ggml"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	runner := &writingRunner{}
	l := NewLoader("", dir, runner)
	eng, err := l.Load(context.Background(), "base")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := eng.Recognize(context.Background(), "a.wav", ports.RecognizeOptions{Task: types.TaskTranscribe, Language: "auto"}); err != nil {
		t.Fatalf("recognize: %v", err)
	}
	joined := strings.Join(runner.args, " ")
	if strings.Contains(joined, "-l ") || strings.Contains(joined, "--translate") {
		t.Fatalf("unexpected flags for auto transcribe: %s", joined)
	}
}

func TestEngineCommandFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ModelFileName("base")), []byte("ggml"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}
	runner := &failRunner{}
	l := NewLoader("", dir, runner)
	eng, err := l.Load(context.Background(), "base")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_, err = eng.Recognize(context.Background(), "a.wav", ports.RecognizeOptions{Task: types.TaskTranscribe})
	var perr *errs.Error
	if !errors.As(err, &perr) || perr.Kind != errs.KindRecognition {
		t.Fatalf("want recognition error, got %v", err)
	}
}

type failRunner struct{}

func (failRunner) Run(context.Context, string, ...string) (execx.Result, error) {
	return execx.Result{Stderr: "decode failed", ExitCode: 1}, errors.New("exit status 1")
}
