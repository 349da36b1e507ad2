// Package whispercpp loads ggml whisper models and runs whisper.cpp for
// transcription and translation.
package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ytscribe/internal/errs"
	"ytscribe/internal/execx"
	"ytscribe/internal/ports"
	"ytscribe/internal/types"
)

// Loader resolves model identifiers to ggml files under a models directory
// and hands out engines bound to them.
type Loader struct {
	bin       string
	modelsDir string
	runner    execx.Runner
}

func NewLoader(binPath, modelsDir string, runner execx.Runner) *Loader {
	if binPath == "" {
		binPath = "whisper-cli"
	}
	if runner == nil {
		runner = execx.ExecRunner{}
	}
	return &Loader{bin: binPath, modelsDir: modelsDir, runner: runner}
}

// Load checks that the ggml file for modelID exists and returns an engine
// bound to it. The heavy lifting happens on first Recognize; whisper.cpp
// maps the model per invocation.
func (l *Loader) Load(_ context.Context, modelID string) (ports.Engine, error) {
	modelPath := filepath.Join(l.modelsDir, ModelFileName(modelID))
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errs.Recognition(err, "model %q not found at %s", modelID, modelPath)
	}
	return &Engine{bin: l.bin, modelPath: modelPath, runner: l.runner}, nil
}

// Engine runs whisper.cpp with one fixed model file.
type Engine struct {
	bin       string
	modelPath string
	runner    execx.Runner
}

func (e *Engine) Recognize(ctx context.Context, audioPath string, opts ports.RecognizeOptions) (types.Transcript, error) {
	tmpDir, err := os.MkdirTemp("", "ytscribe-whisper-*")
	if err != nil {
		return types.Transcript{}, errs.Recognition(err, "create whisper scratch dir")
	}
	defer os.RemoveAll(tmpDir)

	outPrefix := filepath.Join(tmpDir, "whisper")
	args := []string{
		"-m", e.modelPath,
		"-f", audioPath,
		"-oj",
		"-of", outPrefix,
		"-np",
	}
	if opts.Task == types.TaskTranslate {
		args = append(args, "--translate")
	}
	if lang := normalizeLanguage(opts.Language); lang != "" {
		args = append(args, "-l", lang)
	}

	res, err := e.runner.Run(ctx, e.bin, args...)
	if err != nil {
		return types.Transcript{}, errs.Recognition(err, "whisper.cpp failed (exit %d): %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	raw, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, errs.Recognition(err, "whisper.cpp produced no JSON output")
	}
	return ParseOutput(raw)
}

// output mirrors the whisper.cpp -oj document: detected language under
// result, segments under transcription with offsets in milliseconds.
type output struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// ParseOutput converts a whisper.cpp JSON document into a Transcript.
func ParseOutput(raw []byte) (types.Transcript, error) {
	var doc output
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.Transcript{}, errs.Recognition(err, "parse whisper.cpp output")
	}

	tr := types.Transcript{Language: doc.Result.Language}
	var text strings.Builder
	for _, seg := range doc.Transcription {
		t := strings.TrimSpace(seg.Text)
		if t == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteByte(' ')
		}
		text.WriteString(t)
		tr.Segments = append(tr.Segments, types.Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  t,
		})
	}
	tr.Text = text.String()
	return tr, nil
}

// normalizeLanguage maps "auto" and empty to no language override.
func normalizeLanguage(raw string) string {
	lang := strings.TrimSpace(raw)
	if lang == "" || strings.EqualFold(lang, "auto") {
		return ""
	}
	return lang
}

var _ ports.ModelLoader = (*Loader)(nil)
var _ ports.Engine = (*Engine)(nil)

// ModelFileName reports the ggml file expected for a model identifier.
func ModelFileName(modelID string) string {
	return fmt.Sprintf("ggml-%s.bin", modelID)
}
