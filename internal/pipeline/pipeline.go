// Package pipeline is the composition root: it builds the real adapters and
// runs the transcription usecase. Both the CLI and the HTTP server go
// through it.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"ytscribe/internal/asr"
	"ytscribe/internal/errs"
	"ytscribe/internal/ports"
	"ytscribe/internal/ports/adapters/ffmpeg"
	"ytscribe/internal/ports/adapters/whispercpp"
	"ytscribe/internal/ports/adapters/ytdlp"
	"ytscribe/internal/types"
	"ytscribe/internal/usecase"
)

type Config struct {
	OutDir string

	YtDlpPath   string
	FFmpegPath  string
	WhisperPath string
	ModelsDir   string

	// Loader overrides the whisper.cpp model loader; tests use it to plug in
	// a stub recognition backend.
	Loader ports.ModelLoader

	Log zerolog.Logger
}

func (c Config) Validate() error {
	if c.OutDir == "" {
		return errors.New("output directory is empty")
	}
	if c.ModelsDir == "" {
		return errors.New("models directory is empty")
	}
	return nil
}

// Request is one transcription job.
type Request struct {
	Source   string
	Model    string
	Task     types.Task
	Language string
	WriteSRT bool
	Auth     types.AuthOptions
}

func (r Request) Validate() error {
	if r.Source == "" {
		return errs.InvalidInput("input is empty")
	}
	if !asr.KnownModel(r.Model) {
		return errs.InvalidInput("unknown model %q (known: %v)", r.Model, asr.KnownModels)
	}
	if r.Task != types.TaskTranscribe && r.Task != types.TaskTranslate {
		return errs.InvalidInput("task must be %q or %q", types.TaskTranscribe, types.TaskTranslate)
	}
	return nil
}

// Runner wires adapters once and serves transcription requests. The model
// cache inside survives across requests, which is the point: model loads are
// multi-second and memory-heavy.
type Runner struct {
	uc  usecase.Usecase
	cfg Config
}

func New(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	loader := cfg.Loader
	if loader == nil {
		loader = whispercpp.NewLoader(cfg.WhisperPath, cfg.ModelsDir, nil)
	}
	deps := usecase.Deps{
		Acquirer: ytdlp.New(cfg.YtDlpPath, nil, cfg.Log),
		Audio:    ffmpeg.New(cfg.FFmpegPath, nil),
		Models:   asr.NewCache(loader),
		Log:      cfg.Log,
	}
	return &Runner{uc: usecase.New(deps), cfg: cfg}, nil
}

// Run executes one request against the shared adapter set.
func (r *Runner) Run(ctx context.Context, req Request) (usecase.Result, error) {
	if err := req.Validate(); err != nil {
		return usecase.Result{}, err
	}
	return r.uc.Run(ctx, usecase.Input{
		Source:   req.Source,
		OutDir:   r.cfg.OutDir,
		Model:    req.Model,
		Task:     req.Task,
		Language: req.Language,
		WriteSRT: req.WriteSRT,
		Auth:     req.Auth,
	})
}

// OutDir exposes the configured output directory for the download handler.
func (r *Runner) OutDir() string { return r.cfg.OutDir }
