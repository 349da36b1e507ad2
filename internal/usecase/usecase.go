package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"ytscribe/internal/asr"
	"ytscribe/internal/domain/subtitles"
	"ytscribe/internal/errs"
	"ytscribe/internal/ports"
	"ytscribe/internal/sanitize"
	"ytscribe/internal/types"
)

type Deps struct {
	Acquirer ports.Acquirer
	Audio    ports.AudioConverter
	Models   *asr.Cache
	Log      zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Source   string
	OutDir   string
	Model    string
	Task     types.Task
	Language string
	WriteSRT bool
	Auth     types.AuthOptions
}

type Result struct {
	Title    string          `json:"title"`
	Language string          `json:"language,omitempty"`
	Text     string          `json:"text"`
	Segments []types.Segment `json:"segments"`
	TextPath string          `json:"-"`
	SRTPath  string          `json:"srt_path,omitempty"`
}

// Run executes the pipeline once: acquire or locate the audio, normalize it,
// recognize, and write the transcript files. No stage is retried.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	if err := os.MkdirAll(in.OutDir, 0o755); err != nil {
		return Result{}, errs.Internal(err)
	}

	asset, err := u.resolveSource(ctx, in)
	if err != nil {
		return Result{}, err
	}

	audioPath, tmpDir := u.normalize(ctx, asset.Path)
	if tmpDir != "" {
		defer os.RemoveAll(tmpDir)
	}

	u.d.Log.Info().Str("model", in.Model).Str("task", string(in.Task)).Msg("transcribing")
	engine, err := u.d.Models.Get(ctx, in.Model)
	if err != nil {
		return Result{}, err
	}
	tr, err := engine.Recognize(ctx, audioPath, ports.RecognizeOptions{Task: in.Task, Language: in.Language})
	if err != nil {
		return Result{}, err
	}

	name := sanitize.Clean(asset.Title)
	textPath := filepath.Join(in.OutDir, name+".txt")
	if err := os.WriteFile(textPath, []byte(tr.Text), 0o644); err != nil {
		return Result{}, errs.Internal(err)
	}
	u.d.Log.Info().Str("path", textPath).Msg("text written")

	res := Result{
		Title:    asset.Title,
		Language: tr.Language,
		Text:     tr.Text,
		Segments: tr.Segments,
		TextPath: textPath,
	}
	if res.Segments == nil {
		res.Segments = []types.Segment{}
	}

	if in.WriteSRT {
		srtPath := filepath.Join(in.OutDir, name+".srt")
		if err := os.WriteFile(srtPath, []byte(subtitles.RenderSRT(tr)), 0o644); err != nil {
			return Result{}, errs.Internal(err)
		}
		u.d.Log.Info().Str("path", srtPath).Msg("srt written")
		res.SRTPath = srtPath
	}

	return res, nil
}

// resolveSource downloads remote URLs and checks local paths. A local input
// must exist; its title is the filename stem.
func (u Usecase) resolveSource(ctx context.Context, in Input) (types.Asset, error) {
	if IsRemote(in.Source) {
		return u.d.Acquirer.Acquire(ctx, in.Source, in.OutDir, in.Auth)
	}

	abs, err := filepath.Abs(in.Source)
	if err != nil {
		return types.Asset{}, errs.SourceNotFound(in.Source, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return types.Asset{}, errs.SourceNotFound(in.Source, err)
	}
	base := filepath.Base(abs)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	return types.Asset{Path: abs, Title: title}, nil
}

// normalize re-encodes the audio into the PCM format the models expect. A
// .wav input is passed through untouched. Conversion failure is downgraded
// to a warning: recognition may still cope with the original container, and
// aborting the whole request over a format mismatch is disproportionate.
// The returned tmpDir, when non-empty, is the caller's to remove.
func (u Usecase) normalize(ctx context.Context, audioPath string) (path, tmpDir string) {
	if strings.EqualFold(filepath.Ext(audioPath), ".wav") {
		return audioPath, ""
	}

	tmpDir, err := os.MkdirTemp("", "ytscribe-*")
	if err != nil {
		u.d.Log.Warn().Err(err).Msg("cannot create scratch dir, using original audio")
		return audioPath, ""
	}
	outPath := filepath.Join(tmpDir, "audio-16k-mono.wav")
	if err := u.d.Audio.ConvertToWAV16kMono(ctx, audioPath, outPath); err != nil {
		u.d.Log.Warn().Err(err).Msg("audio conversion failed, using original audio")
		return audioPath, tmpDir
	}
	return outPath, tmpDir
}

// IsRemote reports whether source is a URL rather than a local path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
