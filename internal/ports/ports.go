package ports

import (
	"context"

	"ytscribe/internal/types"
)

// Acquirer fetches the best audio stream for a remote URL into destDir and
// returns the local file plus its display title.
type Acquirer interface {
	Acquire(ctx context.Context, url, destDir string, auth types.AuthOptions) (types.Asset, error)
}

// AudioConverter re-encodes media into the mono 16-bit 16 kHz PCM WAV the
// recognition models expect.
type AudioConverter interface {
	ConvertToWAV16kMono(ctx context.Context, inPath, outPath string) error
}

// RecognizeOptions selects task mode and an optional forced language.
// An empty Language means model-side auto-detection.
type RecognizeOptions struct {
	Task     types.Task
	Language string
}

// Engine is a loaded recognition model.
type Engine interface {
	Recognize(ctx context.Context, audioPath string, opts RecognizeOptions) (types.Transcript, error)
}

// ModelLoader turns a model identifier into a ready Engine. Loading may be
// slow and memory-heavy; callers are expected to cache the result.
type ModelLoader interface {
	Load(ctx context.Context, modelID string) (Engine, error)
}
