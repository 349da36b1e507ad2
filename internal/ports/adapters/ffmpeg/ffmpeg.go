package ffmpeg

import (
	"context"
	"fmt"

	"ytscribe/internal/execx"
)

type Adapter struct {
	bin    string
	runner execx.Runner
}

func New(binPath string, runner execx.Runner) *Adapter {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	if runner == nil {
		runner = execx.ExecRunner{}
	}
	return &Adapter{bin: binPath, runner: runner}
}

// ConvertToWAV16kMono strips video and re-encodes audio to single-channel
// 16-bit linear PCM at 16 kHz, overwriting outPath if present.
func (a *Adapter) ConvertToWAV16kMono(ctx context.Context, inPath, outPath string) error {
	res, err := a.runner.Run(ctx, a.bin,
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", inPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outPath,
	)
	if err != nil {
		return fmt.Errorf("ffmpeg convert (exit %d): %w\n%s", res.ExitCode, err, res.Stderr)
	}
	return nil
}
