package ffmpeg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ytscribe/internal/execx"
)

type fakeRunner struct {
	res  execx.Result
	err  error
	name string
	args []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (execx.Result, error) {
	f.name = name
	f.args = args
	return f.res, f.err
}

func TestConvertArgs(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	a := New("/opt/bin/ffmpeg", runner)

	if err := a.ConvertToWAV16kMono(context.Background(), "in.mp3", "out.wav"); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if runner.name != "/opt/bin/ffmpeg" {
		t.Fatalf("binary = %q", runner.name)
	}
	joined := strings.Join(runner.args, " ")
	for _, want := range []string{"-i in.mp3", "-vn", "-ac 1", "-ar 16000", "-c:a pcm_s16le", "-y"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
	if runner.args[len(runner.args)-1] != "out.wav" {
		t.Fatalf("output must be the final argument: %v", runner.args)
	}
}

func TestConvertFailureKeepsStderr(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		res: execx.Result{Stderr: "Unknown encoder 'pcm_s16le'", ExitCode: 1},
		err: errors.New("exit status 1"),
	}
	a := New("", runner)

	err := a.ConvertToWAV16kMono(context.Background(), "in.mp3", "out.wav")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Unknown encoder") {
		t.Fatalf("stderr lost: %v", err)
	}
}
