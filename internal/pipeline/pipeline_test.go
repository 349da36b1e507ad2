package pipeline

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"ytscribe/internal/errs"
	"ytscribe/internal/types"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{OutDir: "outputs", ModelsDir: "models", Log: zerolog.Nop()}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if err := (Config{ModelsDir: "models"}).Validate(); err == nil {
		t.Fatal("missing out dir accepted")
	}
	if err := (Config{OutDir: "outputs"}).Validate(); err == nil {
		t.Fatal("missing models dir accepted")
	}
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	ok := Request{Source: "in.wav", Model: "small", Task: types.TaskTranscribe}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name string
		req  Request
	}{
		{"empty source", Request{Model: "small", Task: types.TaskTranscribe}},
		{"unknown model", Request{Source: "in.wav", Model: "enormous", Task: types.TaskTranscribe}},
		{"bad task", Request{Source: "in.wav", Model: "small", Task: "summarize"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			var perr *errs.Error
			if !errors.As(err, &perr) || perr.Kind != errs.KindInvalidInput {
				t.Fatalf("want invalid-input error, got %v", err)
			}
		})
	}
}
