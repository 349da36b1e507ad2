package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ytscribe/internal/logging"
	"ytscribe/internal/pipeline"
	"ytscribe/internal/types"
)

func run(cmd *cobra.Command, input string) error {
	model, _ := cmd.Flags().GetString("model")
	task, _ := cmd.Flags().GetString("task")
	language, _ := cmd.Flags().GetString("language")
	srt, _ := cmd.Flags().GetBool("srt")
	outDir, _ := cmd.Flags().GetString("outputs")

	cookies, _ := cmd.Flags().GetString("cookies")
	browser, _ := cmd.Flags().GetString("cookies-from-browser")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	ytdlpPath, _ := cmd.Flags().GetString("ytdlp-path")
	ffmpegPath, _ := cmd.Flags().GetString("ffmpeg-path")
	whisperPath, _ := cmd.Flags().GetString("whisper-path")
	modelsDir, _ := cmd.Flags().GetString("models-dir")

	log := logging.New(envDefault("YTSCRIBE_LOG_LEVEL", "info"), envDefault("YTSCRIBE_LOG_FORMAT", "console"))

	runner, err := pipeline.New(pipeline.Config{
		OutDir:      outDir,
		YtDlpPath:   ytdlpPath,
		FFmpegPath:  ffmpegPath,
		WhisperPath: whisperPath,
		ModelsDir:   modelsDir,
		Log:         log,
	})
	if err != nil {
		return err
	}

	res, err := runner.Run(context.Background(), pipeline.Request{
		Source:   input,
		Model:    model,
		Task:     types.Task(task),
		Language: language,
		WriteSRT: srt,
		Auth: types.AuthOptions{
			CookieFile:         cookies,
			CookiesFromBrowser: browser,
			Username:           username,
			Password:           password,
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "[OK] Text written: %s\n", res.TextPath)
	if res.SRTPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "[OK] SRT written: %s\n", res.SRTPath)
	}
	return nil
}
