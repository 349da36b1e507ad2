package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ytscribe <url-or-file>",
		Short:        "Transcribe or translate audio from a video URL or local media file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("model", "small", "Whisper model: tiny|base|small|medium|large|turbo")
	root.Flags().String("task", "transcribe", "Task mode: transcribe|translate")
	root.Flags().String("language", "", "Force language code (e.g. zh, en); empty = auto-detect")
	root.Flags().Bool("srt", false, "Also write .srt subtitles")
	root.Flags().String("outputs", "outputs", "Output directory")

	// Authentication for membership/restricted videos
	root.Flags().String("cookies", "", "Path to cookies file (Netscape format)")
	root.Flags().String("cookies-from-browser", "", "Extract cookies from browser (chrome, firefox, safari, edge)")
	root.Flags().String("username", "", "Account username/email")
	root.Flags().String("password", "", "Account password")

	// Hidden tool-path overrides
	root.Flags().String("ytdlp-path", "yt-dlp", "yt-dlp binary")
	root.Flags().String("ffmpeg-path", "ffmpeg", "ffmpeg binary")
	root.Flags().String("whisper-path", "whisper-cli", "whisper.cpp binary")
	root.Flags().String("models-dir", "models", "Directory with ggml model files")
	for _, f := range []string{"ytdlp-path", "ffmpeg-path", "whisper-path", "models-dir"} {
		_ = root.Flags().MarkHidden(f)
	}

	root.AddCommand(newServeCommand())
	return root
}
