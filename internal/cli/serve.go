package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ytscribe/internal/config"
	"ytscribe/internal/logging"
	"ytscribe/internal/pipeline"
	"ytscribe/internal/server"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP transcription service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			return serve(configFile)
		},
	}
	cmd.Flags().String("config", "", "Path to config file (YAML)")
	return cmd
}

func serve(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	runner, err := pipeline.New(pipeline.Config{
		OutDir:      cfg.OutputsDir,
		YtDlpPath:   cfg.YtDlpPath,
		FFmpegPath:  cfg.FFmpegPath,
		WhisperPath: cfg.WhisperPath,
		ModelsDir:   cfg.ModelsDir,
		Log:         log,
	})
	if err != nil {
		return err
	}

	srv := server.New(cfg, runner, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return srv.Stop(context.Background())
}

func envDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
