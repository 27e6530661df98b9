package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cleanread/internal/config"
	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/internal/server"
	"github.com/jmylchreest/cleanread/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the summary relay",
	Long: `Run the HTTP relay that summarizes and cleans content for readers.

Endpoints:
  POST {base}/summarize  {"content": "...", "mode": "tldr|bullets|key"}
  POST {base}/clean      {"html": "..."}
  POST {base}/extract    {"html": "...", "engine": "...", "format": "..."}
  GET  /health

Examples:
  # Gemini, key from GEMINI_API_KEY
  cleanread serve

  # Local model through Ollama
  cleanread serve --provider ollama --model llama3.2 --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("addr", ":3000", "listen address")
	flags.String("base-path", "/api", "path prefix for the API routes")
	flags.Duration("llm-timeout", 0, "provider request timeout (default 60s)")
	flags.String("max-body-size", "1MB", "max request body size (e.g. 512KB, 1MB)")
	flags.Float64("rate-limit", 2, "requests per second per client, 0 disables")
	flags.Int("rate-burst", 10, "burst size per client")
	flags.StringSlice("cors-origin", []string{"*"}, "allowed CORS origins")
	addProviderFlags(flags)
}

func runServe(cmd *cobra.Command, _ []string) error {
	initLogger()

	flags := cmd.Flags()
	bindProviderFlags(flags)
	bindFlags(flags, map[string]string{
		config.KeyAddr:        "addr",
		config.KeyBasePath:    "base-path",
		config.KeyMaxBodySize: "max-body-size",
		config.KeyRateLimit:   "rate-limit",
		config.KeyRateBurst:   "rate-burst",
		config.KeyCORSOrigins: "cors-origin",
	})
	if flags.Changed("llm-timeout") {
		bindFlags(flags, map[string]string{config.KeyTimeout: "llm-timeout"})
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting relay",
		"version", version.String(),
		"addr", cfg.Addr,
		"base_path", cfg.BasePath,
		"provider", cfg.Provider,
		"model", cfg.Model,
		"max_body", cfg.MaxBodySizeString(),
		"rate_limit", cfg.RateLimit)

	return server.New(cfg, pipeline).Run(ctx)
}
