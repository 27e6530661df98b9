package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cleanread/internal/config"
	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/pkg/fetcher"
	"github.com/jmylchreest/cleanread/pkg/llm"
	"github.com/jmylchreest/cleanread/pkg/relay"
	"github.com/jmylchreest/cleanread/pkg/settings"
	"github.com/jmylchreest/cleanread/pkg/summary"
)

// summarizer is what the summarize and read commands need from either a
// relay client or an in-process pipeline.
type summarizer interface {
	Summarize(ctx context.Context, content string, mode summary.Mode) (string, error)
}

func init() {
	config.SetDefaults(viper.GetViper())
}

// addProviderFlags registers the flags that select a text-generation
// provider.
func addProviderFlags(flags *pflag.FlagSet) {
	flags.StringP("provider", "p", "", "provider: gemini, anthropic, openai, ollama (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.Int("chunk-size", summary.DefaultChunkSize, "max characters of content sent for summarization")
}

func bindProviderFlags(flags *pflag.FlagSet) {
	bindFlags(flags, map[string]string{
		config.KeyProvider:  "provider",
		config.KeyModel:     "model",
		config.KeyAPIKey:    "api-key",
		config.KeyBaseURL:   "base-url",
		config.KeyChunkSize: "chunk-size",
	})
}

// newPipeline builds the summary pipeline from the relay config.
func newPipeline(cfg *config.Relay) (*summary.Pipeline, error) {
	p, err := llm.NewProvider(cfg.Provider, cfg.ProviderConfig())
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	p = llm.Observe(p, llm.NewLogObserver(logger.Logger()))
	logger.Debug("provider ready", "provider", p.Name(), "model", p.Model())
	return summary.New(llm.NewGenerator(p), summary.WithChunkSize(cfg.ChunkSize)), nil
}

// newSummarizer returns a relay client when relayURL is set, otherwise an
// in-process pipeline configured like the relay.
func newSummarizer(relayURL string, timeout time.Duration) (summarizer, error) {
	if relayURL != "" {
		logger.Debug("using relay", "url", relayURL)
		return relay.NewClient(relayURL, relay.WithTimeout(timeout)), nil
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return newPipeline(cfg)
}

// addStoreFlags registers the settings store flags.
func addStoreFlags(flags *pflag.FlagSet) {
	flags.String("store", "file", "settings store: file, redis, memory")
	flags.String("settings-file", "", "settings file (default $XDG_CONFIG_HOME/cleanread/settings.yaml)")
	flags.String("redis-url", "redis://localhost:6379/0", "redis URL for --store redis")
	flags.String("redis-key", settings.DefaultRedisKey, "redis hash holding the settings")
}

func bindStoreFlags(flags *pflag.FlagSet) {
	bindFlags(flags, map[string]string{
		"settings.store":     "store",
		"settings.file":      "settings-file",
		"settings.redis_url": "redis-url",
		"settings.redis_key": "redis-key",
	})
}

// openStore returns the configured settings store and a func that releases
// it.
func openStore() (settings.Store, func(), error) {
	noop := func() {}
	switch kind := viper.GetString("settings.store"); kind {
	case "", "file":
		path := viper.GetString("settings.file")
		if path == "" {
			var err error
			if path, err = settings.DefaultPath(); err != nil {
				return nil, noop, err
			}
		}
		logger.Debug("settings store", "kind", "file", "path", path)
		return settings.NewFileStore(path), noop, nil
	case "redis":
		store, err := settings.NewRedisStoreFromURL(viper.GetString("settings.redis_url"), viper.GetString("settings.redis_key"))
		if err != nil {
			return nil, noop, err
		}
		logger.Debug("settings store", "kind", "redis", "key", viper.GetString("settings.redis_key"))
		return store, func() { _ = store.Close() }, nil
	case "memory":
		return settings.NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown settings store %q (supported: file, redis, memory)", kind)
	}
}

// addFetchFlags registers the flags used to load a page snapshot.
func addFetchFlags(flags *pflag.FlagSet) {
	flags.String("fetch-mode", fetcher.ModeStatic, "fetch mode for URLs: static, dynamic")
	flags.Duration("timeout", fetcher.DefaultTimeout, "fetch timeout")
	flags.String("user-agent", "", "override the User-Agent header")
	flags.String("wait-for", "", "CSS selector to wait for (dynamic mode)")
}

// loadSource reads the page named by the first argument, or stdin.
func loadSource(ctx context.Context, cmd *cobra.Command, args []string, stdin io.Reader) (fetcher.Page, error) {
	source := fetcher.StdinSource
	if len(args) > 0 {
		source = args[0]
	}

	flags := cmd.Flags()
	mode, _ := flags.GetString("fetch-mode")
	timeout, _ := flags.GetDuration("timeout")
	userAgent, _ := flags.GetString("user-agent")
	waitFor, _ := flags.GetString("wait-for")

	var f fetcher.Fetcher
	if fetcher.IsURL(source) {
		var err error
		f, err = fetcher.New(mode, fetcher.Config{UserAgent: userAgent, Timeout: timeout})
		if err != nil {
			return fetcher.Page{}, err
		}
		defer func() { _ = f.Close() }()
	}

	start := time.Now()
	page, err := fetcher.Load(ctx, source, stdin, f, fetcher.Options{WaitForSelector: waitFor})
	if err != nil {
		return page, err
	}
	logger.Debug("page loaded", "url", page.URL, "title", page.Title, "bytes", len(page.HTML), "duration", time.Since(start))
	return page, nil
}

// openOutput returns the file named by --output, or stdout.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
