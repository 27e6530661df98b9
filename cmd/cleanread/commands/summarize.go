package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/internal/output"
	"github.com/jmylchreest/cleanread/pkg/cleaner"
	"github.com/jmylchreest/cleanread/pkg/relay"
	"github.com/jmylchreest/cleanread/pkg/summary"
)

type summarizeResult struct {
	URL      string `json:"url" yaml:"url"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Mode     string `json:"mode" yaml:"mode"`
	ReadTime string `json:"readTime" yaml:"readTime"`
	Summary  string `json:"summary" yaml:"summary"`
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file|url|-]",
	Short: "Summarize the readable content of a page",
	Long: `Extract the main article of a page and summarize it.

Modes:
  tldr     2-3 sentence paragraph
  bullets  5-7 bullet points
  key      3-5 key takeaways

Without --relay the provider is called directly, configured the same way
as "cleanread serve".

Examples:
  cleanread summarize https://example.com/article
  cleanread summarize page.html --mode bullets --relay http://localhost:3000/api
  cleanread summarize page.html --provider anthropic --output-format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	flags := summarizeCmd.Flags()
	flags.String("mode", string(summary.ModeTLDR), "summary mode: tldr, bullets, key")
	flags.String("relay", "", "relay API URL, e.g. http://localhost:3000/api (default: call the provider directly)")
	flags.Duration("relay-timeout", relay.DefaultTimeout, "relay request timeout")
	flags.String("output-format", "", "wrap the result with metadata: json, jsonl, yaml")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	addProviderFlags(flags)
	addFetchFlags(flags)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	initLogger()

	flags := cmd.Flags()
	bindProviderFlags(flags)

	modeName, _ := flags.GetString("mode")
	relayURL, _ := flags.GetString("relay")
	relayTimeout, _ := flags.GetDuration("relay-timeout")
	wrapName, _ := flags.GetString("output-format")

	mode, err := summary.ParseMode(modeName)
	if err != nil {
		return err
	}
	var wrap output.Format
	if wrapName != "" {
		var ok bool
		if wrap, ok = output.ParseFormat(wrapName); !ok {
			return fmt.Errorf("unknown output format %q (supported: json, jsonl, yaml)", wrapName)
		}
	}

	s, err := newSummarizer(relayURL, relayTimeout)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	page, err := loadSource(ctx, cmd, args, os.Stdin)
	if err != nil {
		return err
	}

	ext, err := cleaner.Extract(page.HTML, cleaner.EngineCleanread, cleaner.FormatText)
	if err != nil {
		return err
	}

	logInfo("Summarizing %s (%d words, %s read)...", page.URL, ext.WordCount, ext.ReadTime)
	start := time.Now()
	text, err := s.Summarize(ctx, ext.Content, mode)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	logger.Debug("summary complete", "mode", mode, "duration", time.Since(start), "chars", len(text))

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	if wrap == "" {
		_, err = fmt.Fprintln(w, text)
		return err
	}
	return output.Write(w, wrap, summarizeResult{
		URL:      page.URL,
		Title:    page.Title,
		Mode:     string(mode),
		ReadTime: ext.ReadTime,
		Summary:  text,
	})
}
