package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/internal/output"
	"github.com/jmylchreest/cleanread/pkg/cleaner"
)

// cleanResult is the structured form of a clean run.
type cleanResult struct {
	URL       string `json:"url" yaml:"url"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Engine    string `json:"engine" yaml:"engine"`
	Strategy  string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	WordCount int    `json:"wordCount" yaml:"wordCount"`
	ReadTime  string `json:"readTime" yaml:"readTime"`
	Content   string `json:"content" yaml:"content"`
}

var cleanCmd = &cobra.Command{
	Use:   "clean [file|url|-]",
	Short: "Extract the readable content of a page",
	Long: `Extract the main article of a page and print it without navigation,
ads, comments or other clutter.

The source is a URL, a file, or "-" for stdin (the default).

Examples:
  cleanread clean https://example.com/article
  cleanread clean page.html --format markdown
  curl -s https://example.com | cleanread clean --output-format json
  cleanread clean page.html --engine trafilatura --format text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("engine", "e", cleaner.EngineCleanread, fmt.Sprintf("extraction engine: %v", cleaner.Engines))
	flags.StringP("format", "f", string(cleaner.FormatHTML), "content format: html, text, markdown")
	flags.String("output-format", "", "wrap the result with metadata: json, jsonl, yaml")
	flags.Bool("pretty", false, "indent HTML output")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	addFetchFlags(flags)
}

func runClean(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()
	engine, _ := flags.GetString("engine")
	formatName, _ := flags.GetString("format")
	wrapName, _ := flags.GetString("output-format")
	pretty, _ := flags.GetBool("pretty")

	format, err := cleaner.ParseFormat(formatName)
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

	page, err := loadSource(ctx, cmd, args, os.Stdin)
	if err != nil {
		return err
	}

	start := time.Now()
	ext, err := cleaner.Extract(page.HTML, engine, format)
	if err != nil {
		return err
	}
	logger.Debug("extraction complete",
		"engine", ext.Engine,
		"strategy", ext.Strategy,
		"words", humanize.Comma(int64(ext.WordCount)),
		"input", humanize.Bytes(uint64(len(page.HTML))),
		"output", humanize.Bytes(uint64(len(ext.Content))),
		"duration", time.Since(start))

	content := ext.Content
	if pretty && format == cleaner.FormatHTML {
		content = cleaner.Pretty(content)
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	if wrap == "" {
		_, err = fmt.Fprintln(w, content)
		return err
	}
	return output.Write(w, wrap, cleanResult{
		URL:       page.URL,
		Title:     page.Title,
		Engine:    ext.Engine,
		Strategy:  string(ext.Strategy),
		WordCount: ext.WordCount,
		ReadTime:  ext.ReadTime,
		Content:   content,
	})
}
