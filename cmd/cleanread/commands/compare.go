package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanread/internal/output"
	"github.com/jmylchreest/cleanread/pkg/cleaner"
)

// comparison is one engine's result in a compare run.
type comparison struct {
	Name      string        `json:"name" yaml:"name"`
	Bytes     int           `json:"bytes" yaml:"bytes"`
	Reduction float64       `json:"reduction" yaml:"reduction"`
	WordCount int           `json:"wordCount" yaml:"wordCount"`
	ReadTime  string        `json:"readTime" yaml:"readTime"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

var compareCmd = &cobra.Command{
	Use:   "compare [file|url|-]",
	Short: "Compare extraction engines on the same page",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringP("output", "o", "", "output format: json, yaml (default: table)")
	addFetchFlags(compareCmd.Flags())
}

func runCompare(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	page, err := loadSource(ctx, cmd, args, os.Stdin)
	if err != nil {
		return err
	}
	results := compareEngines(page.HTML)

	if name, _ := cmd.Flags().GetString("output"); name != "" {
		format, ok := output.ParseFormat(name)
		if !ok {
			return fmt.Errorf("unknown output format %q (supported: json, yaml)", name)
		}
		return output.Write(os.Stdout, format, results)
	}

	fmt.Printf("Input: %s\n\n", humanize.Bytes(uint64(len(page.HTML))))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "Engine\tOutput\tReduce%\tWords\tRead\tTime\t")
	for _, r := range results {
		if r.Error != "" {
			_, _ = fmt.Fprintf(tw, "%s\tERROR\t-\t-\t-\t%v\t(%s)\n", r.Name, r.Duration.Round(time.Millisecond), r.Error)
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t%d\t%s\t%v\t\n",
			r.Name, humanize.Bytes(uint64(r.Bytes)), r.Reduction, r.WordCount, r.ReadTime, r.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}

// compareEngines runs every engine over raw, then the markdown chains.
func compareEngines(raw string) []comparison {
	results := make([]comparison, 0, len(cleaner.Engines)+2)
	for _, engine := range cleaner.Engines {
		start := time.Now()
		ext, err := cleaner.Extract(raw, engine, cleaner.FormatHTML)
		r := comparison{Name: engine, Duration: time.Since(start)}
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Bytes = len(ext.Content)
			r.WordCount = ext.WordCount
			r.ReadTime = ext.ReadTime
		}
		results = append(results, finish(r, raw))
	}

	for _, engine := range []string{cleaner.EngineCleanread, cleaner.EngineTrafilatura} {
		first, err := cleaner.New(engine)
		if err != nil {
			continue
		}
		chain := cleaner.NewChain(first, cleaner.NewMarkdown())
		start := time.Now()
		out, err := chain.Clean(raw)
		r := comparison{Name: chain.Name(), Duration: time.Since(start)}
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Bytes = len(out)
		}
		results = append(results, finish(r, raw))
	}
	return results
}

func finish(r comparison, raw string) comparison {
	if r.Error == "" && len(raw) > 0 {
		r.Reduction = float64(len(raw)-r.Bytes) / float64(len(raw)) * 100
	}
	return r
}
