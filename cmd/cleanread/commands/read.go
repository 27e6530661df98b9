package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cleanread/internal/config"
	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/internal/output"
	"github.com/jmylchreest/cleanread/pkg/relay"
	"github.com/jmylchreest/cleanread/pkg/session"
)

// renderEvent is written after every session render.
type renderEvent struct {
	Event       string `json:"event"`
	View        string `json:"view"`
	Theme       string `json:"theme"`
	TextSize    int    `json:"textSize"`
	ReadTime    string `json:"readTime,omitempty"`
	Pending     bool   `json:"pending"`
	SummaryMode string `json:"summaryMode,omitempty"`
	Body        string `json:"body"`
	Panel       string `json:"panel,omitempty"`
}

// replyEvent is written for every command read.
type replyEvent struct {
	Event   string `json:"event"`
	Command string `json:"command"`
	session.Reply
}

var readCmd = &cobra.Command{
	Use:   "read [file|url|-]",
	Short: "Drive an interactive reading session over a page",
	Long: `Open a reading session over a page snapshot and apply commands to it.

Commands are read one per line, either as JSON messages
  {"action": "setViewMode", "mode": "summary"}
or as words
  summarize bullets
  setTextSize 120
  setTheme dark
  setViewMode raw
  cleanPage
  getReadTime

Every render and every reply is written to stdout as a JSON line.

When the page comes from stdin, commands are read from --commands.

Examples:
  cleanread read https://example.com/article
  cleanread read page.html --relay http://localhost:3000/api < commands.txt
  curl -s https://example.com | cleanread read --commands commands.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)

	flags := readCmd.Flags()
	flags.String("commands", "", "file to read commands from (default: stdin)")
	flags.String("relay", "", "relay API URL (default: call the provider directly)")
	flags.Duration("request-timeout", relay.DefaultTimeout, "bound on each summary request")
	flags.Duration("wait", relay.DefaultTimeout, "how long to wait for a pending summary after the last command")
	flags.Bool("panel", true, "include panel markup in render events")
	addProviderFlags(flags)
	addStoreFlags(flags)
	addFetchFlags(flags)
}

func runRead(cmd *cobra.Command, args []string) error {
	initLogger()

	flags := cmd.Flags()
	bindProviderFlags(flags)
	bindStoreFlags(flags)

	commandsPath, _ := flags.GetString("commands")
	relayURL, _ := flags.GetString("relay")
	requestTimeout, _ := flags.GetDuration("request-timeout")
	wait, _ := flags.GetDuration("wait")
	withPanel, _ := flags.GetBool("panel")

	fromStdin := len(args) == 0 || args[0] == "-"
	if fromStdin && commandsPath == "" {
		return errors.New("--commands is required when the page is read from stdin")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	page, err := loadSource(ctx, cmd, args, os.Stdin)
	if err != nil {
		return err
	}

	var commands io.Reader = os.Stdin
	if commandsPath != "" {
		f, err := os.Open(commandsPath)
		if err != nil {
			return fmt.Errorf("opening commands: %w", err)
		}
		defer func() { _ = f.Close() }()
		commands = f
	}

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	var s session.Summarizer
	switch sum, err := newSummarizer(relayURL, requestTimeout); {
	case errors.Is(err, config.ErrMissingAPIKey):
		logger.Warn("summaries disabled", "error", err)
	case err != nil:
		return err
	default:
		s = sum
	}

	enc, err := output.NewEncoder(os.Stdout, output.FormatJSONL, false)
	if err != nil {
		return err
	}
	var mu sync.Mutex
	emit := func(v any) {
		mu.Lock()
		defer mu.Unlock()
		if err := enc.Encode(v); err != nil {
			logger.Error("writing event", "error", err)
		}
	}

	ctrl := session.New(page.HTML, s,
		session.WithStore(store),
		session.WithRequestTimeout(requestTimeout),
		session.OnRender(func(st session.State) {
			ev := renderEvent{
				Event:    "render",
				View:     string(st.View),
				Theme:    string(st.Theme),
				TextSize: st.TextSize,
				ReadTime: st.ReadTime,
				Pending:  st.Pending,
				Body:     st.Body,
			}
			if st.Summary != nil {
				ev.SummaryMode = string(st.Summary.Mode)
			}
			if withPanel {
				ev.Panel = st.Panel
			}
			emit(ev)
		}),
	)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	runErr := make(chan error, 1)
	go func() { runErr <- ctrl.Run(runCtx) }()

	logger.Debug("session started", "url", page.URL, "title", page.Title)
	if err := readCommands(runCtx, ctrl, commands, emit); err != nil {
		return err
	}

	waitIdle(runCtx, ctrl, wait)
	stop()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readCommands dispatches one command per non-empty line of r.
func readCommands(ctx context.Context, ctrl *session.Controller, r io.Reader, emit func(any)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var (
			cmd session.Command
			err error
		)
		if strings.HasPrefix(line, "{") {
			cmd, err = session.DecodeCommand([]byte(line))
		} else {
			cmd, err = session.ParseWords(line)
		}
		if err != nil {
			emit(replyEvent{Event: "reply", Command: line, Reply: session.ErrorReply(err)})
			continue
		}

		reply, err := ctrl.Dispatch(ctx, cmd)
		if errors.Is(err, session.ErrClosed) || ctx.Err() != nil {
			return ctx.Err()
		}
		emit(replyEvent{Event: "reply", Command: cmd.Action(), Reply: reply})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return nil
}

// waitIdle returns once no summary is pending, or after d.
func waitIdle(ctx context.Context, ctrl *session.Controller, d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.NewTimer(d)
	defer deadline.Stop()
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for ctrl.State().Pending {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			logger.Warn("summary still pending, giving up", "waited", d)
			return
		case <-tick.C:
		}
	}
}
