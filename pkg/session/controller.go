package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/cleanread/internal/logger"
	"github.com/jmylchreest/cleanread/pkg/cleaner/cleanread"
	"github.com/jmylchreest/cleanread/pkg/settings"
	"github.com/jmylchreest/cleanread/pkg/summary"
)

// ErrClosed is returned by Dispatch once Run has returned.
var ErrClosed = errors.New("session closed")

// ErrNoSummarizer is returned for summary commands on a session without a
// Summarizer.
var ErrNoSummarizer = errors.New("no summarizer configured")

// Option configures a Controller.
type Option func(*Controller)

// WithSettings sets the initial settings. A store attached with WithStore
// replaces them when Run starts.
func WithSettings(s settings.Settings) Option {
	return func(c *Controller) {
		c.settings = s
	}
}

// WithStore loads settings from store at start and persists theme, text
// size, view mode and summary mode changes to it.
func WithStore(store settings.Store) Option {
	return func(c *Controller) {
		c.store = store
	}
}

// WithExtractor replaces the default content extractor.
func WithExtractor(e *cleanread.Extractor) Option {
	return func(c *Controller) {
		c.extractor = e
	}
}

// WithRequestTimeout bounds each summary request. Zero means no bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.requestTimeout = d
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// OnRender registers a callback invoked from the Run goroutine after every
// render.
func OnRender(fn func(State)) Option {
	return func(c *Controller) {
		c.onRender = fn
	}
}

type request struct {
	cmd   Command
	reply chan response
}

type response struct {
	reply Reply
	err   error
}

// outcome is a finished summary request.
type outcome struct {
	seq  uint64
	mode summary.Mode
	text string
	err  error
}

// inflight is the summary request currently allowed to complete.
type inflight struct {
	seq      uint64
	mode     summary.Mode
	cancel   context.CancelFunc
	prevView View
	follow   bool
}

// Controller owns one page session. All state below the channels is touched
// only by the Run goroutine.
type Controller struct {
	snapshot       Snapshot
	summarizer     Summarizer
	extractor      *cleanread.Extractor
	store          settings.Store
	settings       settings.Settings
	requestTimeout time.Duration
	onRender       func(State)
	logger         *slog.Logger

	requests chan request
	outcomes chan outcome
	done     chan struct{}
	runOnce  sync.Once

	mu    sync.RWMutex
	state State

	view       View
	extraction *cleanread.Result
	summary    *Summary
	pending    *inflight
	seq        uint64
	notice     string
}

// New creates a session over snapshot. summarizer may be nil, in which case
// summary commands fail.
func New(snapshot string, summarizer Summarizer, opts ...Option) *Controller {
	c := &Controller{
		snapshot:   Snapshot(snapshot),
		summarizer: summarizer,
		settings:   settings.Defaults(),
		requests:   make(chan request),
		outcomes:   make(chan outcome),
		done:       make(chan struct{}),
		view:       ViewRaw,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.extractor == nil {
		c.extractor = cleanread.New(nil)
	}
	if c.logger == nil {
		c.logger = logger.With("component", "session")
	}
	c.state = c.build()
	return c
}

// State returns the most recently rendered state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Dispatch applies cmd and waits for its reply. Command failures are
// returned both as an unsuccessful Reply and as the error.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Reply, error) {
	req := request{cmd: cmd, reply: make(chan response, 1)}
	select {
	case c.requests <- req:
	case <-c.done:
		return ErrorReply(ErrClosed), ErrClosed
	case <-ctx.Done():
		return ErrorReply(ctx.Err()), ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp.reply, resp.err
	case <-c.done:
		return ErrorReply(ErrClosed), ErrClosed
	case <-ctx.Done():
		return ErrorReply(ctx.Err()), ctx.Err()
	}
}

// Run processes commands and summary completions until ctx is cancelled.
// It may be called once.
func (c *Controller) Run(ctx context.Context) error {
	started := false
	c.runOnce.Do(func() { started = true })
	if !started {
		return errors.New("session: Run called twice")
	}
	defer close(c.done)

	c.start(ctx)

	for {
		select {
		case <-ctx.Done():
			c.cancelPending()
			return ctx.Err()
		case req := <-c.requests:
			reply, err := c.handle(ctx, req.cmd)
			req.reply <- response{reply: reply, err: err}
		case out := <-c.outcomes:
			c.complete(ctx, out)
		}
	}
}

func (c *Controller) start(ctx context.Context) {
	if c.store != nil {
		s, err := c.store.Load(ctx)
		if err != nil {
			c.logger.Warn("loading settings, using defaults", "error", err)
			s = settings.Defaults()
		}
		c.settings = s
	}
	if c.settings.AutoClean {
		c.logger.Debug("auto clean enabled")
		c.showClean()
	}
	c.render()
}

func (c *Controller) handle(ctx context.Context, cmd Command) (Reply, error) {
	switch cmd := cmd.(type) {
	case CleanPage:
		c.showClean()
		c.render()
		return Reply{Success: true, ReadTime: c.extraction.ReadTimeLabel()}, nil

	case Summarize:
		if c.summarizer == nil {
			return ErrorReply(ErrNoSummarizer), ErrNoSummarizer
		}
		raw := cmd.Mode
		if raw == "" {
			raw = c.settings.SummaryMode
		}
		mode, err := summary.ParseMode(raw)
		if err != nil {
			return ErrorReply(err), err
		}
		if c.view == ViewRaw {
			c.showClean()
		}
		c.issue(ctx, mode, c.view)
		if cmd.Mode != "" {
			c.persist(ctx, func(s *settings.Settings) { s.SummaryMode = string(mode) })
		}
		c.render()
		return Reply{Success: true}, nil

	case SetViewMode:
		if _, err := ParseView(string(cmd.Mode)); err != nil {
			return ErrorReply(err), err
		}
		if cmd.Mode == ViewSummary && c.summary == nil && c.pending == nil && c.summarizer == nil {
			return ErrorReply(ErrNoSummarizer), ErrNoSummarizer
		}
		c.setView(ctx, cmd.Mode)
		c.persist(ctx, func(s *settings.Settings) { s.ViewMode = string(cmd.Mode) })
		c.render()
		return Reply{Success: true}, nil

	case SetTextSize:
		if cmd.Size < MinTextSize || cmd.Size > MaxTextSize {
			err := fmt.Errorf("text size %d%% out of range %d-%d", cmd.Size, MinTextSize, MaxTextSize)
			return ErrorReply(err), err
		}
		c.settings.TextSize = cmd.Size
		c.persist(ctx, func(s *settings.Settings) { s.TextSize = cmd.Size })
		c.render()
		return Reply{Success: true}, nil

	case SetTheme:
		if _, err := ParseTheme(string(cmd.Theme)); err != nil {
			return ErrorReply(err), err
		}
		c.settings.Theme = string(cmd.Theme)
		c.persist(ctx, func(s *settings.Settings) { s.Theme = string(cmd.Theme) })
		c.render()
		return Reply{Success: true}, nil

	case GetReadTime:
		c.extract()
		return Reply{Success: true, ReadTime: c.extraction.ReadTimeLabel()}, nil

	default:
		err := fmt.Errorf("%w %T", ErrUnknownAction, cmd)
		return ErrorReply(err), err
	}
}

func (c *Controller) setView(ctx context.Context, v View) {
	c.notice = ""
	switch v {
	case ViewRaw:
		c.cancelPending()
		c.view = ViewRaw
	case ViewClean:
		c.showClean()
	case ViewSummary:
		prev := c.view
		if prev == ViewRaw {
			c.extract()
			prev = ViewClean
		}
		c.view = ViewSummary
		switch {
		case c.pending != nil:
			c.pending.follow = true
		case c.summary == nil:
			mode, err := summary.ParseMode(c.settings.SummaryMode)
			if err != nil {
				mode = summary.ModeTLDR
			}
			c.issue(ctx, mode, prev)
		}
	}
}

// showClean extracts once per session and switches to the clean view.
func (c *Controller) showClean() {
	c.extract()
	c.view = ViewClean
	c.notice = ""
	if c.pending != nil {
		c.pending.follow = false
	}
}

func (c *Controller) extract() {
	if c.extraction != nil {
		return
	}
	c.extraction = c.extractor.Extract(string(c.snapshot))
	c.logger.Debug("extracted content",
		"strategy", c.extraction.Strategy,
		"container", c.extraction.Container,
		"words", c.extraction.WordCount,
		"read_time", c.extraction.ReadTimeLabel())
}

// issue starts a summary request, superseding any request in flight.
func (c *Controller) issue(ctx context.Context, mode summary.Mode, prev View) {
	c.cancelPending()
	c.extract()
	c.notice = ""
	c.seq++

	if prev == ViewSummary && c.summary == nil {
		prev = ViewClean
	}

	var (
		reqCtx context.Context
		cancel context.CancelFunc
	)
	if c.requestTimeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.requestTimeout)
	} else {
		reqCtx, cancel = context.WithCancel(ctx)
	}
	c.pending = &inflight{seq: c.seq, mode: mode, cancel: cancel, prevView: prev, follow: true}

	seq := c.seq
	content := strings.TrimSpace(c.extraction.Text)
	summarizer := c.summarizer
	c.logger.Debug("summary requested", "seq", seq, "mode", mode, "chars", len(content))

	go func() {
		text, err := summarizer.Summarize(reqCtx, content, mode)
		select {
		case c.outcomes <- outcome{seq: seq, mode: mode, text: text, err: err}:
		case <-c.done:
		}
	}()
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.cancel()
	c.pending = nil
}

func (c *Controller) complete(ctx context.Context, out outcome) {
	if c.pending == nil || out.seq != c.pending.seq {
		c.logger.Debug("dropping stale summary", "seq", out.seq)
		return
	}
	p := c.pending
	c.pending = nil
	p.cancel()

	if out.err != nil {
		logger.WarnContext(ctx, "summary failed", "seq", out.seq, "mode", out.mode, "error", out.err)
		show := c.view == ViewSummary || p.follow
		if c.view == ViewSummary && c.summary == nil {
			c.view = p.prevView
		}
		if show && c.view != ViewRaw {
			c.notice = FailedMessage
		}
		c.render()
		return
	}

	c.summary = &Summary{Mode: out.mode, Content: summary.Render(out.text, out.mode)}
	if p.follow && c.view != ViewRaw {
		c.view = ViewSummary
	}
	c.notice = ""
	c.render()
}

func (c *Controller) persist(ctx context.Context, fn func(*settings.Settings)) {
	fn(&c.settings)
	if c.store == nil {
		return
	}
	if _, err := settings.Update(ctx, c.store, func(s *settings.Settings) error {
		fn(s)
		return nil
	}); err != nil {
		c.logger.Warn("saving settings", "error", err)
	}
}

func (c *Controller) render() {
	st := c.build()
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
	if c.onRender != nil {
		c.onRender(st)
	}
}

// build computes the visible state. The panel is rebuilt in full each time.
func (c *Controller) build() State {
	theme, err := ParseTheme(c.settings.Theme)
	if err != nil {
		theme = ThemeLight
	}
	textSize := c.settings.TextSize
	if textSize == 0 {
		textSize = DefaultTextSize
	}

	st := State{
		View:     c.view,
		ReadTime: cleanread.NoReadTime,
		Pending:  c.pending != nil,
		Theme:    theme,
		TextSize: textSize,
	}
	if c.summary != nil {
		s := *c.summary
		st.Summary = &s
	}
	if c.extraction != nil {
		st.ReadTime = c.extraction.ReadTimeLabel()
	}

	if c.view == ViewRaw {
		st.Body = string(c.snapshot)
		return st
	}

	cleaned := ""
	if c.extraction != nil {
		cleaned = c.extraction.HTML
	}

	pv := panelView{
		View:        c.view,
		ReadTime:    st.ReadTime,
		SummaryMode: c.settings.SummaryMode,
		Theme:       theme,
		TextSize:    textSize,
	}
	switch {
	case c.view == ViewSummary && c.summary != nil:
		st.Body = mainBody(c.summary.Content, SummaryHeading, theme)
	default:
		st.Body = mainBody(cleaned, "", theme)
	}
	switch {
	case c.notice != "":
		pv.Body = c.notice
	case c.view == ViewClean:
		pv.Body = cleaned
	case c.pending != nil:
		pv.Body = LoadingMessage
	case c.summary != nil:
		pv.Body = c.summary.Content
	default:
		pv.Body = EmptyMessage
		pv.ShowEmpty = true
	}

	panel, err := renderPanel(pv)
	if err != nil {
		c.logger.Error("rendering panel", "error", err)
	}
	st.Panel = panel
	return st
}
