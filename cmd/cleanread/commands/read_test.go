package commands

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cleanread/pkg/session"
	"github.com/jmylchreest/cleanread/pkg/summary"
)

const readPage = `<html><body><nav>Home | About</nav><article><h1>Tides</h1>
<p>The tide rises and falls twice a day along most coasts of the world.</p>
<p>The moon pulls the water toward it while the earth turns beneath.</p>
</article></body></html>`

type fixedSummarizer string

func (f fixedSummarizer) Summarize(context.Context, string, summary.Mode) (string, error) {
	return string(f), nil
}

type recorder struct {
	mu     sync.Mutex
	events []any
}

func (r *recorder) emit(v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, v)
}

func (r *recorder) replies() []replyEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []replyEvent
	for _, e := range r.events {
		if re, ok := e.(replyEvent); ok {
			out = append(out, re)
		}
	}
	return out
}

func TestReadCommands(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := session.New(readPage, fixedSummarizer("Tides follow the moon."))
	go func() { _ = ctrl.Run(ctx) }()

	input := strings.Join([]string{
		"# comments and blank lines are skipped",
		"",
		"cleanPage",
		`{"action": "setTheme", "theme": "dark"}`,
		"setTextSize 300",
		"fly away",
		"setViewMode summary",
	}, "\n")

	rec := &recorder{}
	require.NoError(t, readCommands(ctx, ctrl, strings.NewReader(input), rec.emit))
	waitIdle(ctx, ctrl, 2*time.Second)

	replies := rec.replies()
	require.Len(t, replies, 5)

	assert.Equal(t, "cleanPage", replies[0].Command)
	assert.True(t, replies[0].Success)
	assert.NotEmpty(t, replies[0].ReadTime)

	assert.True(t, replies[1].Success)

	assert.False(t, replies[2].Success)
	assert.NotEmpty(t, replies[2].Error)

	assert.Equal(t, "fly away", replies[3].Command)
	assert.False(t, replies[3].Success)

	assert.True(t, replies[4].Success)

	st := ctrl.State()
	assert.Equal(t, session.ViewSummary, st.View)
	assert.Equal(t, session.ThemeDark, st.Theme)
	assert.False(t, st.Pending)
	assert.Contains(t, st.Body, "Tides follow the moon.")
}

func TestWaitIdle_ReturnsWhenNothingPending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := session.New(readPage, nil)
	go func() { _ = ctrl.Run(ctx) }()
	_, err := ctrl.Dispatch(ctx, session.CleanPage{})
	require.NoError(t, err)

	start := time.Now()
	waitIdle(ctx, ctrl, time.Minute)
	assert.Less(t, time.Since(start), time.Second)
}
