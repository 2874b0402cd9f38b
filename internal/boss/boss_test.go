package boss

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-eggs/internal/core"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNotifyFiresOncePerRun(t *testing.T) {
	b := NewBridge(quietLogger())
	var got []Event
	b.Subscribe(func(ev Event) { got = append(got, ev) })

	assert.True(t, b.NotifyTopScore("pong", 120, "ABC"))
	assert.False(t, b.NotifyTopScore("pong", 130, "ABC"))
	require.Len(t, got, 1)
	assert.Equal(t, "pong", got[0].Title)
	assert.Equal(t, 120, got[0].Score)
	assert.Equal(t, "ABC", got[0].Initials)

	b.Arm()
	assert.True(t, b.NotifyTopScore("pong", 140, "XYZ"))
	assert.Len(t, got, 2)
}

func TestAllowOnlyCloseWhileActive(t *testing.T) {
	b := NewBridge(quietLogger())
	for a := core.ActionNone; a <= core.ActionMute; a++ {
		assert.True(t, b.Allow(a), "inactive bridge allows %v", a)
	}

	b.NotifyTopScore("breakout", 1, "AAA")
	require.True(t, b.Active())
	for a := core.ActionNone; a <= core.ActionMute; a++ {
		assert.Equal(t, a == core.ActionClose, b.Allow(a), "active bridge and %v", a)
	}

	in := core.NewInputFrame()
	in.Set(core.ActionUp)
	in.Set(core.ActionConfirm)
	in.Set(core.ActionClose)
	out := b.Filter(in)
	assert.True(t, out.Has(core.ActionClose))
	assert.False(t, out.Any(core.ActionUp, core.ActionConfirm))

	b.Resolve()
	assert.False(t, b.Active())
	assert.True(t, b.Allow(core.ActionUp))
}

func TestUnsubscribe(t *testing.T) {
	b := NewBridge(quietLogger())
	calls := 0
	unsub := b.Subscribe(func(Event) { calls++ })
	require.Equal(t, 1, b.Subscribers())

	unsub()
	unsub()
	assert.Equal(t, 0, b.Subscribers())

	b.NotifyTopScore("cycles", 9, "AAA")
	assert.Zero(t, calls)
}

func TestPanickingHandlerIsContained(t *testing.T) {
	b := NewBridge(quietLogger())
	second := false
	b.Subscribe(func(Event) { panic("overlay bug") })
	b.Subscribe(func(Event) { second = true })

	assert.NotPanics(t, func() { b.NotifyTopScore("pong", 5, "AAA") })
	assert.True(t, second)
}

func TestCloseDetaches(t *testing.T) {
	b := NewBridge(quietLogger())
	b.Subscribe(func(Event) {})
	b.NotifyTopScore("pong", 5, "AAA")

	require.NoError(t, b.Close())
	assert.Zero(t, b.Subscribers())
	assert.False(t, b.Active())
}

func TestPublisherDelivers(t *testing.T) {
	received := make(chan Event, 1)
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var ev Event
		if err := conn.ReadJSON(&ev); err == nil {
			received <- ev
		}
	}))
	defer srv.Close()

	p := NewPublisher("ws"+strings.TrimPrefix(srv.URL, "http"), quietLogger())
	b := NewBridge(quietLogger())
	b.Subscribe(p.Handler())

	b.NotifyTopScore("breakout", 4200, "JOE")

	select {
	case ev := <-received:
		assert.Equal(t, "breakout", ev.Title)
		assert.Equal(t, 4200, ev.Score)
		assert.Equal(t, "JOE", ev.Initials)
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}

	require.NoError(t, p.Close())
	sent, failed := p.Stats()
	assert.Equal(t, 1, sent)
	assert.Zero(t, failed)
}

func TestPublisherFaultsAreSwallowed(t *testing.T) {
	p := NewPublisher("ws://127.0.0.1:1/nowhere", quietLogger())
	require.NoError(t, p.Publish(Event{Title: "pong", Score: 1, Initials: "AAA"}))
	require.NoError(t, p.Close())

	sent, failed := p.Stats()
	assert.Zero(t, sent)
	assert.Equal(t, 1, failed)
	assert.ErrorIs(t, p.Publish(Event{}), ErrPublisherClosed)
	assert.NoError(t, p.Close())
}
