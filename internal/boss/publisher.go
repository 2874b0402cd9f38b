package boss

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("boss: publisher closed")

// Publisher forwards events as JSON over a websocket to an external capture
// service. Delivery happens on a background goroutine so the game loop
// never waits on the network; faults are logged and dropped.
type Publisher struct {
	url     string
	dialer  *websocket.Dialer
	timeout time.Duration
	logger  *log.Logger

	queue chan Event
	done  chan struct{}
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
	sent   int
	failed int
}

// NewPublisher starts a publisher for url.
func NewPublisher(url string, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	p := &Publisher{
		url:     url,
		dialer:  &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
		timeout: 10 * time.Second,
		logger:  logger,
		queue:   make(chan Event, 8),
		done:    make(chan struct{}),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Handler returns a bridge handler that queues events on p.
func (p *Publisher) Handler() Handler {
	return func(ev Event) {
		if err := p.Publish(ev); err != nil {
			p.logger.Warn("top score not forwarded", "title", ev.Title, "error", err)
		}
	}
}

// Publish queues ev without blocking. A full queue drops the event.
func (p *Publisher) Publish(ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- ev:
		return nil
	default:
		return fmt.Errorf("boss: queue full, dropping event for %s", ev.Title)
	}
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for {
		select {
		case ev := <-p.queue:
			p.deliver(ev)
		case <-p.done:
			// Flush what was queued before Close.
			for {
				select {
				case ev := <-p.queue:
					p.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) deliver(ev Event) {
	err := p.send(ev)
	p.mu.Lock()
	if err != nil {
		p.failed++
	} else {
		p.sent++
	}
	p.mu.Unlock()
	if err != nil {
		p.logger.Warn("top score delivery failed", "url", p.url, "error", err)
		return
	}
	p.logger.Debug("top score delivered", "url", p.url, "title", ev.Title)
}

func (p *Publisher) send(ev Event) error {
	conn, _, err := p.dialer.Dial(p.url, nil)
	if err != nil {
		return fmt.Errorf("boss: dial %s: %w", p.url, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.timeout))
	if err := conn.WriteJSON(ev); err != nil {
		return fmt.Errorf("boss: write event: %w", err)
	}
	// The event is out; a peer that hangs up first is not a failure.
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
	return nil
}

// Stats returns how many events were delivered and how many failed.
func (p *Publisher) Stats() (sent, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent, p.failed
}

// Close delivers queued events and stops the worker. Safe to call twice.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	p.wg.Wait()
	return nil
}
