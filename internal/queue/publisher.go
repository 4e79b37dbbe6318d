package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultBufferSize   = 256
	defaultDialTimeout  = 2 * time.Second
	publishTimeout      = 5 * time.Second
	redialBackoff       = 5 * time.Second
	shutdownDrainWindow = 5 * time.Second
)

// ErrBufferFull is returned when events arrive faster than the broker takes
// them. The event is dropped.
var ErrBufferFull = errors.New("booking event buffer full")

// Publisher sends booking events to the durable booking.events queue.
// PublishBookingEvent only enqueues; Run owns the broker connection and
// does every dial and publish, so callers never wait on the broker.
type Publisher struct {
	URL         string
	DialTimeout time.Duration

	events chan BookingEvent
	done   chan struct{}

	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

func NewPublisher(url string) *Publisher {
	return newPublisher(url, defaultBufferSize)
}

func newPublisher(url string, buffer int) *Publisher {
	return &Publisher{
		URL:         url,
		DialTimeout: defaultDialTimeout,
		events:      make(chan BookingEvent, buffer),
		done:        make(chan struct{}),
	}
}

// PublishBookingEvent hands ev to the publisher goroutine without blocking.
func (p *Publisher) PublishBookingEvent(ctx context.Context, ev BookingEvent) error {
	select {
	case p.events <- ev:
		return nil
	default:
		return ErrBufferFull
	}
}

// Run drains the buffer until ctx is cancelled, then flushes what is still
// queued for a short window and closes the connection.
func (p *Publisher) Run(ctx context.Context) {
	defer close(p.done)
	defer p.reset()

	for {
		select {
		case ev := <-p.events:
			p.send(ev)
		case <-ctx.Done():
			p.flush()
			return
		}
	}
}

// Done is closed once Run has returned.
func (p *Publisher) Done() <-chan struct{} {
	return p.done
}

func (p *Publisher) flush() {
	deadline := time.Now().Add(shutdownDrainWindow)
	for time.Now().Before(deadline) {
		select {
		case ev := <-p.events:
			p.send(ev)
		default:
			return
		}
	}
	if n := len(p.events); n > 0 {
		log.Printf("rabbitmq: dropping %d unpublished booking events on shutdown", n)
	}
}

// send marks the message persistent so it survives a broker restart.
func (p *Publisher) send(ev BookingEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal %s: %v", ev.Type, err)
		return
	}
	if err := p.ensureChannel(); err != nil {
		log.Printf("rabbitmq: dropping %s for booking %d: %v", ev.Type, ev.BookingID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", BookingEventsQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish %s failed: %v", ev.Type, err)
		p.reset()
	}
}

func (p *Publisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()
	if time.Now().Before(p.retryAt) {
		return errors.New("rabbitmq unavailable, waiting to redial")
	}

	conn, err := dial(p.URL, p.DialTimeout)
	if err != nil {
		p.retryAt = time.Now().Add(redialBackoff)
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(BookingEventsQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// dial bounds the TCP connect so a dead broker fails fast.
func dial(url string, timeout time.Duration) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	return conn, nil
}
