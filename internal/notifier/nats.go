package notifier

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"HoyoSentinel/internal/model"
)

const defaultSubjectPrefix = "hoyosentinel.events"

// EventEnvelope is the JSON body published for every recovery event.
type EventEnvelope struct {
	ID        string          `json:"id"`
	Account   string          `json:"account"`
	Kind      model.EventKind `json:"kind"`
	Event     model.Event     `json:"event"`
	Timestamp int64           `json:"timestamp"`
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher fans recovery events out on "<prefix>.<kind>".
type NATSPublisher struct {
	conn   publisher
	nc     *nats.Conn
	prefix string
}

// NewNATSPublisher connects to natsURL, retrying in the background like the
// other services on the bus.
func NewNATSPublisher(natsURL, subjectPrefix string) (*NATSPublisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("hoyosentinel"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", natsURL, err)
	}
	log.Printf("[INFO] NATS publisher connected: %s", natsURL)

	p := newNATSPublisher(nc, subjectPrefix)
	p.nc = nc
	return p, nil
}

func newNATSPublisher(conn publisher, subjectPrefix string) *NATSPublisher {
	prefix := strings.TrimSuffix(subjectPrefix, ".")
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// Subject returns the subject an event kind is published on.
func (p *NATSPublisher) Subject(kind model.EventKind) string {
	return p.prefix + "." + string(kind)
}

func (p *NATSPublisher) HandleEvent(account string, ev model.Event) error {
	env := EventEnvelope{
		ID:        uuid.NewString(),
		Account:   account,
		Kind:      ev.Kind(),
		Event:     ev,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", ev.Kind(), err)
	}
	if err := p.conn.Publish(p.Subject(ev.Kind()), data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.Subject(ev.Kind()), err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}
