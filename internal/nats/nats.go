package nats

import (
	"context"
	"encoding/json"

	"github.com/AdamBeresnev/matchmaker/internal/config"
	"github.com/AdamBeresnev/matchmaker/internal/football"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type Nats struct {
	Url   string
	Token string
	Conn  *nats.Conn
}

func Connect(cfg config.NATS) (*Nats, error) {
	n := &Nats{
		Url:   cfg.URL,
		Token: cfg.Token,
	}

	opts := []nats.Option{
		nats.Name("matchmaker"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.WithField("url", c.ConnectedUrl()).Info("NATS reconnected")
		}),
	}

	// if token provided
	if n.Token != "" {
		opts = append(opts, nats.Token(n.Token))
	}

	conn, err := nats.Connect(n.Url, opts...)
	if err != nil {
		return nil, err
	}

	n.Conn = conn

	return n, nil
}

type publisher interface {
	Publish(subject string, data []byte) error
}

// Publisher forwards match updates to "<subject>.<matchId>".
type Publisher struct {
	conn    publisher
	subject string
}

func NewPublisher(conn publisher, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

func (p *Publisher) Subject(update football.MatchUpdate) string {
	return p.subject + "." + update.Match.ID.String()
}

// NotifyMatch publishes the update. Failures are logged, never returned.
func (p *Publisher) NotifyMatch(_ context.Context, update football.MatchUpdate) {
	payload, err := json.Marshal(update)
	if err != nil {
		log.WithError(err).Error("failed to encode match update")
		return
	}

	topic := p.Subject(update)
	if err := p.conn.Publish(topic, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
	}
}
