package messaging

import (
	"context"
	"log"

	"github.com/matst80/slask-wardrobe/pkg/draft"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends saved products and catalog changes to the broker.
type Publisher struct {
	Prefix     string
	connection *amqp.Connection
}

func NewPublisher(conn *amqp.Connection, prefix string) (*Publisher, error) {
	p := &Publisher{
		Prefix:     prefix,
		connection: conn,
	}
	if err := p.defineTopics(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) defineTopics() error {
	ch, err := p.connection.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	for _, topic := range []ChangeTopic{ProductSaved, CatalogChanged} {
		if err := DefineTopic(ch, p.Prefix, topic); err != nil {
			return err
		}
		log.Printf("Declared topic %s", getName(p.Prefix, topic))
	}
	return nil
}

func (p *Publisher) SaveProduct(_ context.Context, payload draft.Payload) error {
	return SendChange(p.connection, p.Prefix, ProductSaved, payload)
}

func (p *Publisher) CatalogChanged(change CatalogChange) error {
	return SendChange(p.connection, p.Prefix, CatalogChanged, change)
}
