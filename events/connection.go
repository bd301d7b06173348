package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type Connection struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// NewConnection creates a new AMQP connection and declares the session event
// queue from the provided configuration.
func NewConnection(config ConnectionConfig) (*Connection, error) {
	conn, err := amqp.Dial(config.URI)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if qc := config.QueueConfig; qc != nil {
		if _, err = ch.QueueDeclare(
			qc.Name,
			qc.Durable,
			qc.AutoDelete,
			qc.Exclusive,
			qc.NoWait,
			qc.Args,
		); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return &Connection{conn, ch}, nil
}

func (c *Connection) Close() error {
	return c.Conn.Close()
}
