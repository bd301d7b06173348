package events

// ConnectionConfig configures the AMQP connection used for session events.
type ConnectionConfig struct {
	// URI: The RabbitMQ connection URI, including credentials if necessary.
	URI string
	// QueueConfig: The configuration of the queue the events are routed to.
	QueueConfig *QueueConfig
}

// QueueConfig describes the queue declared for session lifecycle events.
type QueueConfig struct {
	// Name: The name of the queue to be declared and used for session events.
	Name string
	// Durable: Whether the queue survives a broker restart.
	Durable bool
	// AutoDelete: Whether the queue is removed when no longer in use.
	AutoDelete bool
	// Exclusive: Whether the queue is exclusive to the declaring connection.
	Exclusive bool
	// NoWait: Whether the declaration should not wait for a server response.
	NoWait bool
	// Args: Additional queue arguments, e.g. x-message-ttl or x-queue-type.
	Args map[string]interface{}
}

// PublishConfig shapes how session events are published.
type PublishConfig struct {
	// Exchange: The exchange session events are published to.
	Exchange string
	// RoutingKey: The routing key for session events.
	RoutingKey string
	// ContentType: The content type of the message body. Events are JSON, so
	// this defaults to "application/json" when empty.
	ContentType string
	// DeliveryMode: 1 = non-persistent, 2 = persistent.
	DeliveryMode uint8
}
