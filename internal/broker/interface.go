package broker

// Event is the payload published when a notification row is created.
// It mirrors the row closely enough for a connected client to render it
// without a follow-up fetch.
type Event struct {
	NotificationID uint   `json:"notification_id"`
	UserID         uint   `json:"user_id"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Type           string `json:"notification_type"`
	RelatedOrderID *uint  `json:"related_order_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}

// EventBroker fans notification events out to interested consumers
// (currently the websocket stream handler on the same node).
type EventBroker interface {
	Publish(event Event) error
	Subscribe() (<-chan Event, error)
	Close() error
}
