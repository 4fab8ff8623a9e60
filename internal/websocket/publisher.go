package websocket

// NotificationPublisher defines the interface for pushing notifications to
// connected WebSocket clients
type NotificationPublisher interface {
	// Publish sends a notification to every connected client
	Publish(notification Notification)
}

// Ensure Hub implements NotificationPublisher
var _ NotificationPublisher = (*Hub)(nil)

// Publish implements NotificationPublisher by broadcasting to all clients
func (h *Hub) Publish(notification Notification) {
	h.Broadcast(notification)
}

// NoOpPublisher is a publisher that does nothing (for testing or when
// WebSocket is disabled)
type NoOpPublisher struct{}

// Publish does nothing
func (n *NoOpPublisher) Publish(notification Notification) {}
