package handler

// BroadcastSessionEvent implements service.Broadcaster using the WebSocket hub.
func (h *Hub) BroadcastSessionEvent(userID string, eventType string, data any) {
	h.BroadcastToUser(userID, WSEvent{
		Type: eventType,
		Data: data,
	})
}
