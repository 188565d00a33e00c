package service

// Event types emitted over the real-time channel.
const (
	EventSessionStarted      = "session_started"
	EventSessionReset        = "session_reset"
	EventTurnResolved        = "turn_resolved"
	EventConcessionConfirmed = "concession_confirmed"
	EventOfferPending        = "offer_pending"
	EventAgreementRequested  = "agreement_requested"
	EventAgreementConcluded  = "agreement_concluded"
)

// Broadcaster sends real-time events to a user's connected clients.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastSessionEvent(userID string, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastSessionEvent(string, string, any) {}
