package realtime

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Type identifies the kind of real-time event on a channel
type Type string

const (
	TypeTyping        Type = "client.typing"
	TypeMemberJoined  Type = "presence.joined"
	TypeMemberLeft    Type = "presence.left"
	TypeMessagePosted Type = "message.posted"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeTyping, TypeMemberJoined, TypeMemberLeft, TypeMessagePosted:
		return true
	default:
		return false
	}
}

// Event is one real-time occurrence on a channel. Channels are keyed by
// the vendor+RFP conversation they belong to.
type Event struct {
	ID         string            `json:"id"`
	Type       Type              `json:"type"`
	ChannelKey string            `json:"channel_key"`
	Sender     string            `json:"sender"`
	Payload    map[string]string `json:"payload,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewEvent creates an event with a generated ID and current timestamp
func NewEvent(eventType Type, channelKey, sender string) *Event {
	return &Event{
		ID:         generateID(),
		Type:       eventType,
		ChannelKey: channelKey,
		Sender:     sender,
		Timestamp:  time.Now(),
	}
}

// WithPayload returns a copy of the event with one payload entry added
func (e *Event) WithPayload(key, value string) *Event {
	payload := make(map[string]string, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value

	clone := *e
	clone.Payload = payload
	return &clone
}

func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "evt-unknown"
	}
	return hex.EncodeToString(b)
}
