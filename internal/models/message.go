package models

import "time"

// Message is a chat message mirrored from the hosted chat provider. The
// provider owns transport and history; rows here are a read-through cache
// keyed by the channel the conversation lives in.
type Message struct {
	ID         int64     `json:"id"`
	ChannelKey string    `json:"channel_key"`
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ProviderTS string    `json:"provider_ts,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
