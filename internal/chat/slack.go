// Package chat wraps the hosted chat provider. Transport and canonical
// history belong to the provider; local rows in the message repository are
// a read-through cache so conversations stay listable when the provider is
// disabled or unreachable.
package chat

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// Config holds chat provider configuration
type Config struct {
	BotToken      string
	ChannelPrefix string
	// Enabled turns provider calls on. When off the messenger is a
	// no-op and chat lives entirely in the local mirror.
	Enabled bool
}

// Messenger posts conversation messages to the hosted chat provider
type Messenger struct {
	cfg    Config
	client *slack.Client
	logger *zap.Logger

	mu         sync.Mutex
	channelIDs map[string]string // channel key -> provider channel ID
}

var channelNameSanitizer = regexp.MustCompile(`[^a-z0-9-]`)

// NewMessenger creates a chat messenger. The provider client is only
// constructed when the integration is enabled.
func NewMessenger(cfg Config, logger *zap.Logger) *Messenger {
	m := &Messenger{
		cfg:        cfg,
		logger:     logger,
		channelIDs: make(map[string]string),
	}
	if cfg.Enabled {
		m.client = slack.New(cfg.BotToken)
	}
	return m
}

// ChannelKey derives the conversation key for a vendor+RFP pair. The same
// key names the realtime channel and the local message mirror.
func ChannelKey(prefix, vendorID, rfpID string) string {
	name := fmt.Sprintf("%s-%s-%s", prefix, vendorID, rfpID)
	name = strings.ToLower(name)
	return channelNameSanitizer.ReplaceAllString(name, "-")
}

// EnsureChannel creates (or reuses) the provider channel for a key and
// returns its provider ID. A no-op returning "" when the provider is off.
func (m *Messenger) EnsureChannel(channelKey string) (string, error) {
	if !m.cfg.Enabled {
		return "", nil
	}

	m.mu.Lock()
	if id, ok := m.channelIDs[channelKey]; ok {
		m.mu.Unlock()
		return id, nil
	}
	m.mu.Unlock()

	channel, err := m.client.CreateConversation(slack.CreateConversationParams{
		ChannelName: channelKey,
	})
	if err != nil {
		// "name_taken" means the channel already exists; anything else
		// is a real failure.
		if !strings.Contains(err.Error(), "name_taken") {
			return "", fmt.Errorf("failed to create channel %s: %w", channelKey, err)
		}
		id, findErr := m.findChannel(channelKey)
		if findErr != nil {
			return "", findErr
		}
		m.remember(channelKey, id)
		return id, nil
	}

	m.remember(channelKey, channel.ID)
	m.logger.Info("Chat channel created",
		zap.String("channel_key", channelKey),
		zap.String("provider_id", channel.ID))
	return channel.ID, nil
}

func (m *Messenger) remember(channelKey, providerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channelIDs[channelKey] = providerID
}

func (m *Messenger) findChannel(channelKey string) (string, error) {
	channels, _, err := m.client.GetConversations(&slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           200,
	})
	if err != nil {
		return "", fmt.Errorf("failed to look up channel %s: %w", channelKey, err)
	}
	for _, ch := range channels {
		if ch.Name == channelKey {
			return ch.ID, nil
		}
	}
	return "", fmt.Errorf("channel %s not found at provider", channelKey)
}

// Post sends a message to the provider channel for the key and returns the
// provider timestamp. When the provider is off it returns "" and no error
// so the caller still records the local mirror row.
func (m *Messenger) Post(channelKey, sender, body string) (string, error) {
	if !m.cfg.Enabled {
		return "", nil
	}

	channelID, err := m.EnsureChannel(channelKey)
	if err != nil {
		return "", err
	}

	_, ts, err := m.client.PostMessage(channelID,
		slack.MsgOptionText(fmt.Sprintf("*%s*: %s", sender, body), false),
	)
	if err != nil {
		return "", fmt.Errorf("failed to post message: %w", err)
	}
	return ts, nil
}
