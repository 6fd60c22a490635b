package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChannelKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		vendorID string
		rfpID    string
		expected string
	}{
		{
			name:     "plain ids",
			prefix:   "biz",
			vendorID: "v-abc123",
			rfpID:    "rfp-def456",
			expected: "biz-v-abc123-rfp-def456",
		},
		{
			name:     "uppercase is lowered",
			prefix:   "BIZ",
			vendorID: "V-ABC",
			rfpID:    "RFP-1",
			expected: "biz-v-abc-rfp-1",
		},
		{
			name:     "illegal characters become dashes",
			prefix:   "biz",
			vendorID: "v_1!",
			rfpID:    "rfp 2",
			expected: "biz-v-1--rfp-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChannelKey(tt.prefix, tt.vendorID, tt.rfpID))
		})
	}
}

func TestMessengerDisabledIsNoOp(t *testing.T) {
	m := NewMessenger(Config{Enabled: false}, zap.NewNop())

	id, err := m.EnsureChannel("biz-v-1-rfp-1")
	require.NoError(t, err)
	assert.Empty(t, id)

	ts, err := m.Post("biz-v-1-rfp-1", "alice", "hello")
	require.NoError(t, err)
	assert.Empty(t, ts)
}
