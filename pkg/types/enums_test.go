package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType(t *testing.T) {
	tests := []struct {
		et   EventType
		want string
	}{
		{EventNone, "none"},
		{EventConnect, "connect"},
		{EventDisconnect, "disconnect"},
		{EventReceive, "receive"},
		{EventTimeout, "timeout"},
		{EventType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.et.String())
		})
	}
}

func TestChannelType_Properties(t *testing.T) {
	assert.True(t, ChannelReliable.Reliable())
	assert.True(t, ChannelReliable.Sequenced())

	assert.True(t, ChannelReliableUnsequenced.Reliable())
	assert.False(t, ChannelReliableUnsequenced.Sequenced())

	assert.False(t, ChannelUnreliable.Reliable())
	assert.False(t, ChannelUnreliable.Sequenced())

	assert.False(t, ChannelUnreliableSequenced.Reliable())
	assert.True(t, ChannelUnreliableSequenced.Sequenced())

	assert.False(t, ChannelType(42).Valid())
	assert.Equal(t, "unknown", ChannelType(42).String())

	t.Log("✅ ChannelType 属性测试通过")
}

func TestParseChannelType(t *testing.T) {
	ct, err := ParseChannelType("Reliable-Unsequenced")
	require.NoError(t, err)
	assert.Equal(t, ChannelReliableUnsequenced, ct)

	ct, err = ParseChannelType(" unthrottled ")
	require.NoError(t, err)
	assert.Equal(t, ChannelUnthrottled, ct)

	_, err = ParseChannelType("tcp")
	assert.Error(t, err)

	t.Log("✅ ParseChannelType 测试通过")
}

func TestChannelType_JSON(t *testing.T) {
	channels := []ChannelType{ChannelReliable, ChannelUnreliableFragmented}

	data, err := json.Marshal(channels)
	require.NoError(t, err)
	assert.JSONEq(t, `["reliable","unreliable_fragmented"]`, string(data))

	var decoded []ChannelType
	require.NoError(t, json.Unmarshal([]byte(`["unreliable_sequenced","reliable"]`), &decoded))
	assert.Equal(t, []ChannelType{ChannelUnreliableSequenced, ChannelReliable}, decoded)

	assert.Error(t, json.Unmarshal([]byte(`[3]`), &decoded))

	_, err = json.Marshal(ChannelType(-1))
	assert.Error(t, err)

	t.Log("✅ ChannelType JSON 测试通过")
}

func TestPeerStatistics(t *testing.T) {
	s := PeerStatistics{CurrentPing: 25, PacketsSent: 200, PacketsLost: 10}
	assert.Equal(t, "25ms", s.RTT().String())
	assert.InDelta(t, 0.05, s.LossRate(), 1e-9)
	assert.Zero(t, PeerStatistics{}.LossRate())
}
