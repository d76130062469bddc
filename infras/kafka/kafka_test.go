package kafka_test

import (
	"context"
	"storeflight/config"
	"storeflight/infras/kafka"
	"storeflight/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "42",
		Value:   map[string]any{"reservation_id": 42, "status": "paid"},
		Headers: map[string]string{"event": "reservation.paid"},
	}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("42"), out.Key)
	assert.JSONEq(t, `{"reservation_id":42,"status":"paid"}`, string(out.Value))
	require.Len(t, out.Headers, 1)
	assert.Equal(t, "event", out.Headers[0].Key)
	assert.Equal(t, []byte("reservation.paid"), out.Headers[0].Value)
}

func TestMessage_ToKafkaMessageInvalidValue(t *testing.T) {
	msg := kafka.Message{Key: "1", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg, mocks.NewOtel())

	assert.False(t, client.Enabled())
	assert.ErrorIs(t, client.SendMessages(context.Background(), "reservation.paid", kafka.Message{Key: "1"}), kafka.ErrDisabled)
	assert.NoError(t, client.Close())
}
