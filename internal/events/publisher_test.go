package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	messages []kafka.Message
	err      error
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func TestPublishCheckoutCompleted(t *testing.T) {
	writer := &mockWriter{}
	publisher := &KafkaPublisher{writer: writer}

	event := CheckoutCompleted{
		Reference:  "QS-ABC-DEF123",
		Email:      "amara@example.com",
		Total:      2150,
		Units:      2,
		OccurredAt: time.Now(),
	}

	require.NoError(t, publisher.PublishCheckoutCompleted(context.Background(), event))
	require.Len(t, writer.messages, 1)

	assert.Equal(t, []byte("QS-ABC-DEF123"), writer.messages[0].Key)

	var decoded CheckoutCompleted
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, event.Reference, decoded.Reference)
	assert.Equal(t, event.Total, decoded.Total)
}

func TestPublishCheckoutCompleted_WriterError(t *testing.T) {
	publisher := &KafkaPublisher{writer: &mockWriter{err: errors.New("broker down")}}

	err := publisher.PublishCheckoutCompleted(context.Background(), CheckoutCompleted{Reference: "QS-1"})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishCheckoutCompleted(context.Background(), CheckoutCompleted{}))
}
