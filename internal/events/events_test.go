package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/events"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMessageWriter struct {
	mock.Mock
}

func (m *MockMessageWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockMessageWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	writer := new(MockMessageWriter)
	var sent []kafkago.Message
	writer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafkago.Message) }).
		Return(nil).Once()

	p := events.NewKafkaPublisher(nil, "settlement.",
		events.WithMessageWriter(writer),
		events.WithPublishClock(func() time.Time { return at }))

	event := domain.PaymentAppliedEvent{
		TransactionID:    "tx-1",
		InvoiceID:        "inv-1",
		AmountApplied:    decimal.NewFromInt(60000),
		RemainingBalance: decimal.NewFromInt(40000),
	}
	require.NoError(t, p.Publish(context.Background(), event))
	writer.AssertExpectations(t)

	require.Len(t, sent, 1)
	assert.Equal(t, "settlement."+domain.EventPaymentApplied, sent[0].Topic)
	assert.Equal(t, "inv-1", string(sent[0].Key))

	var body struct {
		EventID     string          `json:"eventId"`
		EventName   string          `json:"eventName"`
		AggregateID string          `json:"aggregateId"`
		OccurredAt  time.Time       `json:"occurredAt"`
		Payload     json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(sent[0].Value, &body))
	assert.NotEmpty(t, body.EventID)
	assert.Equal(t, domain.EventPaymentApplied, body.EventName)
	assert.True(t, at.Equal(body.OccurredAt))

	var payload domain.PaymentAppliedEvent
	require.NoError(t, json.Unmarshal(body.Payload, &payload))
	assert.True(t, decimal.NewFromInt(40000).Equal(payload.RemainingBalance))
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	writer := new(MockMessageWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	writer.On("Close").Return(nil)

	p := events.NewKafkaPublisher(nil, "", events.WithMessageWriter(writer))
	err := p.Publish(context.Background(), domain.RateUpdatedEvent{FromCurrency: "USD", ToCurrency: "INR"})

	assert.ErrorContains(t, err, domain.EventRateUpdated)
	assert.NoError(t, p.Close())
	writer.AssertExpectations(t)
}

func TestLogPublisher_Publish(t *testing.T) {
	p := events.NewLogPublisher()
	err := p.Publish(context.Background(), domain.ExchangeGainLossEvent{TransactionID: "tx-1", IsGain: true})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}
