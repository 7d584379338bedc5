package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ChannelMock struct {
	mock.Mock
}

func (m *ChannelMock) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func TestPublisher_Publish(t *testing.T) {
	tests := []struct {
		name       string
		message    any
		publishErr error
		wantErr    bool
		wantBody   string
	}{
		{
			name:     "success",
			message:  map[string]int{"days": 2},
			wantBody: `{"days":2}`,
		},
		{
			name:       "broker error",
			message:    map[string]int{"days": 2},
			publishErr: errors.New("channel closed"),
			wantErr:    true,
			wantBody:   `{"days":2}`,
		},
		{
			name:    "unserializable message",
			message: make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := new(ChannelMock)
			if tt.wantBody != "" {
				ch.On("Publish", "notifications", "subscription.warning", false, false,
					mock.MatchedBy(func(p amqp.Publishing) bool {
						return string(p.Body) == tt.wantBody &&
							p.ContentType == "application/json" &&
							p.DeliveryMode == amqp.Persistent
					})).Return(tt.publishErr).Once()
			}

			err := NewPublisher(ch, "notifications", "subscription.warning").Publish(context.Background(), tt.message)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			ch.AssertExpectations(t)
		})
	}
}

func TestPublisher_CancelledContext(t *testing.T) {
	ch := new(ChannelMock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewPublisher(ch, "x", "y").Publish(ctx, "msg")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, ch.Calls)
}
