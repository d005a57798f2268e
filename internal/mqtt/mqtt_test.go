package mqtt

import (
	"context"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Error() error                   { return t.err }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type message struct {
	topic   string
	payload []byte
}

func (m message) Duplicate() bool   { return false }
func (m message) Qos() byte         { return 1 }
func (m message) Retained() bool    { return false }
func (m message) Topic() string     { return m.topic }
func (m message) MessageID() uint16 { return 1 }
func (m message) Payload() []byte   { return m.payload }
func (m message) Ack()              {}

// loopback routes published payloads straight to the subscribed handler.
type loopback struct {
	handlers     map[string]paho.MessageHandler
	publishErr   error
	disconnected bool
}

func (l *loopback) Publish(topic string, _ byte, _ bool, payload interface{}) paho.Token {
	if l.publishErr != nil {
		return doneToken{err: l.publishErr}
	}
	if h, ok := l.handlers[topic]; ok {
		h(nil, message{topic: topic, payload: payload.([]byte)})
	}
	return doneToken{}
}

func (l *loopback) Subscribe(topic string, _ byte, cb paho.MessageHandler) paho.Token {
	if l.handlers == nil {
		l.handlers = map[string]paho.MessageHandler{}
	}
	l.handlers[topic] = cb
	return doneToken{}
}

func (l *loopback) Unsubscribe(topics ...string) paho.Token {
	for _, t := range topics {
		delete(l.handlers, t)
	}
	return doneToken{}
}

func (l *loopback) Disconnect(uint) { l.disconnected = true }

func TestRelayPublishAndListen(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &loopback{}
	relay := NewRelay(client, "")

	var got []byte
	require.NoError(t, relay.Listen(ctx, func(p []byte) { got = p }))
	require.NoError(t, relay.Publish(ctx, []byte(`{"topic":"subscription.changed"}`)))
	assert.JSONEq(t, `{"topic":"subscription.changed"}`, string(got))

	require.NoError(t, relay.Close())
	assert.True(t, client.disconnected)
}

func TestRelayPublishError(t *testing.T) {
	relay := NewRelay(&loopback{publishErr: errors.New("broker gone")}, "custom/topic")
	err := relay.Publish(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "custom/topic")
}
