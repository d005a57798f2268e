package mqtt

import (
	"context"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBrokerURL = "tcp://0.0.0.0:1883"
	EventsTopic      = "masjidfinder/events"

	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

var connectHandler paho.OnConnectHandler = func(client paho.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler paho.ConnectionLostHandler = func(client paho.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Connect dials the broker and returns a client that reconnects on its own.
func Connect(brokerURL, clientID string) (paho.Client, error) {
	if brokerURL == "" {
		brokerURL = DefaultBrokerURL
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Str("client_id", clientID).Msg("MQTT client initialized")
	return client, nil
}

// broker is the part of paho.Client the relay needs.
type broker interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
	Unsubscribe(topics ...string) paho.Token
	Disconnect(quiesce uint)
}

// Relay carries event bus frames over a single MQTT topic.
type Relay struct {
	client broker
	topic  string
	qos    byte
}

func NewRelay(client broker, topic string) *Relay {
	if topic == "" {
		topic = EventsTopic
	}
	return &Relay{client: client, topic: topic, qos: 1}
}

func (r *Relay) Publish(ctx context.Context, payload []byte) error {
	token := r.client.Publish(r.topic, r.qos, false, payload)
	if err := wait(ctx, token); err != nil {
		return fmt.Errorf("publish to %s: %w", r.topic, err)
	}
	return nil
}

func (r *Relay) Listen(ctx context.Context, deliver func(payload []byte)) error {
	token := r.client.Subscribe(r.topic, r.qos, func(_ paho.Client, msg paho.Message) {
		deliver(msg.Payload())
	})
	if err := wait(ctx, token); err != nil {
		return fmt.Errorf("subscribe to %s: %w", r.topic, err)
	}

	go func() {
		<-ctx.Done()
		r.client.Unsubscribe(r.topic)
	}()

	log.Info().Str("topic", r.topic).Msg("MQTT event relay listening")
	return nil
}

func (r *Relay) Close() error {
	r.client.Disconnect(quiesceMillis)
	log.Info().Msg("MQTT client disconnected")
	return nil
}

func wait(ctx context.Context, token paho.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("timed out after %s", publishTimeout)
	}
}
