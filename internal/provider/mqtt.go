package provider

import (
	"context"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/lowaak/smart-trainer/pose-trainer-app/internal/pose"
)

const mqttDisconnectQuiesceMs = 250

// MQTTOptions configures the broker connection
type MQTTOptions struct {
	Broker   string
	ClientID string
	Topic    string
}

// MQTTProvider subscribes to a topic on which a detector publishes pose frames
type MQTTProvider struct {
	logger *log.Logger
	opts   MQTTOptions
	client mqtt.Client
	frame  latestFrame
}

func NewMQTTProvider(opts MQTTOptions, logger *log.Logger) *MQTTProvider {
	if logger == nil {
		panic("MQTTProvider: logger cannot be nil")
	}
	return &MQTTProvider{logger: logger, opts: opts}
}

// Connect dials the broker and subscribes to the frame topic
func (p *MQTTProvider) Connect() error {
	clientOpts := mqtt.NewClientOptions().
		AddBroker(p.opts.Broker).
		SetClientID(p.opts.ClientID).
		SetAutoReconnect(true).
		SetCleanSession(false).
		SetConnectTimeout(10 * time.Second).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			p.logger.Printf("MQTTProvider: Connection lost: %v", err)
		})

	p.client = mqtt.NewClient(clientOpts)
	if token := p.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to %s: %w", p.opts.Broker, token.Error())
	}
	p.logger.Printf("MQTTProvider: Connected to %s", p.opts.Broker)

	token := p.client.Subscribe(p.opts.Topic, 0, p.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		p.client.Disconnect(mqttDisconnectQuiesceMs)
		return fmt.Errorf("subscribe to %s: %w", p.opts.Topic, err)
	}
	p.logger.Printf("MQTTProvider: Subscribed to %s", p.opts.Topic)
	return nil
}

func (p *MQTTProvider) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	if err := p.frame.accept(msg.Payload()); err != nil {
		p.logger.Printf("MQTTProvider: Dropping message on %s: %v", msg.Topic(), err)
	}
}

// EstimatePoses returns the newest frame received since the previous call
func (p *MQTTProvider) EstimatePoses(ctx context.Context) ([]pose.Pose, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.frame.take(), nil
}

func (p *MQTTProvider) Stats() Stats {
	return p.frame.stats()
}

// Close disconnects from the broker
func (p *MQTTProvider) Close() {
	if p.client == nil {
		return
	}
	p.client.Disconnect(mqttDisconnectQuiesceMs)
	p.logger.Printf("MQTTProvider: Disconnected")
}
