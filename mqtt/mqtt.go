/*
 * Copyright (C) 2025 Nethesis S.r.l.
 * SPDX-License-Identifier: GPL-3.0-or-later
 */

package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/nethesis/app-registry/configuration"
	"github.com/nethesis/app-registry/logs"
	"github.com/nethesis/app-registry/models"
)

var newClientFunc = mqtt.NewClient

// Publisher sends registry change events to the broker and receives the
// events published by other registry instances on the same topic.
type Publisher struct {
	client   mqtt.Client
	topic    string
	origin   string
	incoming chan models.RegistryEvent
}

// New connects to the configured broker in background. It returns nil when
// MQTT is not configured, a nil Publisher drops every event.
func New(cfg configuration.Configuration) *Publisher {
	if !cfg.MQTTEnabled {
		logs.Log("[INFO][MQTT] MQTT disabled - missing broker host")
		return nil
	}

	p := &Publisher{
		topic:    strings.TrimSuffix(cfg.MQTTTopic, "/"),
		origin:   uuid.NewString(),
		incoming: make(chan models.RegistryEvent, 100),
	}

	// MQTT client options
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%s", cfg.MQTTHost, cfg.MQTTPort))
	opts.SetClientID("app-registry-" + p.origin[:8])
	opts.SetUsername(cfg.MQTTUsername)
	opts.SetPassword(cfg.MQTTPassword)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logs.Log(fmt.Sprintf("[WARNING][MQTT] Connection lost: %v", err))
	})

	// subscribe again on every reconnection
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logs.Log("[INFO][MQTT] Connected to MQTT broker")
		p.subscribe()
	})

	p.client = newClientFunc(opts)

	// don't wait for the broker, the client retries in background
	token := p.client.Connect()
	go func() {
		if token.Wait() && token.Error() != nil {
			logs.Log(fmt.Sprintf("[ERROR][MQTT] Failed to connect to MQTT broker: %v", token.Error()))
			logs.Log("[INFO][MQTT] Will retry connection in background...")
		}
	}()

	logs.Log("[INFO][MQTT] MQTT client initialized - connecting in background")
	return p
}

// Topic returns the topic an entity's events are published on.
func (p *Publisher) Topic(entity string) string {
	return p.topic + "/" + entity
}

// Publish sends the event without waiting for the broker acknowledgement.
func (p *Publisher) Publish(event models.RegistryEvent) {
	if p == nil || p.client == nil {
		return
	}

	event.Origin = p.origin
	payload, err := json.Marshal(event)
	if err != nil {
		logs.Log("[ERROR][MQTT] Failed to marshal event: " + err.Error())
		return
	}

	token := p.client.Publish(p.Topic(event.Entity), 1, false, payload)
	go func() {
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			logs.Log(fmt.Sprintf("[WARNING][MQTT] Failed to publish on %s: %v", p.Topic(event.Entity), token.Error()))
		}
	}()
}

// Events delivers the events of the other registry instances.
func (p *Publisher) Events() <-chan models.RegistryEvent {
	if p == nil {
		return nil
	}
	return p.incoming
}

func (p *Publisher) subscribe() {
	filter := p.topic + "/#"
	token := p.client.Subscribe(filter, 0, func(client mqtt.Client, msg mqtt.Message) {
		p.handleMessage(msg.Topic(), msg.Payload())
	})
	go func() {
		if token.Wait() && token.Error() != nil {
			logs.Log(fmt.Sprintf("[ERROR][MQTT] Failed to subscribe to %s: %v", filter, token.Error()))
			return
		}
		logs.Log(fmt.Sprintf("[INFO][MQTT] Subscribed to topic: %s", filter))
	}()
}

// handleMessage forwards foreign events, our own come back from the broker too.
func (p *Publisher) handleMessage(topic string, payload []byte) {
	var event models.RegistryEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		logs.Log(fmt.Sprintf("[WARNING][MQTT] Ignoring malformed event on %s: %v", topic, err))
		return
	}
	if event.Origin == p.origin {
		return
	}

	select {
	case p.incoming <- event:
	default:
		logs.Log(fmt.Sprintf("[ERROR][MQTT] Event channel full, dropping message from topic: %s", topic))
	}
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	if p.client.IsConnected() {
		p.client.Disconnect(250)
		logs.Log("[INFO][MQTT] MQTT client disconnected")
	}
}
