package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	defaultTopic   = "todos"
	connectTimeout = 5 * time.Second
	publishTimeout = 3 * time.Second
)

// MQTTPublisher gửi Event dạng JSON lên một topic MQTT
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// ParseBrokerURL tách địa chỉ broker và topic từ MQTT_URL, ví dụ mqtt://host:1883/todos
func ParseBrokerURL(raw string) (broker, topic string, err error) {
	uri, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid MQTT_URL: %w", err)
	}
	if uri.Host == "" {
		return "", "", errors.New("MQTT_URL must include a host")
	}

	topic = strings.Trim(uri.Path, "/")
	if topic == "" {
		topic = defaultTopic
	}

	scheme := "tcp"
	switch uri.Scheme {
	case "mqtts", "ssl", "tls":
		scheme = "ssl"
	case "ws", "wss":
		scheme = uri.Scheme
	}
	return fmt.Sprintf("%s://%s", scheme, uri.Host), topic, nil
}

func createClientOptions(clientID, raw string) (*mqtt.ClientOptions, string, error) {
	broker, topic, err := ParseBrokerURL(raw)
	if err != nil {
		return nil, "", err
	}
	uri, _ := url.Parse(raw)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	if uri.User != nil {
		opts.SetUsername(uri.User.Username())
		if password, ok := uri.User.Password(); ok {
			opts.SetPassword(password)
		}
	}
	return opts, topic, nil
}

// ConnectMQTT kết nối tới broker trong MQTT_URL
func ConnectMQTT(clientID, raw string) (*MQTTPublisher, error) {
	opts, topic, err := createClientOptions(clientID, raw)
	if err != nil {
		return nil, err
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, errors.New("timed out connecting to MQTT broker")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("cannot connect to MQTT broker: %w", err)
	}
	return &MQTTPublisher{client: client, topic: topic}, nil
}

// Payload mã hoá Event thành JSON để gửi đi
func Payload(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

// Topic trả về topic con cho một loại Event, ví dụ todos/todo.created
func (p *MQTTPublisher) Topic(t Type) string {
	return p.topic + "/" + string(t)
}

func (p *MQTTPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := Payload(ev)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.Topic(ev.Type), 1, false, payload)
	wait := publishTimeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
		wait = time.Until(deadline)
	}
	if !token.WaitTimeout(wait) {
		return fmt.Errorf("timed out publishing %s", ev.Type)
	}
	return token.Error()
}

// Close ngắt kết nối, chờ tối đa 250ms cho các message đang gửi
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
