package mqtt

import (
	"log/slog"
	"testing"

	"airquality-server/internal/config"
	"airquality-server/internal/modules/airquality/types"
)

func newTestSubscriber() *Subscriber {
	cfg := config.Config{
		MQTTBroker:   "localhost",
		MQTTPort:     1883,
		MQTTTopic:    "airquality/readings",
		MQTTClientID: "test-client",
	}
	return NewSubscriber(cfg, slog.Default())
}

func TestHandleMessage_ForwardsValidTelemetry(t *testing.T) {
	s := newTestSubscriber()

	var got types.Telemetry
	s.SetMessageHandler(func(tel types.Telemetry) error {
		got = tel
		return nil
	})

	payload := `{"device_id":"dev-1","timestamp":"2025-03-01T10:00:00Z","temperature":28.5,"humidity":60,"pm2_5":12.5}`
	s.handleMessage("airquality/readings", []byte(payload))

	if got.DeviceID != "dev-1" {
		t.Errorf("device_id = %q; want dev-1", got.DeviceID)
	}
	if got.Temperature == nil || *got.Temperature != 28.5 {
		t.Errorf("temperature = %v; want 28.5", got.Temperature)
	}
}

func TestHandleMessage_DropsMalformedPayload(t *testing.T) {
	s := newTestSubscriber()

	called := false
	s.SetMessageHandler(func(types.Telemetry) error {
		called = true
		return nil
	})

	s.handleMessage("airquality/readings", []byte("{not json"))

	if called {
		t.Error("handler called for malformed payload")
	}
}

func TestHandleMessage_DropsIncompleteTelemetry(t *testing.T) {
	s := newTestSubscriber()

	called := false
	s.SetMessageHandler(func(types.Telemetry) error {
		called = true
		return nil
	})

	// No pm2_5 field.
	payload := `{"device_id":"dev-1","timestamp":"2025-03-01T10:00:00Z","temperature":28.5,"humidity":60}`
	s.handleMessage("airquality/readings", []byte(payload))

	if called {
		t.Error("handler called for incomplete telemetry")
	}
}

func TestHandleMessage_NilHandlerDoesNotPanic(t *testing.T) {
	s := newTestSubscriber()

	payload := `{"device_id":"dev-1","timestamp":"2025-03-01T10:00:00Z","temperature":28.5,"humidity":60,"pm2_5":12.5}`
	s.handleMessage("airquality/readings", []byte(payload))
}

func TestDisconnect_Idempotent(t *testing.T) {
	s := newTestSubscriber()
	s.Disconnect()
	s.Disconnect()

	if err := s.Connect(t.Context()); err == nil {
		t.Error("Connect after Disconnect should fail")
	}
}
