package airquality

import (
	"log/slog"

	"airquality-server/internal/modules/airquality/repository"
	"airquality-server/internal/modules/airquality/types"
)

// MQTTSubscriber is the subset of the mqtt subscriber this module needs.
type MQTTSubscriber interface {
	SetMessageHandler(handler func(t types.Telemetry) error)
}

// registerMQTTHandler stores readings published by sensors. The payload shape
// and required fields match the HTTP ingest path exactly.
func registerMQTTHandler(subscriber MQTTSubscriber, repo repository.ReadingRepository) {
	subscriber.SetMessageHandler(func(t types.Telemetry) error {
		ts, err := types.ParseTimestamp(t.Timestamp)
		if err != nil {
			return err
		}

		id, err := repo.InsertReading(t.DeviceID, ts, *t.Temperature, *t.Humidity, *t.PM25)
		if err != nil {
			slog.Error("failed to insert reading",
				"device_id", t.DeviceID,
				"error", err,
			)
			return err
		}

		slog.Debug("stored telemetry",
			"device_id", t.DeviceID,
			"id", id,
		)
		return nil
	})
}
