package types

import (
	"fmt"
	"time"
)

// Reading is one stored air-quality measurement. Time is absolute (UTC);
// rendering to the display format happens at the HTTP boundary.
type Reading struct {
	ID          int64
	DeviceID    string
	Time        time.Time
	Temperature float64
	Humidity    float64
	PM25        float64
}

// Telemetry is the wire shape shared by the HTTP ingest body and MQTT payloads.
// Measurements are pointers so an absent field is distinguishable from zero.
type Telemetry struct {
	DeviceID    string   `json:"device_id"`
	Timestamp   string   `json:"timestamp"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	PM25        *float64 `json:"pm2_5"`
}

// Validate reports the first missing required field, if any.
func (t Telemetry) Validate() error {
	switch {
	case t.DeviceID == "":
		return fmt.Errorf("device_id is required")
	case t.Timestamp == "":
		return fmt.Errorf("timestamp is required")
	case t.Temperature == nil:
		return fmt.Errorf("temperature is required")
	case t.Humidity == nil:
		return fmt.Errorf("humidity is required")
	case t.PM25 == nil:
		return fmt.Errorf("pm2_5 is required")
	}
	return nil
}

// DisplayLayout is the single documented display format for timestamps.
const DisplayLayout = "2006-01-02 15:04:05"

// DisplayZone is UTC+7: the deployment's civil time. A fixed zone avoids a
// tzdata dependency.
var DisplayZone = time.FixedZone("UTC+7", 7*3600)

// FormatDisplay renders an absolute time in the canonical display format.
func FormatDisplay(t time.Time) string {
	return t.In(DisplayZone).Format(DisplayLayout)
}

// ParseTimestamp accepts RFC3339(Nano) or the bare display layout (which is
// interpreted as UTC+7) and returns the absolute time in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(DisplayLayout, s, DisplayZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or %q)", s, DisplayLayout)
	}
	return t.UTC(), nil
}
