package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"airquality-server/internal/modules/airquality/types"
	"airquality-server/internal/utils"
)

// readingResponse is the boundary projection of a stored reading. Timestamp
// carries the canonical display format (UTC+7, types.DisplayLayout).
type readingResponse struct {
	ID          int64   `json:"id"`
	DeviceID    string  `json:"device_id"`
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PM25        float64 `json:"pm2_5"`
}

func toResponse(readings []types.Reading) []readingResponse {
	out := make([]readingResponse, 0, len(readings))
	for _, rec := range readings {
		out = append(out, readingResponse{
			ID:          rec.ID,
			DeviceID:    rec.DeviceID,
			Timestamp:   types.FormatDisplay(rec.Time),
			Temperature: rec.Temperature,
			Humidity:    rec.Humidity,
			PM25:        rec.PM25,
		})
	}
	return out
}

func (c *airQualityControllerImpl) handleList(w http.ResponseWriter, r *http.Request) {
	readings, err := c.repository.ListReadings()
	if err != nil {
		slog.Error("list readings failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch readings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toResponse(readings))
}

func (c *airQualityControllerImpl) handleListByDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("device_id")
	if deviceID == "" {
		utils.WriteError(w, http.StatusBadRequest, "missing device id")
		return
	}

	readings, err := c.repository.ListReadingsByDevice(deviceID)
	if err != nil {
		slog.Error("list device readings failed", "device_id", deviceID, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch readings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toResponse(readings))
}

func (c *airQualityControllerImpl) handleIngest(w http.ResponseWriter, r *http.Request) {
	var body types.Telemetry
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := body.Validate(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ts, err := types.ParseTimestamp(body.Timestamp)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := c.repository.InsertReading(body.DeviceID, ts, *body.Temperature, *body.Humidity, *body.PM25)
	if err != nil {
		slog.Error("insert reading failed", "device_id", body.DeviceID, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to store reading")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Data inserted successfully",
		"id":      id,
	})
}
