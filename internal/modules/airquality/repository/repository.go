package repository

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"airquality-server/internal/modules/airquality/types"
)

//go:embed sql/list-readings.sql
var listReadingsSQL string

//go:embed sql/list-readings-by-device.sql
var listReadingsByDeviceSQL string

//go:embed sql/insert-reading.sql
var insertReadingSQL string

type ReadingRepository interface {
	ListReadings() ([]types.Reading, error)
	ListReadingsByDevice(deviceID string) ([]types.Reading, error)
	InsertReading(deviceID string, ts time.Time, temperature, humidity, pm25 float64) (int64, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ReadingRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) ListReadings() ([]types.Reading, error) {
	rows, err := r.db.Query(listReadingsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close readings rows", "error", err)
		}
	}()
	return scanReadings(rows)
}

func (r *repositoryImpl) ListReadingsByDevice(deviceID string) ([]types.Reading, error) {
	rows, err := r.db.Query(listReadingsByDeviceSQL, deviceID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close device readings rows", "error", err)
		}
	}()
	return scanReadings(rows)
}

func (r *repositoryImpl) InsertReading(deviceID string, ts time.Time, temperature, humidity, pm25 float64) (int64, error) {
	tsStr := ts.UTC().Format(time.RFC3339Nano)
	res, err := r.db.Exec(insertReadingSQL, deviceID, tsStr, temperature, humidity, pm25)
	if err != nil {
		return 0, fmt.Errorf("insert reading: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert reading id: %w", err)
	}
	return id, nil
}

func scanReadings(rows *sql.Rows) ([]types.Reading, error) {
	var out []types.Reading
	for rows.Next() {
		var rec types.Reading
		var ts string
		if err := rows.Scan(&rec.ID, &rec.DeviceID, &ts, &rec.Temperature, &rec.Humidity, &rec.PM25); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			var err2 error
			t, err2 = time.Parse(time.RFC3339, ts)
			if err2 != nil {
				return nil, fmt.Errorf("parse timestamp %q: RFC3339Nano: %w; RFC3339: %w", ts, err, err2)
			}
		}
		rec.Time = t
		out = append(out, rec)
	}
	return out, rows.Err()
}
