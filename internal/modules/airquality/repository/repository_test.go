package repository

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Minimal schema matching internal/migrate/sql/0001_schema.sql for in-memory tests.
const testSchema = `
CREATE TABLE IF NOT EXISTS air_quality_readings (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  device_id   TEXT NOT NULL,
  ts          TEXT NOT NULL,
  temperature REAL NOT NULL,
  humidity    REAL NOT NULL,
  pm2_5       REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_device_ts ON air_quality_readings(device_id, ts);
CREATE INDEX IF NOT EXISTS idx_readings_ts ON air_quality_readings(ts);
`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			t.Fatalf("close db: %v", closeErr)
		}
		t.Fatalf("exec schema: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Fatalf("close db: %v", closeErr)
		}
	})
	return db
}

func TestListReadings_Empty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	readings, err := repo.ListReadings()
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("ListReadings: got %d readings, want 0", len(readings))
	}
}

func TestListReadings_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(`
		INSERT INTO air_quality_readings (device_id, ts, temperature, humidity, pm2_5) VALUES
		('dev-1', '2025-03-01T10:00:00Z', 27.0, 60.0, 10.0),
		('dev-2', '2025-03-01T12:00:00Z', 29.0, 55.0, 14.0),
		('dev-1', '2025-03-01T11:00:00Z', 28.0, 58.0, 12.0)
	`)
	if err != nil {
		t.Fatalf("insert readings: %v", err)
	}
	repo := NewRepository(db)

	readings, err := repo.ListReadings()
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("ListReadings: got %d readings, want 3", len(readings))
	}
	// Order: 12:00, 11:00, 10:00
	if readings[0].Temperature != 29.0 || readings[1].Temperature != 28.0 || readings[2].Temperature != 27.0 {
		t.Errorf("ListReadings order: got temperatures %v, want [29, 28, 27]",
			[]float64{readings[0].Temperature, readings[1].Temperature, readings[2].Temperature})
	}
	for i := 0; i+1 < len(readings); i++ {
		if readings[i].Time.Before(readings[i+1].Time) {
			t.Errorf("readings not in descending time order at index %d", i)
		}
	}
}

func TestListReadingsByDevice(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(`
		INSERT INTO air_quality_readings (device_id, ts, temperature, humidity, pm2_5) VALUES
		('dev-1', '2025-03-01T10:00:00Z', 27.0, 60.0, 10.0),
		('dev-2', '2025-03-01T11:00:00Z', 30.0, 50.0, 20.0),
		('dev-1', '2025-03-01T12:00:00Z', 28.0, 58.0, 12.0)
	`)
	if err != nil {
		t.Fatalf("insert readings: %v", err)
	}
	repo := NewRepository(db)

	readings, err := repo.ListReadingsByDevice("dev-1")
	if err != nil {
		t.Fatalf("ListReadingsByDevice: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("ListReadingsByDevice: got %d readings, want 2", len(readings))
	}
	for i, rec := range readings {
		if rec.DeviceID != "dev-1" {
			t.Errorf("reading[%d].DeviceID = %q, want dev-1", i, rec.DeviceID)
		}
	}
	// Newest first: 12:00 then 10:00
	if !readings[0].Time.After(readings[1].Time) {
		t.Errorf("ListReadingsByDevice order: %v before %v", readings[0].Time, readings[1].Time)
	}
}

func TestListReadingsByDevice_UnknownDevice(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	readings, err := repo.ListReadingsByDevice("no-such-device")
	if err != nil {
		t.Fatalf("ListReadingsByDevice: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("ListReadingsByDevice: got %d readings, want 0", len(readings))
	}
}

func TestInsertReading_RoundTrip(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := repo.InsertReading("dev-1", ts, 27.5, 61.0, 12.5)
	if err != nil {
		t.Fatalf("InsertReading: %v", err)
	}
	if id == 0 {
		t.Fatalf("InsertReading: id = 0, want assigned id")
	}

	readings, err := repo.ListReadings()
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("ListReadings: got %d readings, want 1", len(readings))
	}
	rec := readings[0]
	if rec.ID != id {
		t.Errorf("ID = %d, want %d", rec.ID, id)
	}
	if rec.DeviceID != "dev-1" {
		t.Errorf("DeviceID = %q, want dev-1", rec.DeviceID)
	}
	if !rec.Time.Equal(ts) {
		t.Errorf("Time = %v, want %v", rec.Time, ts)
	}
	if rec.Temperature != 27.5 || rec.Humidity != 61.0 || rec.PM25 != 12.5 {
		t.Errorf("measurements = %v/%v/%v, want 27.5/61/12.5", rec.Temperature, rec.Humidity, rec.PM25)
	}
}

func TestInsertReading_ZeroMeasurements(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if _, err := repo.InsertReading("dev-1", ts, 0, 0, 0); err != nil {
		t.Fatalf("InsertReading with zeros: %v", err)
	}

	readings, err := repo.ListReadings()
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("ListReadings: got %d readings, want 1", len(readings))
	}
	if readings[0].Temperature != 0 || readings[0].Humidity != 0 || readings[0].PM25 != 0 {
		t.Errorf("zero measurements not stored as zero: %+v", readings[0])
	}
}

func TestInsertReading_AssignsIncreasingIDs(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	id1, err := repo.InsertReading("dev-1", ts, 1, 2, 3)
	if err != nil {
		t.Fatalf("InsertReading: %v", err)
	}
	id2, err := repo.InsertReading("dev-1", ts.Add(time.Minute), 4, 5, 6)
	if err != nil {
		t.Fatalf("InsertReading: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("ids not increasing: %d then %d", id1, id2)
	}
}
