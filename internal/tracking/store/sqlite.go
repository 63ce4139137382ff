package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nexus-logistics/tracking-service/internal/tracking/core"
	"github.com/nexus-logistics/tracking-service/internal/tracking/core/model"
	"github.com/nexus-logistics/tracking-service/pkg/options"
)

var _ core.HistoryStore = (*Sqlite)(nil)

// Sqlite implements the append-only history store. Rows are never updated or
// deleted here; there is deliberately no uniqueness constraint, so duplicate
// rows from at-least-once redelivery are expected and kept.
type Sqlite struct {
	conn *sql.DB
}

// New opens (and if necessary creates) the history database.
func New(opts *options.SqliteOptions) (*Sqlite, error) {
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000", opts.Path)

	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite works best with a single writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	s := &Sqlite{conn: conn}
	if err := s.initialize(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return s, nil
}

func (s *Sqlite) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vehicle_locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vehicle_id TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		timestamp INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_locations_vehicle_timestamp
		ON vehicle_locations(vehicle_id, timestamp);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Append inserts one history row. Errors propagate unretried.
func (s *Sqlite) Append(ctx context.Context, r *model.Report) error {
	query := `INSERT INTO vehicle_locations (vehicle_id, latitude, longitude, timestamp) VALUES (?, ?, ?, ?)`
	_, err := s.conn.ExecContext(ctx, query, r.VehicleID, r.Latitude, r.Longitude, r.Timestamp)
	return err
}

// GetLatestByKey returns the max-timestamp row for the vehicle.
func (s *Sqlite) GetLatestByKey(ctx context.Context, vehicleID string) (*model.Report, error) {
	query := `
		SELECT vehicle_id, latitude, longitude, timestamp
		FROM vehicle_locations
		WHERE vehicle_id = ?
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var r model.Report
	err := s.conn.QueryRowContext(ctx, query, vehicleID).Scan(
		&r.VehicleID, &r.Latitude, &r.Longitude, &r.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// Ping reports store reachability for health checks.
func (s *Sqlite) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the database connection.
func (s *Sqlite) Close() error {
	return s.conn.Close()
}
