// Package store persists named uniform-grid datasets in SQLite. Grid
// geometry is kept in queryable columns; attribute arrays travel as a
// gob+gzip blob. The filter surface itself stays stateless — the store only
// serves the CLI and other embedders that need datasets between runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/voxelkit/voxelkit/internal/grid"
	"github.com/voxelkit/voxelkit/internal/monitoring"
)

// ErrNotFound reports a dataset id or name with no row behind it.
var ErrNotFound = errors.New("dataset not found")

// Store wraps a SQLite database holding grid datasets.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the dataset database at path and
// applies a busy timeout so concurrent CLI invocations queue instead of
// failing immediately.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for migrations and tests.
func (s *Store) DB() *sql.DB { return s.db }

// Dataset describes a stored grid without its attribute payload.
type Dataset struct {
	ID        string
	Name      string
	Dims      [3]int
	Origin    [3]float64
	Spacing   [3]float64
	CreatedAt int64
}

// SaveGrid persists a grid under a unique name and returns its dataset id.
func (s *Store) SaveGrid(name string, g *grid.UniformGrid) (string, error) {
	if name == "" {
		return "", fmt.Errorf("dataset name must not be empty")
	}
	blob, err := encodeGrid(g)
	if err != nil {
		return "", fmt.Errorf("encoding grid: %w", err)
	}

	id := uuid.New().String()
	err = retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO datasets (
				dataset_id, name,
				dim_x, dim_y, dim_z,
				origin_x, origin_y, origin_z,
				spacing_x, spacing_y, spacing_z,
				grid_blob, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, name,
			g.Dims[0], g.Dims[1], g.Dims[2],
			g.Origin[0], g.Origin[1], g.Origin[2],
			g.Spacing[0], g.Spacing[1], g.Spacing[2],
			blob, time.Now().UnixNano(),
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("inserting dataset %q: %w", name, err)
	}
	return id, nil
}

// LoadGrid loads a dataset by id.
func (s *Store) LoadGrid(id string) (*grid.UniformGrid, error) {
	return s.loadWhere("dataset_id = ?", id)
}

// LoadGridByName loads a dataset by its unique name.
func (s *Store) LoadGridByName(name string) (*grid.UniformGrid, error) {
	return s.loadWhere("name = ?", name)
}

func (s *Store) loadWhere(cond string, arg interface{}) (*grid.UniformGrid, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT grid_blob FROM datasets WHERE `+cond, arg,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying dataset: %w", err)
	}
	g, err := decodeGrid(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding grid blob: %w", err)
	}
	return g, nil
}

// ListDatasets returns all stored datasets ordered by creation time
// descending, without their attribute payloads.
func (s *Store) ListDatasets() ([]*Dataset, error) {
	rows, err := s.db.Query(`
		SELECT dataset_id, name,
		       dim_x, dim_y, dim_z,
		       origin_x, origin_y, origin_z,
		       spacing_x, spacing_y, spacing_z,
		       created_at
		FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var out []*Dataset
	for rows.Next() {
		d := &Dataset{}
		if err := rows.Scan(
			&d.ID, &d.Name,
			&d.Dims[0], &d.Dims[1], &d.Dims[2],
			&d.Origin[0], &d.Origin[1], &d.Origin[2],
			&d.Spacing[0], &d.Spacing[1], &d.Spacing[2],
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning dataset row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDataset removes a dataset by id.
func (s *Store) DeleteDataset(id string) error {
	return retryOnBusy(func() error {
		res, err := s.db.Exec(`DELETE FROM datasets WHERE dataset_id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// retryOnBusy retries a write a few times when SQLite reports the database
// as locked. The busy timeout handles most contention; this covers the
// residual SQLITE_BUSY returns under heavy concurrent writes.
func retryOnBusy(fn func() error) error {
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
		monitoring.Logf("store: database busy, retrying write (attempt %d)", attempt+1)
		time.Sleep(time.Duration(attempt+1) * 20 * time.Millisecond)
	}
	return err
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
