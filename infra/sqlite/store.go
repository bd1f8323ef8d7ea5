// Package sqlite persists trips, drivers and the reassignment audit trail to
// a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/friomar/dispatch/core/model"
	"github.com/friomar/dispatch/core/store"
)

// Store implements store.TripStore, store.DriverStore and store.Auditor over
// a single database file.
type Store struct {
	db *sql.DB
}

// New opens or creates the database at path and ensures schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS trips (
        id INTEGER PRIMARY KEY,
        client TEXT,
        pickup TEXT,
        dropoff TEXT,
        cargo TEXT,
        km INTEGER,
        price REAL,
        deadline INTEGER,
        notes TEXT,
        zone TEXT,
        assigned_driver TEXT NOT NULL DEFAULT '',
        assigned_unit TEXT NOT NULL DEFAULT '',
        state TEXT NOT NULL DEFAULT 'unassigned',
        mirror_row INTEGER NOT NULL DEFAULT -1
    );
    CREATE TABLE IF NOT EXISTS drivers (
        id TEXT PRIMARY KEY,
        name TEXT,
        tractor_plate TEXT,
        trailer_plate TEXT,
        trailer_type TEXT,
        zone TEXT,
        home_base TEXT,
        absence_reason TEXT NOT NULL DEFAULT '',
        contact_ref TEXT NOT NULL DEFAULT ''
    );
    CREATE TABLE IF NOT EXISTS assignment_audit (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        trip_id INTEGER,
        from_driver TEXT,
        to_driver TEXT,
        ts INTEGER
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &Store{db: db}, nil
}

const tripColumns = `id, client, pickup, dropoff, cargo, km, price, deadline,
    notes, zone, assigned_driver, assigned_unit, state, mirror_row`

func scanTrip(row interface{ Scan(...any) error }) (model.Trip, error) {
	var t model.Trip
	var deadline int64
	var state string
	err := row.Scan(&t.ID, &t.Client, &t.Pickup, &t.Dropoff, &t.Cargo, &t.Km,
		&t.Price, &deadline, &t.Notes, &t.Zone, &t.AssignedDriver,
		&t.AssignedUnit, &state, &t.MirrorRow)
	if err != nil {
		return model.Trip{}, err
	}
	if deadline > 0 {
		t.Deadline = time.Unix(deadline, 0).UTC()
	}
	t.State = model.ParseTripState(state)
	return t, nil
}

// PutTrip inserts or replaces a trip record. Used by the external order sync.
func (s *Store) PutTrip(ctx context.Context, t model.Trip) error {
	var deadline int64
	if !t.Deadline.IsZero() {
		deadline = t.Deadline.Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO trips (`+tripColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Client, t.Pickup, t.Dropoff, t.Cargo, t.Km, t.Price, deadline,
		t.Notes, t.Zone, t.AssignedDriver, t.AssignedUnit, t.State.String(),
		t.MirrorRow)
	return err
}

// PutDriver inserts or replaces a driver record. Used by the fleet sync.
func (s *Store) PutDriver(ctx context.Context, d model.Driver) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO drivers (id, name, tractor_plate, trailer_plate,
         trailer_type, zone, home_base, absence_reason, contact_ref)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.TractorPlate, d.TrailerPlate, d.TrailerType, d.Zone,
		d.HomeBase, d.AbsenceReason, d.ContactRef)
	return err
}

func (s *Store) Trip(ctx context.Context, id int64) (model.Trip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return model.Trip{}, store.ErrNotFound
	}
	return t, err
}

func (s *Store) UnassignedTrips(ctx context.Context) ([]model.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips
         WHERE assigned_driver = '' AND state = 'unassigned' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectTrips(rows)
}

func (s *Store) ActiveTrips(ctx context.Context, driverID string) ([]model.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips
         WHERE assigned_driver = ? AND state != 'completed' ORDER BY id DESC`,
		driverID)
	if err != nil {
		return nil, err
	}
	return collectTrips(rows)
}

func collectTrips(rows *sql.Rows) ([]model.Trip, error) {
	defer func() { _ = rows.Close() }()
	var res []model.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// Assign commits the trip to the driver inside a transaction so the read,
// the policy check and the write cannot interleave with a concurrent commit.
func (s *Store) Assign(ctx context.Context, tripID int64, driverID, plate string, allowReassign bool) (store.Assignment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Assignment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT assigned_driver, state FROM trips WHERE id = ?`, tripID)
	var current, state string
	if err := row.Scan(&current, &state); err != nil {
		if err == sql.ErrNoRows {
			return store.Assignment{}, store.ErrNotFound
		}
		return store.Assignment{}, err
	}
	if model.ParseTripState(state) == model.TripCompleted {
		return store.Assignment{}, store.ErrTripCompleted
	}
	asn := store.Assignment{TripID: tripID, DriverID: driverID, Plate: plate}
	if current == driverID {
		asn.Repeat = true
		return asn, nil
	}
	if current != "" {
		if !allowReassign {
			return store.Assignment{}, store.ErrAlreadyAssigned
		}
		asn.Previous = current
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO assignment_audit (trip_id, from_driver, to_driver, ts)
             VALUES (?, ?, ?, ?)`,
			tripID, current, driverID, time.Now().Unix()); err != nil {
			return store.Assignment{}, err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE trips SET assigned_driver = ?, assigned_unit = ?, state = 'assigned'
         WHERE id = ?`, driverID, plate, tripID); err != nil {
		return store.Assignment{}, err
	}
	if err := tx.Commit(); err != nil {
		return store.Assignment{}, err
	}
	return asn, nil
}

func (s *Store) Driver(ctx context.Context, id string) (model.Driver, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, tractor_plate, trailer_plate, trailer_type, zone,
         home_base, absence_reason, contact_ref FROM drivers WHERE id = ?`, id)
	var d model.Driver
	err := row.Scan(&d.ID, &d.Name, &d.TractorPlate, &d.TrailerPlate,
		&d.TrailerType, &d.Zone, &d.HomeBase, &d.AbsenceReason, &d.ContactRef)
	if err == sql.ErrNoRows {
		return model.Driver{}, store.ErrNotFound
	}
	return d, err
}

func (s *Store) DriversInZone(ctx context.Context, zone string) ([]model.Driver, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, tractor_plate, trailer_plate, trailer_type, zone,
         home_base, absence_reason, contact_ref FROM drivers
         WHERE zone = ? ORDER BY name`, zone)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.Driver
	for rows.Next() {
		var d model.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.TractorPlate, &d.TrailerPlate,
			&d.TrailerType, &d.Zone, &d.HomeBase, &d.AbsenceReason,
			&d.ContactRef); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (s *Store) AuditTrail(ctx context.Context, tripID int64) ([]store.AuditRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT trip_id, from_driver, to_driver FROM assignment_audit
         WHERE trip_id = ? ORDER BY id`, tripID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []store.AuditRecord
	for rows.Next() {
		var r store.AuditRecord
		if err := rows.Scan(&r.TripID, &r.FromDriver, &r.ToDriver); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
