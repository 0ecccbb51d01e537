// Copyright (c) 2026, The Dread Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trace records simulation runs into a SQLite database:
// the state of every body on every frame, and the zone events.
package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cogentcore.org/core/math32"
	"github.com/google/uuid"
	"github.com/horrorps1/dread/movable"
	"github.com/horrorps1/dread/scene"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	scene TEXT,
	started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS frames (
	run TEXT NOT NULL REFERENCES runs(id),
	frame INTEGER NOT NULL,
	body TEXT NOT NULL,
	px REAL, py REAL, pz REAL,
	fx REAL, fy REAL, fz REAL,
	nx REAL, ny REAL, nz REAL,
	grounded INTEGER,
	speed REAL,
	PRIMARY KEY (run, frame, body)
);
CREATE TABLE IF NOT EXISTS events (
	run TEXT NOT NULL REFERENCES runs(id),
	frame INTEGER NOT NULL,
	zone TEXT NOT NULL,
	body TEXT NOT NULL,
	enter INTEGER
);
`

// ErrNoRun is returned when recording outside of a run.
var ErrNoRun = errors.New("trace: no run in progress")

// Sample is the state of a body on one frame.
type Sample struct {
	Frame        int
	Body         string
	Position     math32.Vector3
	Force        math32.Vector3
	GroundNormal math32.Vector3
	Grounded     bool
	Speed        float32
}

// SampleOf returns the sample of b on the given frame.
func SampleOf(frame int, b *movable.Body) Sample {
	return Sample{
		Frame:        frame,
		Body:         b.Name,
		Position:     b.Position(),
		Force:        b.Force,
		GroundNormal: b.GroundNormal,
		Grounded:     b.IsGrounded(),
		Speed:        b.Speed(),
	}
}

// EventRecord is a recorded zone event.
type EventRecord struct {
	Frame int
	scene.Event
}

// Run is a recorded run.
type Run struct {
	ID        uuid.UUID
	Scene     string
	StartedAt time.Time
}

// Recorder writes runs into a database. Each run is written in a
// single transaction, committed by [Recorder.End].
type Recorder struct {
	db  *sql.DB
	run uuid.UUID
	tx  *sql.Tx

	frame *sql.Stmt
	event *sql.Stmt
}

// Open opens or creates the trace database at path.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: %s: %w", path, err)
	}
	return &Recorder{db: db}, nil
}

// Begin starts recording a new run of the named scene and returns its id.
// A run in progress is ended first.
func (r *Recorder) Begin(sceneName string) (uuid.UUID, error) {
	if err := r.End(); err != nil {
		return uuid.Nil, err
	}
	tx, err := r.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("trace: %w", err)
	}
	id := uuid.New()
	if _, err := tx.Exec(`INSERT INTO runs (id, scene) VALUES (?, ?)`, id.String(), sceneName); err != nil {
		tx.Rollback()
		return uuid.Nil, fmt.Errorf("trace: %w", err)
	}
	frame, err := tx.Prepare(`INSERT INTO frames (run, frame, body, px, py, pz, fx, fy, fz, nx, ny, nz, grounded, speed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return uuid.Nil, fmt.Errorf("trace: %w", err)
	}
	event, err := tx.Prepare(`INSERT INTO events (run, frame, zone, body, enter) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return uuid.Nil, fmt.Errorf("trace: %w", err)
	}
	r.run, r.tx, r.frame, r.event = id, tx, frame, event
	return id, nil
}

// Record writes a body sample of the current run.
func (r *Recorder) Record(s Sample) error {
	if r.tx == nil {
		return ErrNoRun
	}
	_, err := r.frame.Exec(r.run.String(), s.Frame, s.Body,
		s.Position.X, s.Position.Y, s.Position.Z,
		s.Force.X, s.Force.Y, s.Force.Z,
		s.GroundNormal.X, s.GroundNormal.Y, s.GroundNormal.Z,
		s.Grounded, s.Speed)
	return err
}

// Event writes a zone event of the current run.
func (r *Recorder) Event(frame int, ev scene.Event) error {
	if r.tx == nil {
		return ErrNoRun
	}
	_, err := r.event.Exec(r.run.String(), frame, ev.Zone, ev.Body, ev.Enter)
	return err
}

// End commits the run in progress, if any.
func (r *Recorder) End() error {
	if r.tx == nil {
		return nil
	}
	tx := r.tx
	r.tx, r.frame, r.event = nil, nil, nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("trace: run %s: %w", r.run, err)
	}
	return nil
}

// Close ends the run in progress and closes the database.
func (r *Recorder) Close() error {
	return errors.Join(r.End(), r.db.Close())
}

// Runs returns the recorded runs, oldest first.
func (r *Recorder) Runs() ([]Run, error) {
	rows, err := r.db.Query(`SELECT id, scene, started_at FROM runs ORDER BY started_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var run Run
		var id string
		if err := rows.Scan(&id, &run.Scene, &run.StartedAt); err != nil {
			return nil, err
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Frames returns the samples of a run, by frame then body.
func (r *Recorder) Frames(run uuid.UUID) ([]Sample, error) {
	rows, err := r.db.Query(`SELECT frame, body, px, py, pz, fx, fy, fz, nx, ny, nz, grounded, speed
		FROM frames WHERE run = ? ORDER BY frame, body`, run.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var samples []Sample
	for rows.Next() {
		var s Sample
		err := rows.Scan(&s.Frame, &s.Body,
			&s.Position.X, &s.Position.Y, &s.Position.Z,
			&s.Force.X, &s.Force.Y, &s.Force.Z,
			&s.GroundNormal.X, &s.GroundNormal.Y, &s.GroundNormal.Z,
			&s.Grounded, &s.Speed)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// Events returns the zone events of a run, in recording order.
func (r *Recorder) Events(run uuid.UUID) ([]EventRecord, error) {
	rows, err := r.db.Query(`SELECT frame, zone, body, enter FROM events WHERE run = ? ORDER BY rowid`, run.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []EventRecord
	for rows.Next() {
		var ev EventRecord
		if err := rows.Scan(&ev.Frame, &ev.Zone, &ev.Body, &ev.Enter); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
