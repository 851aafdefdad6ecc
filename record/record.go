// Package record streams per-step body snapshots to an sqlite database for
// later rendering or analysis. It is an output sink only: nothing here can
// restore a simulation.
package record

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"planets/sim"
)

/*
sqlite allows one writer at a time, so a single Worker is all that is
useful. journal and synchronous are off since the database is disposable
output.
*/

const schema = `
CREATE TABLE bodies (
	step 	INTEGER,
	id 		INTEGER, -- body id
	x 		REAL,
	y 		REAL,
	vx 		REAL,
	vy 		REAL,
	mass 	REAL,
	radius 	REAL);
`

const indices = `
CREATE INDEX idx_step ON bodies (step, id);
CREATE INDEX idx_id ON bodies (id);
`

const insert = `INSERT INTO bodies VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

// Frame is one recorded step.
type Frame struct {
	Step   int
	Bodies []sim.Body
}

// Recorder writes frames to one sqlite database.
type Recorder struct {
	db     *sql.DB
	insert *sql.Stmt

	mu  sync.Mutex
	err error // first write failure, sticky
}

// Open creates and initializes the database in filename. Refuses to
// overwrite an existing file.
func Open(filename string) (*Recorder, error) {
	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("record: %s exists", filename)
	}

	db, err := sql.Open("sqlite3", "file:"+filename+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", filename, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: create tables: %w", err)
	}
	stmt, err := db.Prepare(insert)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("record: prepare insert: %w", err)
	}
	return &Recorder{db: db, insert: stmt}, nil
}

// Write stores one frame inside a single transaction.
func (r *Recorder) Write(step int, bodies []sim.Body) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("record: begin: %w", err)
	}

	stmt := tx.Stmt(r.insert)
	for _, b := range bodies {
		_, err = stmt.Exec(
			step,
			b.ID,
			b.Pos.X(),
			b.Pos.Y(),
			b.Vel.X(),
			b.Vel.Y(),
			b.Mass,
			b.Radius)
		if err != nil {
			break
		}
	}

	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record: step %d: %w", step, err)
	}
	return tx.Commit()
}

// Worker drains ch, writing each frame. The first failure is retained and
// later frames are discarded; check Err after the channel closes.
func (r *Recorder) Worker(wg *sync.WaitGroup, ch <-chan Frame) {
	defer wg.Done()
	for frame := range ch {
		if r.Err() != nil {
			continue
		}
		if err := r.Write(frame.Step, frame.Bodies); err != nil {
			r.mu.Lock()
			r.err = err
			r.mu.Unlock()
		}
	}
}

// Err returns the first write failure seen by Worker, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// CreateIndices builds the query indices. Run once, after all writes, so
// inserts stay fast.
func (r *Recorder) CreateIndices() error {
	if _, err := r.db.Exec(indices); err != nil {
		return fmt.Errorf("record: create indices: %w", err)
	}
	return nil
}

func (r *Recorder) Close() error {
	r.insert.Close()
	return r.db.Close()
}
