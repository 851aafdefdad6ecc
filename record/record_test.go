package record

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planets/sim"
)

func bodies() []sim.Body {
	return []sim.Body{
		{ID: 0, Pos: mgl64.Vec2{1, 2}, Vel: mgl64.Vec2{0.1, 0}, Mass: 10, Radius: 1},
		{ID: 1, Pos: mgl64.Vec2{-3, 4}, Vel: mgl64.Vec2{0, -0.2}, Mass: 20, Radius: 2},
	}
}

func TestOpenRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.sqlite")
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	r.Close()

	if _, err := Open(path); err == nil {
		t.Error("Open overwrote an existing database")
	}
}

func TestWriteAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.sqlite")
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	for step := 0; step < 3; step++ {
		if err := r.Write(step, bodies()); err != nil {
			t.Fatalf("Write step %d failed: %v", step, err)
		}
	}
	if err := r.CreateIndices(); err != nil {
		t.Fatalf("CreateIndices failed: %v", err)
	}

	var rows int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM bodies`).Scan(&rows); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if rows != 6 {
		t.Errorf("stored %d rows, want 6", rows)
	}

	var mass float64
	err = r.db.QueryRow(`SELECT mass FROM bodies WHERE step = 1 AND id = 1`).Scan(&mass)
	if err != nil {
		t.Fatalf("row query failed: %v", err)
	}
	if mass != 20 {
		t.Errorf("mass = %v, want 20", mass)
	}
}

func TestWorker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.sqlite")
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	ch := make(chan Frame, 4)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go r.Worker(&wg, ch)

	for step := 0; step < 4; step++ {
		ch <- Frame{Step: step, Bodies: bodies()}
	}
	close(ch)
	wg.Wait()

	if err := r.Err(); err != nil {
		t.Fatalf("Worker failed: %v", err)
	}
	var rows int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM bodies`).Scan(&rows); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if rows != 8 {
		t.Errorf("stored %d rows, want 8", rows)
	}
}
