// planetsd runs a simulation headless, optionally streaming every frame to
// an sqlite database.
package main

import (
	"flag"
	"fmt"
	"log"
	"sync"
	"time"

	"planets/record"
	"planets/scenario"
	"planets/sim"
)

func main() {
	scenPath := flag.String("scenario", "", "scenario YAML to load (empty for the built-in default)")
	steps := flag.Int("steps", 3600, "number of steps to simulate")
	dt := flag.Float64("dt", 0, "step size in seconds (0 uses the scenario's)")
	dbPath := flag.String("db", "", "sqlite file to record frames to (empty disables recording)")
	every := flag.Int("every", 1, "record every Nth step")
	flag.Parse()

	sc := scenario.Default()
	if *scenPath != "" {
		loaded, err := scenario.Load(*scenPath)
		if err != nil {
			log.Fatal(err)
		}
		sc = loaded
	}
	if *dt <= 0 {
		*dt = sc.Dt
	}
	if *every < 1 {
		*every = 1
	}

	s := sim.New(sc.Config())
	if err := sc.Populate(s); err != nil {
		log.Fatal(err)
	}

	// setup frame output worker
	var rec *record.Recorder
	ch := make(chan record.Frame, 32)
	wg := sync.WaitGroup{}
	if *dbPath != "" {
		var err error
		rec, err = record.Open(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		wg.Add(1)
		go rec.Worker(&wg, ch)
	}

	simTime := time.Duration(float64(*steps) * *dt * float64(time.Second))
	fmt.Printf("scenario: %s\nbodies: %d\nstep: %gs\nsteps: %d\nsimulation time: %s\n",
		sc.Name,
		s.Count(),
		*dt,
		*steps,
		simTime.Truncate(time.Second))

	start := time.Now()
	for step := 0; step < *steps; step++ {
		if rec != nil && step%*every == 0 {
			ch <- record.Frame{Step: step, Bodies: s.Snapshot()}
		}

		if _, err := s.Step(*dt); err != nil {
			log.Fatalf("step %d: %v", step, err)
		}

		// progress
		elapsed := time.Since(start)
		avgPerStep := elapsed.Milliseconds() / int64(step+1)
		remaining := time.Duration(avgPerStep*int64(*steps-step-1)) * time.Millisecond
		fmt.Printf("%.1f%%, %d bodies, %dms/step, %s remaining, %s elapsed                    \r",
			100*float64(step+1)/float64(*steps),
			s.Count(),
			avgPerStep,
			remaining.Truncate(time.Second),
			elapsed.Truncate(time.Second))
	}
	close(ch)
	wg.Wait()

	if rec != nil {
		if err := rec.Err(); err != nil {
			log.Fatal(err)
		}
		if err := rec.CreateIndices(); err != nil {
			log.Fatal(err)
		}
		if err := rec.Close(); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("\nDone. %d bodies remain. Took %s\n", s.Count(), time.Since(start).Truncate(time.Second))
}
