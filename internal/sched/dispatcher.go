package sched

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron"
)

// ErrUnknownTrigger reports a RunNow call for an id that was never registered.
var ErrUnknownTrigger = errors.New("unknown trigger")

// Job is the work a trigger fires.
type Job func()

type trigger struct {
	schedule cron.Schedule
	job      Job
	runMu    *sync.Mutex
}

// run executes the job under the trigger's run lock so a timer firing and a
// manual RunNow never overlap for the same id.
func (t *trigger) run() {
	t.runMu.Lock()
	defer t.runMu.Unlock()
	t.job()
}

// Dispatcher keeps named recurring triggers on a shared cron timer evaluated
// in a fixed location. Re-registering an id replaces its trigger in place;
// the timer underneath is rebuilt because the cron runner cannot drop
// individual entries.
type Dispatcher struct {
	loc *time.Location

	mu       sync.Mutex
	triggers map[string]*trigger
	timer    *cron.Cron
	started  bool
}

func NewDispatcher(loc *time.Location) *Dispatcher {
	if loc == nil {
		loc = time.Local
	}
	return &Dispatcher{loc: loc, triggers: map[string]*trigger{}}
}

// RegisterOrReplace installs a trigger under id with a five-field cron spec.
// A replaced trigger keeps its run lock, so serialization carries over the
// swap.
func (d *Dispatcher) RegisterOrReplace(id, spec string, job Job) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("failed to parse trigger spec %q: %w", spec, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	runMu := &sync.Mutex{}
	if prev, ok := d.triggers[id]; ok {
		runMu = prev.runMu
	}
	d.triggers[id] = &trigger{schedule: schedule, job: job, runMu: runMu}
	d.rebuildLocked()

	slog.Info("trigger registered", "id", id, "spec", spec)
	return nil
}

func (d *Dispatcher) rebuildLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	timer := cron.NewWithLocation(d.loc)
	for _, t := range d.triggers {
		timer.Schedule(t.schedule, cron.FuncJob(t.run))
	}
	d.timer = timer
	if d.started {
		timer.Start()
	}
}

// Start arms the timer. Triggers registered later are armed on registration.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = true
	if d.timer == nil {
		d.rebuildLocked()
	} else {
		d.timer.Start()
	}
	slog.Info("trigger timer started", "triggers", len(d.triggers))
}

// Stop halts the timer. A job already running finishes on its own.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// RunNow fires the trigger immediately, bypassing the timer.
func (d *Dispatcher) RunNow(id string) error {
	d.mu.Lock()
	t, ok := d.triggers[id]
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrigger, id)
	}
	t.run()
	return nil
}

// NextRuns reports each registered trigger's next fire time.
func (d *Dispatcher) NextRuns() map[string]time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now().In(d.loc)
	out := make(map[string]time.Time, len(d.triggers))
	for id, t := range d.triggers {
		out[id] = t.schedule.Next(now)
	}
	return out
}
