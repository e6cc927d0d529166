package sched

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunNow(t *testing.T) {
	d := NewDispatcher(time.UTC)

	var runs int32
	err := d.RegisterOrReplace("prompt", "30 9 * * 1-5", func() {
		atomic.AddInt32(&runs, 1)
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if err := d.RunNow("prompt"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("expected 1 run, got %d", got)
	}
}

func TestRunNowUnknownTrigger(t *testing.T) {
	d := NewDispatcher(time.UTC)
	err := d.RunNow("missing")
	if !errors.Is(err, ErrUnknownTrigger) {
		t.Errorf("expected ErrUnknownTrigger, got %v", err)
	}
}

func TestRegisterOrReplaceSwapsJob(t *testing.T) {
	d := NewDispatcher(time.UTC)

	var first, second int32
	if err := d.RegisterOrReplace("prompt", "0 9 * * 1-5", func() { atomic.AddInt32(&first, 1) }); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if err := d.RegisterOrReplace("prompt", "30 10 * * 1-5", func() { atomic.AddInt32(&second, 1) }); err != nil {
		t.Fatalf("failed to replace: %v", err)
	}

	if err := d.RunNow("prompt"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if atomic.LoadInt32(&first) != 0 {
		t.Error("expected replaced job to never run")
	}
	if atomic.LoadInt32(&second) != 1 {
		t.Error("expected replacement job to run once")
	}
}

func TestRegisterOrReplaceRejectsBadSpec(t *testing.T) {
	d := NewDispatcher(time.UTC)
	if err := d.RegisterOrReplace("prompt", "not a cron spec", func() {}); err == nil {
		t.Error("expected error, got none")
	}
}

func TestRunNowSerializesPerTrigger(t *testing.T) {
	d := NewDispatcher(time.UTC)

	var active, overlaps int32
	err := d.RegisterOrReplace("prompt", "0 9 * * 1-5", func() {
		if atomic.AddInt32(&active, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	})
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.RunNow("prompt"); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&overlaps); got != 0 {
		t.Errorf("expected serialized runs, got %d overlaps", got)
	}
}

func TestNextRuns(t *testing.T) {
	d := NewDispatcher(time.UTC)
	if err := d.RegisterOrReplace("summary", "0 18 * * 1-5", func() {}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	runs := d.NextRuns()
	next, ok := runs["summary"]
	if !ok {
		t.Fatal("expected summary trigger in next runs")
	}
	if !next.After(time.Now()) {
		t.Errorf("expected a future time, got %v", next)
	}
	if next.Hour() != 18 || next.Minute() != 0 {
		t.Errorf("expected an 18:00 fire time, got %v", next)
	}
	if wd := next.Weekday(); wd == time.Saturday || wd == time.Sunday {
		t.Errorf("expected a weekday fire time, got %v", wd)
	}
}

func TestStartStop(t *testing.T) {
	d := NewDispatcher(time.UTC)
	if err := d.RegisterOrReplace("prompt", "0 9 * * 1-5", func() {}); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	d.Start()
	// replacement while running rebuilds and restarts the timer
	if err := d.RegisterOrReplace("prompt", "15 9 * * 1-5", func() {}); err != nil {
		t.Fatalf("failed to replace while running: %v", err)
	}
	d.Stop()

	if err := d.RunNow("prompt"); err != nil {
		t.Errorf("expected manual run after stop to work, got %v", err)
	}
}
