package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestFixedStepPacesAtRate(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(2)
	fs.now = clock.now

	if fs.ShouldStep() {
		t.Fatal("first call only primes the clock")
	}
	clock.t = clock.t.Add(400 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped before 500ms elapsed at 2 steps/s")
	}
	clock.t = clock.t.Add(100 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after 500ms")
	}
}

func TestFixedStepCapsBacklog(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	fs := NewFixedStep(10)
	fs.now = clock.now
	fs.ShouldStep()

	clock.t = clock.t.Add(5 * time.Second)
	steps := 0
	for fs.ShouldStep() {
		steps++
	}
	if steps != 2 {
		t.Fatalf("steps after stall = %d, want 2 (one granted plus one carried)", steps)
	}
}

func TestFixedStepSetRate(t *testing.T) {
	fs := NewFixedStep(4)
	if fs.Rate() != 4 {
		t.Fatalf("rate = %v, want 4", fs.Rate())
	}
	fs.SetRate(0)
	if fs.Rate() != 1 {
		t.Fatalf("non-positive rate must fall back to 1, got %v", fs.Rate())
	}
}
