package game

import (
	"math"
	"testing"
	"time"
)

func TestSpawnIntervalRamp(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		elapsed time.Duration
		want    time.Duration
	}{
		{0, 2000 * time.Millisecond},
		{30 * time.Second, 1625 * time.Millisecond},
		{60 * time.Second, 1250 * time.Millisecond},
		{120 * time.Second, 500 * time.Millisecond},
		{121 * time.Second, 500 * time.Millisecond},
		{time.Hour, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := SpawnInterval(&cfg, tt.elapsed); got != tt.want {
			t.Errorf("SpawnInterval(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestSpawnIntervalNeverBelowMinimum(t *testing.T) {
	cfg := DefaultConfig()
	for ms := 0; ms <= 200000; ms += 250 {
		elapsed := time.Duration(ms) * time.Millisecond
		got := SpawnInterval(&cfg, elapsed)
		capped := math.Min(float64(ms), 120000)
		want := math.Max(500, 2000-1500*capped/120000)
		if math.Abs(float64(got.Microseconds())/1000-want) > 0.001 {
			t.Fatalf("SpawnInterval(%v) = %v, want %vms", elapsed, got, want)
		}
	}
}

func TestNewObstacleAttributes(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	// size, speed, class, shape, y, drift magnitude, drift sign
	rng := &scriptedRand{vals: []float64{0.5, 0.5, 0.05, 0.2, 0.5, 0.75, 0.3}}
	s := &Spawner{cfg: &cfg, rng: rng}

	o := s.newObstacle(w, 150)
	if o.Size != 40 {
		t.Errorf("size = %v, want 40", o.Size)
	}
	if o.Class != ClassHazardous {
		t.Errorf("class = %v, want hazardous", o.Class)
	}
	if o.Speed != 9 {
		t.Errorf("speed = %v, want 9 (4.5 doubled)", o.Speed)
	}
	if o.Shape != ShapeRound {
		t.Errorf("shape = %v, want round", o.Shape)
	}
	if o.X != cfg.WorldWidth || o.Y != 340 {
		t.Errorf("position = (%v, %v), want (%v, 340)", o.X, o.Y, cfg.WorldWidth)
	}
	if math.Abs(o.Angle-(-0.05)) > 1e-9 {
		t.Errorf("angle = %v, want -0.05", o.Angle)
	}
}

func TestNewObstacleNoDriftBelowScore(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	rng := &scriptedRand{vals: []float64{0, 0, 0.5, 0.7, 0}, fallback: 0.75}
	s := &Spawner{cfg: &cfg, rng: rng}

	o := s.newObstacle(w, 99)
	if o.Angle != 0 {
		t.Errorf("angle = %v, want 0 below drift score", o.Angle)
	}
	if o.Class != ClassNormal || o.Speed != 3 || o.Size != 20 || o.Shape != ShapeSquare {
		t.Errorf("got %+v, want normal square size 20 speed 3", o)
	}
}

func TestNewPickupTable(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	tests := []struct {
		roll float64
		want Ability
		ok   bool
	}{
		{0.0, AbilityShield, true},
		{0.29, AbilityShield, true},
		{0.3, AbilityAmmo, true},
		{0.59, AbilityAmmo, true},
		{0.6, "", false},
		{0.99, "", false},
	}
	for _, tt := range tests {
		s := &Spawner{cfg: &cfg, rng: &scriptedRand{vals: []float64{tt.roll, 0}}}
		p, ok := s.newPickup(w)
		if ok != tt.ok || p.Ability != tt.want {
			t.Errorf("roll %v: got (%q, %v), want (%q, %v)", tt.roll, p.Ability, ok, tt.want, tt.ok)
		}
		if ok && (p.X != cfg.WorldWidth || p.Size != cfg.PickupSize) {
			t.Errorf("roll %v: pickup %+v not at right edge with size %v", tt.roll, p, cfg.PickupSize)
		}
	}
}

func TestPickupPeriodDrawnOncePerRun(t *testing.T) {
	cfg := DefaultConfig()
	s := newSpawner(&cfg, &scriptedRand{vals: []float64{0.5}})
	if got := s.PickupPeriod(); got != 10*time.Second {
		t.Fatalf("pickup period = %v, want 10s", got)
	}

	w := NewWorld(cfg)
	// The obstacle due in the same advance draws five values first, then
	// two pickup firings: shield (roll + y) and nothing.
	s.rng = &scriptedRand{vals: []float64{0.99, 0.99, 0.99, 0.99, 0.99, 0.1, 0.5, 0.9}, fallback: 0.99}
	s.Advance(w, 20*time.Second, 0, 0)
	if len(w.Pickups) != 1 || w.Pickups[0].Ability != AbilityShield {
		t.Fatalf("pickups = %+v, want one shield pickup", w.Pickups)
	}
	if got := s.PickupPeriod(); got != 10*time.Second {
		t.Fatalf("pickup period changed to %v", got)
	}
}

func TestObstacleSpawnsWhenIntervalElapses(t *testing.T) {
	g := newTestGame(t, nil)

	for i := 0; i < 100; i++ {
		g.Step(10 * time.Millisecond)
	}
	if n := len(g.world.Obstacles); n != 0 {
		t.Fatalf("obstacles after 1s = %d, want 0", n)
	}

	for i := 0; i < 100; i++ {
		g.Step(10 * time.Millisecond)
	}
	if n := len(g.world.Obstacles); n != 1 {
		t.Fatalf("obstacles after 2s = %d, want 1", n)
	}
	o := g.world.Obstacles[0]
	if o.X >= g.cfg.WorldWidth {
		t.Errorf("spawned obstacle did not move in its first frame: x = %v", o.X)
	}
}

func TestNoSpawningWhilePaused(t *testing.T) {
	g := newTestGame(t, nil)
	g.PointerLeave()

	for i := 0; i < 60; i++ {
		g.Step(time.Second)
	}
	if n := len(g.world.Obstacles) + len(g.world.Pickups); n != 0 {
		t.Fatalf("entities spawned while paused: %d", n)
	}
}

func TestObstacleGapsKeepFrameOvershoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnIntervalStart = 100 * time.Millisecond
	cfg.SpawnIntervalMin = 100 * time.Millisecond
	w := NewWorld(cfg)
	s := newSpawner(&cfg, &scriptedRand{fallback: 0.99})

	var elapsed time.Duration
	for range 100 {
		elapsed += 30 * time.Millisecond
		s.Advance(w, 30*time.Millisecond, elapsed, 0)
	}
	if n := len(w.Obstacles); n != 30 {
		t.Fatalf("obstacles after 3s at a 100ms interval = %d, want 30", n)
	}
}

func TestLongFrameDoesNotBurst(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	s := newSpawner(&cfg, &scriptedRand{fallback: 0.99})

	elapsed := 10 * time.Second
	s.Advance(w, elapsed, elapsed, 0)
	for range 10 {
		elapsed += time.Millisecond
		s.Advance(w, time.Millisecond, elapsed, 0)
	}
	if n := len(w.Obstacles); n != 2 {
		t.Fatalf("obstacles = %d, want 2 after one long frame and ten short ones", n)
	}
}
