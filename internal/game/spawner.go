package game

import "time"

// Random is the source of randomness for spawning. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// SpawnInterval returns the obstacle spawn interval for a run that has been
// going for elapsed. It ramps linearly from SpawnIntervalStart down to
// SpawnIntervalMin over SpawnRampDuration and holds there afterwards.
func SpawnInterval(cfg *Config, elapsed time.Duration) time.Duration {
	if elapsed > cfg.SpawnRampDuration {
		elapsed = cfg.SpawnRampDuration
	}
	if elapsed < 0 {
		elapsed = 0
	}
	span := cfg.SpawnIntervalStart - cfg.SpawnIntervalMin
	interval := cfg.SpawnIntervalStart
	if cfg.SpawnRampDuration > 0 {
		interval -= time.Duration(float64(span) * float64(elapsed) / float64(cfg.SpawnRampDuration))
	}
	return max(interval, cfg.SpawnIntervalMin)
}

// Spawner decides when obstacles and pickups enter the world.
type Spawner struct {
	cfg           *Config
	rng           Random
	sinceObstacle time.Duration
	interval      time.Duration
	pickups       Timer
}

// newSpawner creates a spawner for a fresh run. The pickup period is drawn
// once here and kept for the whole run.
func newSpawner(cfg *Config, rng Random) *Spawner {
	s := &Spawner{
		cfg:      cfg,
		rng:      rng,
		interval: SpawnInterval(cfg, 0),
	}
	span := cfg.PickupIntervalMax - cfg.PickupIntervalMin
	s.pickups.Start(cfg.PickupIntervalMin + time.Duration(rng.Float64()*float64(span)))
	return s
}

// Interval returns the obstacle interval computed on the last advance.
func (s *Spawner) Interval() time.Duration {
	return s.interval
}

// PickupPeriod returns the pickup period drawn for this run.
func (s *Spawner) PickupPeriod() time.Duration {
	return s.pickups.Period()
}

// Stop cancels both schedules.
func (s *Spawner) Stop() {
	s.pickups.Stop()
	s.sinceObstacle = 0
}

// Advance moves both schedules forward by dt, spawning into w as they come due.
func (s *Spawner) Advance(w *World, dt, elapsed time.Duration, score int) {
	s.interval = SpawnInterval(s.cfg, elapsed)
	s.sinceObstacle += dt
	if s.sinceObstacle >= s.interval {
		// Keep the overshoot so gaps average to the interval, but never
		// queue more than one spawn after a long frame.
		s.sinceObstacle = min(s.sinceObstacle-s.interval, s.interval)
		w.AddObstacle(s.newObstacle(w, score))
	}

	for n := s.pickups.Advance(dt); n > 0; n-- {
		if p, ok := s.newPickup(w); ok {
			w.AddPickup(p)
		}
	}
}

// newObstacle draws, in order: size, speed, class, shape, y, and from
// DriftScore onwards drift magnitude and direction.
func (s *Spawner) newObstacle(w *World, score int) Obstacle {
	cfg := s.cfg
	size := cfg.ObstacleMinSize + s.rng.Float64()*(cfg.ObstacleMaxSize-cfg.ObstacleMinSize)
	speed := cfg.ObstacleMinSpeed + s.rng.Float64()*(cfg.ObstacleMaxSpeed-cfg.ObstacleMinSpeed)

	class := ClassNormal
	if s.rng.Float64() < cfg.HazardChance {
		class = ClassHazardous
		speed *= 2
	}

	shape := ShapeSquare
	if s.rng.Float64() < 0.5 {
		shape = ShapeRound
	}

	y := s.rng.Float64() * (w.Height - size)

	angle := 0.0
	if score >= cfg.DriftScore {
		angle = (s.rng.Float64()*2 - 1) * cfg.MaxDrift
		if s.rng.Float64() < 0.5 {
			angle = -angle
		}
	}

	return Obstacle{
		X:     w.Width,
		Y:     y,
		Size:  size,
		Speed: speed,
		Angle: angle,
		Class: class,
		Shape: shape,
	}
}

// newPickup rolls the pickup table: shield, ammo, or nothing.
func (s *Spawner) newPickup(w *World) (Pickup, bool) {
	cfg := s.cfg
	roll := s.rng.Float64()

	var ability Ability
	switch {
	case roll < cfg.ShieldPickupChance:
		ability = AbilityShield
	case roll < cfg.ShieldPickupChance+cfg.AmmoPickupChance:
		ability = AbilityAmmo
	default:
		return Pickup{}, false
	}

	return Pickup{
		X:       w.Width,
		Y:       s.rng.Float64() * (w.Height - cfg.PickupSize),
		Size:    cfg.PickupSize,
		Ability: ability,
	}, true
}
