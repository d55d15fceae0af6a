package game

import "time"

// ShieldState is the observable state of the shield ability.
type ShieldState string

const (
	ShieldInactive     ShieldState = "inactive"
	ShieldActive       ShieldState = "active"
	ShieldBlinkWarning ShieldState = "blink_warning"
)

// Shield drives the ship's shield countdown on a fixed cadence.
type Shield struct {
	duration time.Duration
	tick     time.Duration
	blinkAt  time.Duration
	ticker   Timer
	hidden   bool // Blink phase; only meaningful during the warning
}

func newShield(cfg Config) Shield {
	return Shield{
		duration: cfg.ShieldDuration,
		tick:     cfg.ShieldTick,
		blinkAt:  cfg.ShieldBlinkAt,
	}
}

// Activate turns the shield on at full duration, restarting the cadence.
func (s *Shield) Activate(ship *Ship) {
	ship.Shield = true
	ship.ShieldRemaining = s.duration
	s.hidden = false
	s.ticker.Start(s.tick)
}

// Deactivate turns the shield off and cancels the cadence.
func (s *Shield) Deactivate(ship *Ship) {
	ship.Shield = false
	ship.ShieldRemaining = 0
	s.hidden = false
	s.ticker.Stop()
}

// Advance runs every shield tick that falls within dt.
func (s *Shield) Advance(ship *Ship, dt time.Duration) {
	if !ship.Shield {
		return
	}
	for n := s.ticker.Advance(dt); n > 0 && ship.Shield; n-- {
		s.onTick(ship)
	}
}

func (s *Shield) onTick(ship *Ship) {
	ship.ShieldRemaining -= s.tick
	if ship.ShieldRemaining <= 0 {
		s.Deactivate(ship)
		return
	}
	if ship.ShieldRemaining <= s.blinkAt {
		s.hidden = !s.hidden
	}
}

// State reports the shield state for the given ship.
func (s *Shield) State(ship *Ship) ShieldState {
	switch {
	case !ship.Shield:
		return ShieldInactive
	case ship.ShieldRemaining <= s.blinkAt:
		return ShieldBlinkWarning
	default:
		return ShieldActive
	}
}

// Visible reports whether the shield should be drawn this frame.
func (s *Shield) Visible(ship *Ship) bool {
	return ship.Shield && !(s.hidden && ship.ShieldRemaining <= s.blinkAt)
}

// Fraction returns the remaining share of the full duration in [0, 1].
func (s *Shield) Fraction(ship *Ship) float64 {
	if !ship.Shield || s.duration <= 0 {
		return 0
	}
	return float64(ship.ShieldRemaining) / float64(s.duration)
}
