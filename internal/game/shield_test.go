package game

import (
	"testing"
	"time"
)

func TestShieldCountsDownToZero(t *testing.T) {
	cfg := DefaultConfig()
	s := newShield(cfg)
	ship := NewShip(0, 0, cfg)

	s.Activate(&ship)
	prev := ship.ShieldRemaining
	for i := 1; i < 200; i++ {
		s.Advance(&ship, 100*time.Millisecond)
		if ship.ShieldRemaining != prev-100*time.Millisecond {
			t.Fatalf("tick %d: remaining = %v, want %v", i, ship.ShieldRemaining, prev-100*time.Millisecond)
		}
		if !ship.Shield {
			t.Fatalf("tick %d: shield dropped early at %v", i, ship.ShieldRemaining)
		}
		prev = ship.ShieldRemaining
	}

	s.Advance(&ship, 100*time.Millisecond)
	if ship.Shield || ship.ShieldRemaining != 0 {
		t.Fatalf("after 20s: shield=%v remaining=%v, want inactive at 0", ship.Shield, ship.ShieldRemaining)
	}
	if s.ticker.Running() {
		t.Fatal("ticker still running after shield expired")
	}
}

func TestShieldStatesAndBlink(t *testing.T) {
	cfg := DefaultConfig()
	s := newShield(cfg)
	ship := NewShip(0, 0, cfg)

	if got := s.State(&ship); got != ShieldInactive {
		t.Fatalf("state = %v, want inactive", got)
	}
	s.Activate(&ship)
	if got := s.State(&ship); got != ShieldActive {
		t.Fatalf("state = %v, want active", got)
	}

	s.Advance(&ship, 16900*time.Millisecond)
	if !s.Visible(&ship) || s.State(&ship) != ShieldActive {
		t.Fatalf("at %v remaining: visible=%v state=%v", ship.ShieldRemaining, s.Visible(&ship), s.State(&ship))
	}

	// Every tick inside the warning window flips visibility.
	last := s.Visible(&ship)
	for ship.Shield {
		s.Advance(&ship, 100*time.Millisecond)
		if !ship.Shield {
			break
		}
		if s.State(&ship) != ShieldBlinkWarning {
			t.Fatalf("at %v: state = %v, want blink warning", ship.ShieldRemaining, s.State(&ship))
		}
		if v := s.Visible(&ship); v == last {
			t.Fatalf("at %v: visibility did not toggle", ship.ShieldRemaining)
		} else {
			last = v
		}
	}
	if s.Visible(&ship) {
		t.Fatal("inactive shield reported visible")
	}
}

func TestShieldReactivationRestartsCadence(t *testing.T) {
	cfg := DefaultConfig()
	s := newShield(cfg)
	ship := NewShip(0, 0, cfg)

	s.Activate(&ship)
	s.Advance(&ship, 150*time.Millisecond)
	if ship.ShieldRemaining != 19900*time.Millisecond {
		t.Fatalf("remaining = %v, want 19.9s", ship.ShieldRemaining)
	}

	s.Activate(&ship)
	s.Advance(&ship, 50*time.Millisecond)
	if ship.ShieldRemaining != cfg.ShieldDuration {
		t.Fatalf("old cadence still ticking: remaining = %v", ship.ShieldRemaining)
	}
	s.Advance(&ship, 50*time.Millisecond)
	if ship.ShieldRemaining != 19900*time.Millisecond {
		t.Fatalf("remaining = %v, want 19.9s after one new tick", ship.ShieldRemaining)
	}
}

func TestShieldFraction(t *testing.T) {
	cfg := DefaultConfig()
	s := newShield(cfg)
	ship := NewShip(0, 0, cfg)

	s.Activate(&ship)
	s.Advance(&ship, 5*time.Second)
	if got := s.Fraction(&ship); got != 0.75 {
		t.Fatalf("fraction = %v, want 0.75", got)
	}
	s.Deactivate(&ship)
	if got := s.Fraction(&ship); got != 0 {
		t.Fatalf("fraction after deactivate = %v, want 0", got)
	}
}
