package game

import "testing"

func TestAmmoClampedToCapacity(t *testing.T) {
	cfg := DefaultConfig()
	ship := NewShip(0, 0, cfg)
	for i := 0; i < 5; i++ {
		addAmmo(&ship)
	}
	if ship.Ammo != 3 {
		t.Fatalf("ammo = %d, want 3", ship.Ammo)
	}
}

func TestFireConsumesAmmo(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	w.Ship.Ammo = 2

	for i := 0; i < 2; i++ {
		if !fire(w, &cfg) {
			t.Fatalf("shot %d: fire returned false with ammo", i)
		}
	}
	if fire(w, &cfg) {
		t.Fatal("fire with no ammo returned true")
	}
	if w.Ship.Ammo != 0 {
		t.Fatalf("ammo = %d, want 0", w.Ship.Ammo)
	}
	if len(w.Projectiles) != 2 {
		t.Fatalf("projectiles = %d, want 2", len(w.Projectiles))
	}

	p := w.Projectiles[0]
	wantX := w.Ship.X + w.Ship.Width
	wantY := w.Ship.Y + w.Ship.Height/2
	if p.X != wantX || p.Y != wantY {
		t.Errorf("projectile at (%v, %v), want right-centre (%v, %v)", p.X, p.Y, wantX, wantY)
	}
	if p.Radius != 10 || p.Speed != 8 || p.ExplosionRadius != 50 {
		t.Errorf("projectile = %+v, want radius 10 speed 8 explosion 50", p)
	}
}

func TestClickFiresOnlyWhileRunning(t *testing.T) {
	g := newTestGame(t, nil)
	g.world.Ship.Ammo = 3

	if !g.Click() {
		t.Fatal("click while running did not fire")
	}
	g.PointerLeave()
	if g.Click() {
		t.Fatal("click while paused had an effect")
	}
	if g.world.Ship.Ammo != 2 || len(g.world.Projectiles) != 1 {
		t.Fatalf("ammo=%d projectiles=%d, want 2 and 1", g.world.Ship.Ammo, len(g.world.Projectiles))
	}
}
