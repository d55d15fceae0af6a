package game

// addAmmo grants one rocket, never exceeding capacity.
func addAmmo(ship *Ship) {
	if ship.Ammo < ship.AmmoCapacity {
		ship.Ammo++
	}
}

// fire launches a rocket from the ship's right-centre edge.
// Returns false without side effects when the ship has no ammo.
func fire(w *World, cfg *Config) bool {
	ship := &w.Ship
	if ship.Ammo <= 0 {
		return false
	}
	ship.Ammo--
	w.AddProjectile(Projectile{
		X:               ship.X + ship.Width,
		Y:               ship.Y + ship.Height/2,
		Radius:          cfg.ProjectileRadius,
		Speed:           cfg.ProjectileSpeed,
		ExplosionRadius: cfg.ExplosionRadius,
	})
	return true
}
