package game

import "github.com/tomz197/dodge/internal/physics"

// collisionResult summarises one collision pass.
type collisionResult struct {
	lethal    bool // Ship hit something it could not survive
	destroyed int  // Obstacles destroyed by explosions (scored)
}

// resolveCollisions runs every collision check for the current frame.
// Entities are only marked during the pass; the world is compacted once at
// the end so removals never shift entries still being iterated.
func (g *Game) resolveCollisions() collisionResult {
	var res collisionResult
	w := g.world

	if g.checkShipObstacles() {
		res.lethal = true
		w.compact()
		return res
	}
	res.destroyed = g.checkProjectileObstacles()
	g.checkShipPickups()

	w.compact()
	return res
}

// checkShipObstacles handles ship contact with obstacles.
// Returns true as soon as a contact is lethal.
func (g *Game) checkShipObstacles() bool {
	w := g.world
	ship := &w.Ship
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		if o.removed || !ship.Overlaps(o.X, o.Y, o.Size, o.Size) {
			continue
		}
		if o.Hazardous() || !ship.Shield {
			return true
		}
		// The shield absorbs one normal hit and is spent doing so.
		g.shield.Deactivate(ship)
		o.removed = true
	}
	return false
}

// checkProjectileObstacles detonates projectiles that came close to an obstacle.
// Each explosion removes every live obstacle within its radius in one pass.
// Returns the number of obstacles destroyed.
func (g *Game) checkProjectileObstacles() int {
	w := g.world
	if len(w.Projectiles) == 0 || len(w.Obstacles) == 0 {
		return 0
	}

	g.grid.Clear()
	for i := range w.Obstacles {
		if !w.Obstacles[i].removed {
			g.grid.Insert(w.Obstacles[i].X, w.Obstacles[i].Y, i)
		}
	}

	destroyed := 0
	for pi := range w.Projectiles {
		p := &w.Projectiles[pi]
		if p.removed || !g.triggered(p) {
			continue
		}
		p.removed = true
		g.grid.QueryAround(p.X, p.Y, func(i int) bool {
			o := &w.Obstacles[i]
			if !o.removed && physics.WithinDistance(p.X, p.Y, o.X, o.Y, p.ExplosionRadius) {
				o.removed = true
				destroyed++
			}
			return false
		})
	}
	return destroyed
}

// triggered reports whether any live obstacle is within trigger distance.
func (g *Game) triggered(p *Projectile) bool {
	w := g.world
	hit := false
	g.grid.QueryAround(p.X, p.Y, func(i int) bool {
		o := &w.Obstacles[i]
		if !o.removed && physics.WithinDistance(p.X, p.Y, o.X, o.Y, g.cfg.TriggerDistance) {
			hit = true
		}
		return hit
	})
	return hit
}

// checkShipPickups activates every pickup the ship touches.
func (g *Game) checkShipPickups() {
	w := g.world
	ship := &w.Ship
	for i := range w.Pickups {
		p := &w.Pickups[i]
		if p.removed || !ship.Overlaps(p.X, p.Y, p.Size, p.Size) {
			continue
		}
		g.activate(p.Ability)
		p.removed = true
	}
}

// activate applies a pickup's ability to the ship.
func (g *Game) activate(a Ability) {
	ship := &g.world.Ship
	switch a {
	case AbilityShield:
		g.shield.Activate(ship)
	case AbilityAmmo:
		addAmmo(ship)
	}
}
