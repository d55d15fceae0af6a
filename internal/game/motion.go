package game

// moveShip closes SpeedFactor of the remaining distance to the target.
func moveShip(ship *Ship) {
	ship.X += (ship.TargetX - ship.X) * ship.SpeedFactor
	ship.Y += (ship.TargetY - ship.Y) * ship.SpeedFactor
}

// moveObstacles advances every obstacle, reflects vertical drift at the world
// edges and drops obstacles that fully left the screen.
// Returns how many obstacles were cleared off the left edge.
func moveObstacles(w *World) int {
	cleared := 0
	kept := w.Obstacles[:0] // reuse backing array
	for _, o := range w.Obstacles {
		o.X -= o.Speed
		o.Y += o.Angle * o.Speed
		if o.Y <= 0 || o.Y+o.Size >= w.Height {
			o.Angle = -o.Angle
		}
		if o.X+o.Size < 0 {
			cleared++
			continue
		}
		kept = append(kept, o)
	}
	clear(w.Obstacles[len(kept):])
	w.Obstacles = kept
	return cleared
}

// movePickups slides pickups left and drops those past the left edge.
func movePickups(w *World, speed float64) {
	kept := w.Pickups[:0]
	for _, p := range w.Pickups {
		p.X -= speed
		if p.X+p.Size < 0 {
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Pickups[len(kept):])
	w.Pickups = kept
}

// moveProjectiles flies rockets right and drops those past the right edge.
func moveProjectiles(w *World) {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		p.X += p.Speed
		if p.X-p.Radius > w.Width {
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept
}
