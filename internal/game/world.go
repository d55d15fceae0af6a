package game

// World owns the ship and every live entity collection.
// Removal is deferred: entities are marked during a pass and dropped by compact.
type World struct {
	Width       float64
	Height      float64
	Ship        Ship
	Obstacles   []Obstacle
	Pickups     []Pickup
	Projectiles []Projectile
}

// NewWorld creates an empty world with the ship centred.
func NewWorld(cfg Config) *World {
	return &World{
		Width:  cfg.WorldWidth,
		Height: cfg.WorldHeight,
		Ship:   NewShip(cfg.WorldWidth/2, cfg.WorldHeight/2, cfg),
	}
}

// AddObstacle adds an obstacle to the world.
func (w *World) AddObstacle(o Obstacle) {
	w.Obstacles = append(w.Obstacles, o)
}

// AddPickup adds a pickup to the world.
func (w *World) AddPickup(p Pickup) {
	w.Pickups = append(w.Pickups, p)
}

// AddProjectile adds a projectile to the world.
func (w *World) AddProjectile(p Projectile) {
	w.Projectiles = append(w.Projectiles, p)
}

// compact drops every entity marked as removed, preserving order.
func (w *World) compact() {
	obstacles := w.Obstacles[:0] // reuse backing array
	for _, o := range w.Obstacles {
		if !o.removed {
			obstacles = append(obstacles, o)
		}
	}
	clear(w.Obstacles[len(obstacles):])
	w.Obstacles = obstacles

	pickups := w.Pickups[:0]
	for _, p := range w.Pickups {
		if !p.removed {
			pickups = append(pickups, p)
		}
	}
	clear(w.Pickups[len(pickups):])
	w.Pickups = pickups

	projectiles := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.removed {
			projectiles = append(projectiles, p)
		}
	}
	clear(w.Projectiles[len(projectiles):])
	w.Projectiles = projectiles
}
