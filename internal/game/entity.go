package game

import (
	"time"

	"github.com/tomz197/dodge/internal/physics"
)

// ObstacleClass determines how dangerous an obstacle is.
type ObstacleClass string

const (
	ClassNormal    ObstacleClass = "normal"
	ClassHazardous ObstacleClass = "hazardous" // Double speed, lethal through the shield
)

// ObstacleShape is purely visual; collisions always use the bounding box.
type ObstacleShape string

const (
	ShapeRound  ObstacleShape = "round"
	ShapeSquare ObstacleShape = "square"
)

// Ability is the effect granted by a pickup.
type Ability string

const (
	AbilityShield Ability = "shield"
	AbilityAmmo   Ability = "ammo"
)

// Ship is the player-controlled rocket. X/Y is the top-left corner.
type Ship struct {
	X               float64       `json:"x"`
	Y               float64       `json:"y"`
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	TargetX         float64       `json:"targetX"`
	TargetY         float64       `json:"targetY"`
	SpeedFactor     float64       `json:"speedFactor"`
	Shield          bool          `json:"shield"`
	ShieldRemaining time.Duration `json:"shieldRemaining"`
	Ammo            int           `json:"ammo"`
	AmmoCapacity    int           `json:"ammoCapacity"`
}

// NewShip creates a ship centred at (cx, cy) that is already at its target.
func NewShip(cx, cy float64, cfg Config) Ship {
	x := cx - cfg.ShipSize/2
	y := cy - cfg.ShipSize/2
	return Ship{
		X:            x,
		Y:            y,
		Width:        cfg.ShipSize,
		Height:       cfg.ShipSize,
		TargetX:      x,
		TargetY:      y,
		SpeedFactor:  cfg.ShipSpeedFactor,
		AmmoCapacity: cfg.AmmoCapacity,
	}
}

// Overlaps reports whether the ship's box intersects the given box.
func (s *Ship) Overlaps(x, y, w, h float64) bool {
	return physics.RectsOverlap(s.X, s.Y, s.Width, s.Height, x, y, w, h)
}

// Contains reports whether a point lies strictly inside the ship's box.
func (s *Ship) Contains(px, py float64) bool {
	return physics.PointInRect(px, py, s.X, s.Y, s.Width, s.Height)
}

// Obstacle is a square-bounded rock drifting leftwards. X/Y is the top-left corner.
type Obstacle struct {
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Size    float64       `json:"size"`
	Speed   float64       `json:"speed"`
	Angle   float64       `json:"angle"`
	Class   ObstacleClass `json:"class"`
	Shape   ObstacleShape `json:"shape"`
	removed bool
}

// Hazardous reports whether the obstacle ignores the shield.
func (o *Obstacle) Hazardous() bool {
	return o.Class == ClassHazardous
}

// Pickup grants an ability on contact with the ship.
type Pickup struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Ability Ability `json:"ability"`
	removed bool
}

// Projectile is a rocket fired rightwards from the ship. X/Y is the centre.
type Projectile struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Radius          float64 `json:"radius"`
	Speed           float64 `json:"speed"`
	ExplosionRadius float64 `json:"explosionRadius"`
	removed         bool
}
