package game

import "time"

// Config holds every tunable parameter of a run.
// Distances are logical world units, speeds are units per frame.
type Config struct {
	WorldWidth  float64
	WorldHeight float64

	// Ship
	ShipSize        float64
	ShipSpeedFactor float64 // Fraction of the remaining distance to target closed per frame
	AmmoCapacity    int

	// Shield
	ShieldDuration time.Duration
	ShieldTick     time.Duration
	ShieldBlinkAt  time.Duration // Remaining time at or below which the shield blinks

	// Obstacle spawning
	SpawnIntervalStart time.Duration
	SpawnIntervalMin   time.Duration
	SpawnRampDuration  time.Duration
	ObstacleMinSize    float64
	ObstacleMaxSize    float64
	ObstacleMinSpeed   float64
	ObstacleMaxSpeed   float64
	HazardChance       float64
	DriftScore         int     // Score from which obstacles drift vertically
	MaxDrift           float64 // Maximum absolute drift angle

	// Pickups
	PickupSize         float64
	PickupSpeed        float64
	PickupIntervalMin  time.Duration
	PickupIntervalMax  time.Duration
	ShieldPickupChance float64
	AmmoPickupChance   float64

	// Projectiles
	ProjectileRadius float64
	ProjectileSpeed  float64
	TriggerDistance  float64 // Distance to an obstacle that detonates a projectile
	ExplosionRadius  float64

	// Pause / resume
	ResumeTick      time.Duration
	ResumeHoldTicks int

	// Debug is passed through to snapshots for diagnostic overlays.
	Debug bool
}

// DefaultConfig returns the standard tuning on a 1280x720 world.
func DefaultConfig() Config {
	return Config{
		WorldWidth:  1280,
		WorldHeight: 720,

		ShipSize:        100,
		ShipSpeedFactor: 0.2,
		AmmoCapacity:    3,

		ShieldDuration: 20 * time.Second,
		ShieldTick:     100 * time.Millisecond,
		ShieldBlinkAt:  3 * time.Second,

		SpawnIntervalStart: 2000 * time.Millisecond,
		SpawnIntervalMin:   500 * time.Millisecond,
		SpawnRampDuration:  120 * time.Second,
		ObstacleMinSize:    20,
		ObstacleMaxSize:    60,
		ObstacleMinSpeed:   3,
		ObstacleMaxSpeed:   6,
		HazardChance:       0.1,
		DriftScore:         100,
		MaxDrift:           0.1,

		PickupSize:         30,
		PickupSpeed:        5,
		PickupIntervalMin:  5 * time.Second,
		PickupIntervalMax:  15 * time.Second,
		ShieldPickupChance: 0.3,
		AmmoPickupChance:   0.3,

		ProjectileRadius: 10,
		ProjectileSpeed:  8,
		TriggerDistance:  50,
		ExplosionRadius:  50,

		ResumeTick:      time.Second,
		ResumeHoldTicks: 3,
	}
}
