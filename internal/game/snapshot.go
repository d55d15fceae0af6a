package game

import "time"

// Snapshot is an immutable copy of everything a renderer needs for one frame.
// Entity slices are freshly allocated and never aliased by the Game.
type Snapshot struct {
	Width           float64       `json:"width"`
	Height          float64       `json:"height"`
	Ship            Ship          `json:"ship"`
	Obstacles       []Obstacle    `json:"obstacles"`
	Pickups         []Pickup      `json:"pickups"`
	Projectiles     []Projectile  `json:"projectiles"`
	Score           int           `json:"score"`
	HighScore       int           `json:"highScore"`
	Phase           Phase         `json:"phase"`
	ResumeCountdown int           `json:"resumeCountdown"`
	ShieldState     ShieldState   `json:"shieldState"`
	ShieldVisible   bool          `json:"shieldVisible"`
	ShieldFraction  float64       `json:"shieldFraction"`
	Elapsed         time.Duration `json:"elapsed"`
	SpawnInterval   time.Duration `json:"spawnInterval"`
	Debug           bool          `json:"debug"`
}

// Snapshot captures the current frame.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	ship := &w.Ship
	return Snapshot{
		Width:           w.Width,
		Height:          w.Height,
		Ship:            *ship,
		Obstacles:       append([]Obstacle(nil), w.Obstacles...),
		Pickups:         append([]Pickup(nil), w.Pickups...),
		Projectiles:     append([]Projectile(nil), w.Projectiles...),
		Score:           g.score.Score,
		HighScore:       g.score.HighScore,
		Phase:           g.Phase(),
		ResumeCountdown: g.pause.Countdown(),
		ShieldState:     g.shield.State(ship),
		ShieldVisible:   g.shield.Visible(ship),
		ShieldFraction:  g.shield.Fraction(ship),
		Elapsed:         g.elapsed,
		SpawnInterval:   g.spawner.Interval(),
		Debug:           g.cfg.Debug,
	}
}
