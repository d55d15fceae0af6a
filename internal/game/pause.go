package game

import "time"

// PauseState is the state of the pause/resume controller.
type PauseState string

const (
	PauseRunning          PauseState = "running"
	PausePaused           PauseState = "paused"
	PauseConfirmingResume PauseState = "confirming_resume"
)

// PauseController pauses the run when the pointer leaves the play area and
// resumes it once the pointer has rested on the ship for a number of
// consecutive ticks.
type PauseController struct {
	state     PauseState
	countdown int
	hold      int
	ticker    Timer
	tick      time.Duration
}

func newPauseController(cfg Config) PauseController {
	return PauseController{
		state:     PauseRunning,
		countdown: cfg.ResumeHoldTicks,
		hold:      cfg.ResumeHoldTicks,
		tick:      cfg.ResumeTick,
	}
}

// State returns the current controller state.
func (p *PauseController) State() PauseState {
	return p.state
}

// Running reports whether game logic may progress.
func (p *PauseController) Running() bool {
	return p.state == PauseRunning
}

// Countdown returns the number of consecutive on-ship ticks still required.
func (p *PauseController) Countdown() int {
	return p.countdown
}

// Leave pauses a running game. Leaving during confirmation drops back to paused.
func (p *PauseController) Leave() {
	switch p.state {
	case PauseRunning, PauseConfirmingResume:
		p.state = PausePaused
		p.countdown = p.hold
		p.ticker.Stop()
	}
}

// Enter starts the resume confirmation when paused.
func (p *PauseController) Enter() {
	if p.state != PausePaused {
		return
	}
	p.state = PauseConfirmingResume
	p.countdown = p.hold
	p.ticker.Start(p.tick)
}

// Advance runs the confirmation ticks within dt. overShip is sampled once per tick.
func (p *PauseController) Advance(dt time.Duration, overShip func() bool) {
	if p.state != PauseConfirmingResume {
		return
	}
	for n := p.ticker.Advance(dt); n > 0 && p.state == PauseConfirmingResume; n-- {
		p.onTick(overShip())
	}
}

func (p *PauseController) onTick(overShip bool) {
	if !overShip {
		p.countdown = p.hold
		return
	}
	p.countdown--
	if p.countdown <= 0 {
		p.Stop()
	}
}

// Stop returns the controller to running and cancels its ticker.
func (p *PauseController) Stop() {
	p.state = PauseRunning
	p.countdown = p.hold
	p.ticker.Stop()
}
