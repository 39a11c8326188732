// Package playback is the frame counter behind the animation loop.
package playback

import "fmt"

// Player steps through frames 0..Max and wraps around. A paused player
// keeps returning the same frame.
type Player struct {
	frame int
	max   int
	step  int
}

// New returns a running player positioned at frame 0.
func New(maxFrame int) *Player {
	if maxFrame < 0 {
		maxFrame = 0
	}
	return &Player{max: maxFrame, step: 1}
}

// Frame returns the current frame.
func (p *Player) Frame() int { return p.frame }

// Max returns the last frame index.
func (p *Player) Max() int { return p.max }

// Paused reports whether Advance is holding the current frame.
func (p *Player) Paused() bool { return p.step == 0 }

// Advance moves to the next frame, wrapping to 0 after Max, and returns it.
func (p *Player) Advance() int {
	if p.frame < p.max {
		p.frame += p.step
	} else {
		p.frame = 0
	}
	return p.frame
}

// TogglePause switches between stepping one frame per Advance and holding.
func (p *Player) TogglePause() {
	if p.step == 1 {
		p.step = 0
	} else {
		p.step = 1
	}
}

// Seek jumps to a frame, clamped to [0, Max].
func (p *Player) Seek(frame int) {
	switch {
	case frame < 0:
		p.frame = 0
	case frame > p.max:
		p.frame = p.max
	default:
		p.frame = frame
	}
}

// Label is the on-screen frame counter text.
func (p *Player) Label() string {
	return fmt.Sprintf("frame:%d (%d)", p.frame, p.max)
}
