package motion

import "github.com/go-gl/mathgl/mgl64"

// SignalKind is the closed set of notifications a controller emits for animation,
// audio and gameplay collaborators.
type SignalKind uint8

const (
	// SignalGrounded reports touching (Active) or leaving the ground. Touching the
	// ground doubles as the landing cue.
	SignalGrounded SignalKind = iota + 1
	SignalJump
	SignalDoubleJump
	SignalWallJump
	SignalWallSlide
	SignalWallGrab
	// SignalClimbing reports whether the character is sliding on or grabbing a wall.
	SignalClimbing
	SignalDashStarted
	SignalDashStopped
	SignalDeath
	SignalImpact
)

var signalNames = [...]string{
	SignalGrounded:    "grounded",
	SignalJump:        "jump",
	SignalDoubleJump:  "double_jump",
	SignalWallJump:    "wall_jump",
	SignalWallSlide:   "wall_slide",
	SignalWallGrab:    "wall_grab",
	SignalClimbing:    "climbing",
	SignalDashStarted: "dash_started",
	SignalDashStopped: "dash_stopped",
	SignalDeath:       "death",
	SignalImpact:      "impact",
}

func (k SignalKind) String() string {
	if int(k) < len(signalNames) && signalNames[k] != "" {
		return signalNames[k]
	}
	return "unknown"
}

// Signal is a single notification. Active carries the boolean of toggle-style kinds,
// Direction the launch or dash direction, Speed the impact speed.
type Signal struct {
	Kind      SignalKind
	Time      float64
	Active    bool
	Direction mgl64.Vec3
	Speed     float64
}

// SignalQueue is a FIFO of signals owned by one controller.
type SignalQueue struct {
	items []Signal
}

// Push adds a signal.
func (q *SignalQueue) Push(s Signal) {
	if q == nil {
		return
	}
	q.items = append(q.items, s)
}

// Drain returns all queued signals and clears the queue.
func (q *SignalQueue) Drain() []Signal {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many signals are waiting.
func (q *SignalQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
