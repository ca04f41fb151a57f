package loop

// Event is something that happened during a Step, for sound and effects.
type Event int

const (
	EventFlap      Event = iota + 1 // Player or auto flap
	EventPoint                      // Scored an obstacle
	EventMilestone                  // Flew through a milestone portal
	EventLevelUp                    // Derived level increased
	EventHit                        // Collision or out of bounds; game over
	EventFlyout                     // Finish reached, victory flyout started
	EventFanfare                    // Bird left the screen during the flyout
	EventVictory                    // Flyout finished; game over with victory
)

var eventNames = map[Event]string{
	EventFlap:      "flap",
	EventPoint:     "point",
	EventMilestone: "milestone",
	EventLevelUp:   "level-up",
	EventHit:       "hit",
	EventFlyout:    "flyout",
	EventFanfare:   "fanfare",
	EventVictory:   "victory",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// Actions are the normalized player inputs for one frame.
type Actions struct {
	Flap    bool
	Restart bool
}
