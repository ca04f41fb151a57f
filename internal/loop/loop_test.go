package loop

import (
	"slices"
	"testing"
	"time"

	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/object"
)

const frame = time.Second / 60

// designView is the base resolution, so every scale factor is 1.
var designView = object.View{Width: config.BaseWidth, Height: config.BaseHeight}

func newTestSession(t *testing.T, tuning config.Tuning, startScore int) *Session {
	t.Helper()
	return NewSession(tuning, startScore, designView, 1)
}

func TestScoringIsMonotonic(t *testing.T) {
	s := newTestSession(t, config.DefaultTuning(), 0)
	s.Phase = PhaseRunning
	s.Bird.X = 100

	passed := func(index int, milestone bool) object.Obstacle {
		return object.Obstacle{Index: index, X: 0, Width: 50, GapTop: 0, GapHeight: 600, Milestone: milestone}
	}

	s.Obstacles = []object.Obstacle{passed(1, false), passed(2, false), passed(3, false)}
	s.events = s.events[:0]
	s.checkPasses()
	if s.Score != 3 {
		t.Fatalf("Score = %d, want 3", s.Score)
	}
	if n := countEvents(s.events, EventPoint); n != 3 {
		t.Fatalf("point events = %d, want 3", n)
	}

	// Already-passed obstacles never score twice.
	s.checkPasses()
	if s.Score != 3 {
		t.Fatalf("Score = %d after re-check, want 3", s.Score)
	}

	s.Obstacles = append(s.Obstacles, passed(10, true))
	s.events = s.events[:0]
	s.checkPasses()
	if s.Score != 3 {
		t.Fatalf("milestone changed score to %d", s.Score)
	}
	if !slices.Contains(s.events, EventMilestone) {
		t.Fatal("missing milestone event")
	}
}

func TestLevelUpEvent(t *testing.T) {
	s := newTestSession(t, config.DefaultTuning(), 9)
	s.Phase = PhaseRunning
	s.Bird.X = 100
	s.Obstacles = []object.Obstacle{{Index: 11, Width: 10, GapHeight: 600}}
	s.checkPasses()
	if s.Score != 10 || s.Level() != 1 {
		t.Fatalf("score=%d level=%d", s.Score, s.Level())
	}
	if !slices.Contains(s.events, EventLevelUp) {
		t.Fatal("missing level-up event")
	}
}

func TestDifficultyIsMonotonicAndCapped(t *testing.T) {
	tuning := config.DefaultTuning()
	prev := DifficultyFor(tuning, 0)
	if prev.Level != 0 || prev.GravityMult != 1 || prev.SpeedMult != 1 || prev.GapScale != 1 {
		t.Fatalf("level 0 difficulty = %+v", prev)
	}
	for score := 1; score <= 300; score++ {
		d := DifficultyFor(tuning, score)
		if d.Level < prev.Level {
			t.Fatalf("level decreased at score %d", score)
		}
		if d.GravityMult < prev.GravityMult || d.SpeedMult < prev.SpeedMult {
			t.Fatalf("multiplier decreased at score %d: %+v -> %+v", score, prev, d)
		}
		if d.GapScale > prev.GapScale || d.SpawnInterval > prev.SpawnInterval {
			t.Fatalf("gap or interval grew at score %d: %+v -> %+v", score, prev, d)
		}
		if d.GravityMult > tuning.GravityCap || d.SpeedMult > tuning.SpeedCap {
			t.Fatalf("cap exceeded at score %d: %+v", score, d)
		}
		if d.GapScale < tuning.GapMinFraction {
			t.Fatalf("gap below floor at score %d: %+v", score, d)
		}
		if d.SpawnInterval < time.Duration(tuning.MinSpawnInterval)*time.Millisecond {
			t.Fatalf("interval below floor at score %d: %+v", score, d)
		}
		prev = d
	}

	maxScore := tuning.MaxLevel * tuning.PointsPerLevel
	if got := DifficultyFor(tuning, maxScore); got != DifficultyFor(tuning, maxScore*10) {
		t.Fatalf("difficulty changes past max level: %+v", got)
	}
	if LevelFor(tuning, maxScore*10) != tuning.MaxLevel {
		t.Fatal("level not capped")
	}
}

func TestMilestoneAndFinishIndices(t *testing.T) {
	tuning := config.DefaultTuning()
	for _, start := range []int{0, 3, 17, 85} {
		s := newTestSession(t, tuning, start)
		s.Phase = PhaseRunning
		for i := 0; i < 200; i++ {
			s.spawn(s.Difficulty(), time.Hour)
		}
		if want := tuning.FinishCount - start; s.Spawned != want {
			t.Fatalf("start %d: spawned %d, want %d", start, s.Spawned, want)
		}
		for k, o := range s.Obstacles {
			abs := start + k + 1
			if o.Index != abs {
				t.Fatalf("start %d: obstacle %d has index %d, want %d", start, k, o.Index, abs)
			}
			if o.Milestone != (abs%10 == 0) {
				t.Fatalf("start %d: index %d milestone=%v", start, abs, o.Milestone)
			}
			if o.Finish != (abs == tuning.FinishCount) {
				t.Fatalf("start %d: index %d finish=%v", start, abs, o.Finish)
			}
		}
	}

	s := newTestSession(t, tuning, 85)
	for i := 0; i < 10; i++ {
		s.spawn(s.Difficulty(), time.Hour)
	}
	if len(s.Obstacles) != 5 || !s.Obstacles[4].Finish {
		t.Fatalf("start 85: want 5 obstacles ending in the finish, got %+v", s.Obstacles)
	}
}

func TestGapStaysWithinMargins(t *testing.T) {
	tuning := config.DefaultTuning()
	s := newTestSession(t, tuning, 0)
	for i := 0; i < 500; i++ {
		o := s.newObstacle(i+1, s.Difficulty())
		if o.GapTop < tuning.GapMargin-1e-9 || o.GapBottom() > config.BaseHeight-tuning.GapMargin+1e-9 {
			t.Fatalf("gap out of margins: %+v", o)
		}
		if o.X != config.BaseWidth || o.Width != tuning.PipeWidth {
			t.Fatalf("obstacle geometry: %+v", o)
		}
	}
}

func TestCollision(t *testing.T) {
	tuning := config.DefaultTuning()
	r := tuning.BirdRadius
	tests := []struct {
		name string
		y    float64
		hit  bool
	}{
		{"centre of gap", 300, false},
		{"touching gap top", 200 + r, false},
		{"touching gap bottom", 400 - r, false},
		{"into top pipe", 200 + r - 1, true},
		{"into bottom pipe", 400 - r + 1, true},
		{"far above", 50, true},
		{"far below", 550, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, tuning, 0)
			s.Phase = PhaseRunning
			s.Spawned = 1
			s.Bird.Y = tt.y
			// The bird is horizontally inside the obstacle.
			s.Obstacles = []object.Obstacle{{Index: 1, X: s.Bird.X - 20, Width: 64, GapTop: 200, GapHeight: 200}}

			events := s.Step(Actions{}, 0)
			if got := s.Phase == PhaseGameOver; got != tt.hit {
				t.Fatalf("game over = %v, want %v", got, tt.hit)
			}
			if tt.hit && (!slices.Contains(events, EventHit) || s.Victory) {
				t.Fatalf("events = %v victory = %v", events, s.Victory)
			}
		})
	}
}

func TestBoundsAreTerminal(t *testing.T) {
	for _, y := range []float64{5, config.BaseHeight - 5} {
		s := newTestSession(t, config.DefaultTuning(), 0)
		s.Phase = PhaseRunning
		s.Spawned = 1
		s.Bird.Y = y
		s.Step(Actions{}, 0)
		if s.Phase != PhaseGameOver {
			t.Fatalf("y=%v: phase %v, want game over", y, s.Phase)
		}
	}
}

func TestFlapStartsAndResetsVelocity(t *testing.T) {
	tuning := config.DefaultTuning()
	s := newTestSession(t, tuning, 0)

	s.Step(Actions{}, frame)
	if s.Phase != PhaseNotStarted || len(s.Obstacles) != 0 {
		t.Fatal("session started without a flap")
	}

	events := s.Step(Actions{Flap: true}, frame)
	if s.Phase != PhaseRunning || !slices.Contains(events, EventFlap) {
		t.Fatalf("phase %v events %v", s.Phase, events)
	}
	if len(s.Obstacles) != 1 {
		t.Fatalf("first running frame spawned %d obstacles, want 1", len(s.Obstacles))
	}

	s.Bird.VY = 25
	s.Step(Actions{Flap: true}, 0)
	if s.Bird.VY != tuning.FlapImpulse {
		t.Fatalf("VY = %v, want impulse %v", s.Bird.VY, tuning.FlapImpulse)
	}
}

func TestFrameDeltaIsClamped(t *testing.T) {
	tuning := config.DefaultTuning()
	a := newTestSession(t, tuning, 0)
	b := newTestSession(t, tuning, 0)
	a.Step(Actions{Flap: true}, time.Minute)
	b.Step(Actions{Flap: true}, tuning.MaxFrameDeltaDuration())
	if a.Bird != b.Bird || a.PlayTime != b.PlayTime {
		t.Fatalf("long frame not clamped: %+v vs %+v", a.Bird, b.Bird)
	}
}

// play runs frames with a bot that keeps the bird near mid height.
func play(s *Session, frames int) []Event {
	var all []Event
	for i := 0; i < frames && s.Phase != PhaseGameOver; i++ {
		flap := s.Phase == PhaseNotStarted || (s.Bird.VY > 0 && s.Bird.Y > config.BaseHeight/2)
		all = append(all, s.Step(Actions{Flap: flap}, frame)...)
	}
	return all
}

func TestVictoryFromStartScore85(t *testing.T) {
	tuning := config.DefaultTuning()
	// A gap wider than the margins allow is centred, leaving only thin pipes.
	tuning.GapHeight = 560
	tuning.GapMargin = 30
	tuning.GapShrinkPerLevel = 0
	s := newTestSession(t, tuning, 85)

	events := play(s, 60*60)
	if s.Phase != PhaseGameOver || !s.Victory {
		t.Fatalf("phase %v victory %v score %d", s.Phase, s.Victory, s.Score)
	}
	// 86..89 score, 90 is the finish and adds one on exit.
	if s.Score != 90 {
		t.Fatalf("Score = %d, want 90", s.Score)
	}
	for _, e := range []Event{EventFlyout, EventFanfare, EventVictory} {
		if n := countEvents(events, e); n != 1 {
			t.Fatalf("%v fired %d times", e, n)
		}
	}
	if slices.Contains(events, EventHit) {
		t.Fatal("unexpected hit")
	}
	if s.Spawned != 5 {
		t.Fatalf("Spawned = %d, want 5", s.Spawned)
	}
}

func TestFlyoutFreezesObstaclesAndIgnoresInput(t *testing.T) {
	tuning := config.DefaultTuning()
	s := newTestSession(t, tuning, 0)
	s.Phase = PhaseRunning
	s.Spawned = tuning.FinishCount
	s.Obstacles = []object.Obstacle{{Index: tuning.FinishCount, Finish: true, Milestone: true,
		X: s.Bird.X + tuning.VictoryApproach - 1, Width: 64, GapTop: 0, GapHeight: 1}}

	events := s.Step(Actions{}, frame)
	if s.Phase != PhaseVictoryFlyout || !slices.Contains(events, EventFlyout) {
		t.Fatalf("phase %v events %v", s.Phase, events)
	}

	x := s.Obstacles[0].X
	score := s.Score
	vy := s.Bird.VY
	s.Step(Actions{Flap: true, Restart: true}, frame)
	if s.Obstacles[0].X != x {
		t.Fatal("obstacle moved during flyout")
	}
	if s.Phase != PhaseVictoryFlyout || s.Score != score {
		t.Fatal("input changed flyout state")
	}
	if s.Bird.VY == tuning.FlapImpulse && vy != tuning.FlapImpulse {
		t.Fatal("player flap applied during flyout")
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	tuning := config.DefaultTuning()
	s := newTestSession(t, tuning, 7)
	initial := snapshot(s)

	for round := 0; round < 3; round++ {
		// Start and fall to the ground.
		s.Step(Actions{Flap: true}, frame)
		for i := 0; i < 2000 && s.Phase != PhaseGameOver; i++ {
			s.Step(Actions{}, frame)
		}
		if s.Phase != PhaseGameOver {
			t.Fatal("bird never hit anything")
		}
		s.Step(Actions{Restart: true}, frame)
		if got := snapshot(s); got != initial {
			t.Fatalf("round %d: state after restart %+v, want %+v", round, got, initial)
		}
	}
}

func TestRestartOnlyFromGameOver(t *testing.T) {
	s := newTestSession(t, config.DefaultTuning(), 0)
	s.Step(Actions{Flap: true}, frame)
	s.Step(Actions{Restart: true}, frame)
	if s.Phase != PhaseRunning {
		t.Fatalf("restart honoured while running: %v", s.Phase)
	}
}

func TestResizeScalesScene(t *testing.T) {
	s := newTestSession(t, config.DefaultTuning(), 0)
	s.Phase = PhaseRunning
	s.Obstacles = []object.Obstacle{{X: 200, Width: 64, GapTop: 100, GapHeight: 180}}
	s.Resize(object.View{Width: 200, Height: 300})
	o := s.Obstacles[0]
	if o.X != 100 || o.Width != 32 || o.GapTop != 50 || o.GapHeight != 90 {
		t.Fatalf("obstacle not rescaled: %+v", o)
	}
	if s.Bird.X != 50 || s.Bird.Y != 150 {
		t.Fatalf("bird not rescaled: %+v", s.Bird)
	}
}

func TestNextMilestone(t *testing.T) {
	s := newTestSession(t, config.DefaultTuning(), 0)
	s.Bird.X = 100
	s.Obstacles = []object.Obstacle{
		{Index: 10, X: 50, Milestone: true},
		{Index: 20, X: 300, Milestone: true},
		{Index: 21, X: 150},
		{Index: 30, X: 250, Milestone: true, Passed: true},
	}
	o, ok := s.NextMilestone()
	if !ok || o.Index != 20 {
		t.Fatalf("NextMilestone = %+v, %v", o, ok)
	}
}

func TestStartScoreClamped(t *testing.T) {
	tuning := config.DefaultTuning()
	s := NewSession(tuning, 500, designView, 1)
	if s.StartScore != tuning.FinishCount-1 {
		t.Fatalf("StartScore = %d", s.StartScore)
	}
	if s.BackgroundIndex(config.ThemeCount) != config.ThemeCount-1 {
		t.Fatal("background index not capped")
	}
}

type sessionSnapshot struct {
	Phase      Phase
	Victory    bool
	Score      int
	Bird       object.Bird
	Obstacles  int
	Spawned    int
	SinceSpawn time.Duration
	PlayTime   time.Duration
	ScrollX    float64
}

func snapshot(s *Session) sessionSnapshot {
	return sessionSnapshot{
		Phase:      s.Phase,
		Victory:    s.Victory,
		Score:      s.Score,
		Bird:       s.Bird,
		Obstacles:  len(s.Obstacles),
		Spawned:    s.Spawned,
		SinceSpawn: s.SinceSpawn,
		PlayTime:   s.PlayTime,
		ScrollX:    s.ScrollX,
	}
}

func countEvents(events []Event, want Event) int {
	n := 0
	for _, e := range events {
		if e == want {
			n++
		}
	}
	return n
}
