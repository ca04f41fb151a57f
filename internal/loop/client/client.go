// Package client runs one play session: it reads input, steps the
// simulation, renders frames and plays sound, and talks to the hub for the
// leaderboard and score submission.
package client

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flapssh/internal/audio"
	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/input"
	"github.com/tomz197/flapssh/internal/loop"
	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/loop/server"
	"github.com/tomz197/flapssh/internal/object"
)

// Client handles rendering and input for a single session.
type Client struct {
	server    server.GameServer
	handle    *server.ClientHandle
	state     *ClientState
	session   *loop.Session
	mixer     *audio.Mixer
	renderer  *renderer
	canvas    *draw.Canvas
	presenter Presenter
	input     input.Source
	submits   chan submitResult
	playerID  string
	logger    *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	Username   string
	PlayerID   string // Score service id; empty disables submission
	StartScore int
	Tuning     config.Tuning
	Seed       int64        // Gap placement seed; 0 picks one from the clock
	Audio      audio.Player // nil plays nothing
	Logger     *log.Logger
}

// NewClient creates a new client connected to the given hub.
func NewClient(gs server.GameServer, src input.Source, p Presenter, opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cols, rows, err := p.Size()
	if err != nil {
		cols, rows = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(cols, rows)
	canvas := draw.NewCanvas(renderWidth, renderHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:    gs,
		handle:    gs.RegisterClient(opts.Username),
		state:     NewClientState(),
		session:   loop.NewSession(opts.Tuning, opts.StartScore, object.ViewOf(canvas), seed),
		mixer:     audio.NewMixer(opts.Audio, opts.Tuning),
		renderer:  newRenderer(),
		canvas:    canvas,
		presenter: p,
		input:     src,
		submits:   make(chan submitResult, 1),
		playerID:  opts.PlayerID,
		logger:    logger.With("user", opts.Username),
	}
}

// Run starts the client loop. Blocks until the player quits, the input ends,
// the session idles out or the hub shuts down.
func (c *Client) Run() error {
	c.presenter.Start()
	defer c.presenter.Stop()
	defer c.server.UnregisterClient(c.handle.ID)
	defer c.mixer.Reset()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		c.state.clock += c.state.delta
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		if !c.state.Running {
			break
		}
		c.processSubmissions()
		c.updateScreen()
		c.step()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// step advances the current screen by one frame. Audio and scenery keep
// running on every screen so the ambient drone fades out after a crash.
func (c *Client) step() {
	switch c.state.Screen {
	case ScreenGame:
		c.updateGame()
	case ScreenProfile:
		c.updateProfile()
	case ScreenShutdown:
		c.updateShutdownState()
	}
	c.mixer.Update(c.session, c.state.delta)
	c.renderer.Update(c.state.delta)
}

// Session exposes the simulation, for tests and debugging.
func (c *Client) Session() *loop.Session {
	return c.session
}

// State exposes the UI state, for tests.
func (c *Client) State() *ClientState {
	return c.state
}

// processInput reads input and handles quitting and inactivity.
func (c *Client) processInput() {
	c.handleInput(c.input.Read())
}

func (c *Client) handleInput(in input.Input) {
	c.state.Input = in

	if in.Closed {
		c.state.Running = false
		return
	}

	if in.Active() {
		c.state.lastInput = time.Now()
		c.state.isInactive = false
	} else if idle := time.Since(c.state.lastInput).Seconds(); idle > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting idle session")
		c.state.Running = false
	} else if idle > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	// Letters are names while the profile prompt is open; only Ctrl-C quits.
	if in.Interrupt || (in.Quit && c.state.Screen != ScreenProfile) {
		c.state.Running = false
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
				c.mixer.Reset()
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area, and rescales the scene to the new canvas.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.presenter.Size()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() || c.state.Input.Resized {
		c.presenter.Clear()
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.session.Resize(object.ViewOf(c.canvas))
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateGame steps the simulation and reacts to phase changes.
func (c *Client) updateGame() {
	in := c.state.Input
	act := loop.Actions{Flap: in.Flap, Restart: in.Restart}

	if c.session.GameOver() {
		switch c.state.Submit {
		case SubmitPending:
			act.Restart = false
		case SubmitFailed:
			act.Restart = false
			if in.Typed('s') {
				c.submit()
			} else if in.Escape {
				c.state.Submit = SubmitSkipped
			}
		}
	}
	if c.state.isInactive {
		act = loop.Actions{}
	}

	prev := c.session.Phase
	events := c.session.Step(act, c.state.delta)
	c.mixer.Handle(events)
	c.renderer.React(events, c.session)

	switch {
	case prev != loop.PhaseGameOver && c.session.GameOver():
		c.onGameOver()
	case prev == loop.PhaseGameOver && c.session.Phase == loop.PhaseNotStarted:
		c.onRestart()
	}
}

// onGameOver records the run and submits it.
func (c *Client) onGameOver() {
	score := c.session.Score
	c.state.Best = max(c.state.Best, score)
	c.state.SubmitScore = score
	c.logger.Info("run finished", "score", score, "victory", c.session.Victory, "play_time", c.session.PlayTime.Round(time.Millisecond))

	if c.playerID == "" || !c.server.GetSnapshot().Scoring {
		c.state.Submit = SubmitDisabled
		return
	}
	c.submit()
}

// onRestart clears everything the finished run left behind.
func (c *Client) onRestart() {
	c.mixer.Reset()
	c.renderer.Reset()
	c.state.Submit = SubmitNone
	c.state.SubmitErr = ""
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
