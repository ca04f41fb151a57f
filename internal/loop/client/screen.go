package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/loop"
	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/loop/server"
)

var (
	panelColor = draw.Hex("#111827")
	panelText  = draw.Hex("#f9fafb")
	alertColor = draw.Hex("#7f1d1d")
)

// titleArt is figlet "small".
var titleArt = []string{
	`  ___ _      _   ___ ___ _____ ___ _  _ `,
	` | __| |    /_\ | _ \ _ \ / __/ __| || |`,
	` | _|| |__ / _ \|  _/  _/ \__ \__ \ __ |`,
	` |_| |____/_/ \_\_| |_|   |___/___/_||_|`,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so text from the previous overlay doesn't persist on screen.
	screenChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if screenChanged || inactiveChanged {
		c.presenter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.renderer.Draw(c.canvas, c.session, c.state.clock)
	c.drawUI(c.server.GetSnapshot())

	return c.presenter.Present(c.canvas)
}

// drawUI draws the text overlay.
func (c *Client) drawUI(snapshot *server.Snapshot) {
	centerY := c.canvas.TerminalHeight() / 2

	switch {
	case c.state.Screen == ScreenShutdown:
		c.drawShutdownScreen(centerY)
	case c.state.isInactive:
		c.drawInactivityScreen(centerY)
	case c.state.Screen == ScreenProfile:
		c.drawProfileScreen(centerY)
	default:
		switch c.session.Phase {
		case loop.PhaseNotStarted:
			c.drawStartScreen(centerY, snapshot)
		case loop.PhaseGameOver:
			c.drawGameOverScreen(centerY)
		default:
			c.drawPlayingHUD(snapshot)
		}
	}
}

// textColor is the overlay colour that reads well on the current sky.
func (c *Client) textColor() draw.Color {
	return themeFor(c.session.BackgroundIndex(config.ThemeCount)).Text
}

// blinkOn toggles every 600ms of the animation clock.
func (c *Client) blinkOn() bool {
	return c.state.clock.Milliseconds()/600%2 == 0
}

// panel centres lines on a solid band starting at row.
func (c *Client) panel(row int, lines []string, bg draw.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	pad := strings.Repeat(" ", width+4)
	c.canvas.TextCentered(row-1, pad, panelText, bg)
	for i, l := range lines {
		padded := fmt.Sprintf("  %-*s  ", width, l)
		c.canvas.TextCentered(row+i, padded, panelText, bg)
	}
	c.canvas.TextCentered(row+len(lines), pad, panelText, bg)
}

// drawStartScreen draws the title, controls and the leaderboard.
func (c *Client) drawStartScreen(centerY int, snapshot *server.Snapshot) {
	fg := c.textColor()
	row := max(1, centerY-9)
	for i, line := range titleArt {
		c.canvas.TextCentered(row+i, line, fg, draw.ColorDefault)
	}
	row += len(titleArt) + 1
	c.canvas.TextCentered(row, "~ Flap through the pipes, reach the finish ~", fg, draw.ColorDefault)

	row += 2
	controls := []string{
		"SPACE / W / Click  . . Flap",
		"R / Enter  . . .  Restart",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controls {
		c.canvas.TextCentered(row+i, line, fg, draw.ColorDefault)
	}
	row += len(controls) + 1

	if c.blinkOn() {
		c.canvas.TextCentered(row, ">>  Press SPACE to Start  <<", fg, draw.ColorDefault)
	}
	row += 2

	if snapshot.Scoring {
		c.drawLeaderboard(row, snapshot)
	}
	players := fmt.Sprintf("Players: %-4d", snapshot.Players)
	c.canvas.Text(c.canvas.TerminalWidth()-len(players), c.canvas.TerminalHeight(), players, fg, draw.ColorDefault)
}

// drawLeaderboard lists the top scores starting at row.
func (c *Client) drawLeaderboard(row int, snapshot *server.Snapshot) {
	lines := []string{"TOP SCORES"}
	if len(snapshot.TopScores) == 0 {
		lines = append(lines, "No scores yet")
	}
	for i, e := range snapshot.TopScores {
		if i >= config.LeaderboardSize {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %-20s %6d", i+1, truncate(e.DisplayName(), 20), e.Score))
	}
	if row+len(lines) >= c.canvas.TerminalHeight() {
		return
	}
	c.panel(row+1, lines, panelColor)
}

// drawPlayingHUD shows the player count while flying. The score itself is
// drawn by the renderer.
func (c *Client) drawPlayingHUD(snapshot *server.Snapshot) {
	fg := c.textColor()
	players := fmt.Sprintf("Players: %-4d", snapshot.Players)
	c.canvas.Text(c.canvas.TerminalWidth()-len(players), c.canvas.TerminalHeight(), players, fg, draw.ColorDefault)
	level := fmt.Sprintf("Level %d", c.session.Level()+1)
	c.canvas.Text(2, c.canvas.TerminalHeight(), level, fg, draw.ColorDefault)
}

// drawGameOverScreen shows the result, the submission state and the
// restart prompt.
func (c *Client) drawGameOverScreen(centerY int) {
	title := "GAME OVER"
	if c.session.Victory {
		title = "YOU MADE IT!"
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Score: %d", c.session.Score),
		fmt.Sprintf("Best:  %d", c.state.Best),
	}
	if c.state.SavedBest >= 0 {
		lines = append(lines, fmt.Sprintf("Saved best: %d", c.state.SavedBest))
	}
	lines = append(lines, "", c.submitLine())
	c.panel(centerY-len(lines)/2, lines, panelColor)

	row := centerY - len(lines)/2 + len(lines) + 2
	if c.state.Submit == SubmitFailed {
		alert := []string{
			"Could not save your score",
			truncate(c.state.SubmitErr, max(20, c.canvas.TerminalWidth()-8)),
			"S to retry, ESC to dismiss",
		}
		c.panel(row, alert, alertColor)
		return
	}
	if c.state.Submit != SubmitPending && c.blinkOn() {
		c.canvas.TextCentered(row, ">>  Press R to Restart  <<", c.textColor(), draw.ColorDefault)
	}
}

func (c *Client) submitLine() string {
	switch c.state.Submit {
	case SubmitPending:
		return "Saving score..."
	case SubmitSaved:
		return "Score saved"
	case SubmitFailed:
		return "Score not saved"
	case SubmitSkipped:
		return "Score not saved (skipped)"
	default:
		return ""
	}
}

// drawProfileScreen draws the name prompt for a player's first score.
func (c *Client) drawProfileScreen(centerY int) {
	p := c.state.Profile
	cursor := " "
	if c.blinkOn() {
		cursor = "_"
	}
	first := string(p.FirstName)
	initial := string(p.LastInitial)
	if p.LastInitial == 0 {
		initial = ""
	}
	if p.field == fieldFirstName {
		first += cursor
	} else if p.LastInitial == 0 {
		initial = cursor
	}

	lines := []string{
		"NEW HIGH SCORE ENTRY",
		"",
		fmt.Sprintf("Score: %d", c.state.SubmitScore),
		"",
		fmt.Sprintf("First name:   %-*s", config.MaxFirstNameLength, first),
		fmt.Sprintf("Last initial: %-*s", config.MaxFirstNameLength, initial),
		"",
	}
	switch {
	case c.state.Submit == SubmitPending:
		lines = append(lines, "Saving...")
	case p.Err != "":
		lines = append(lines, truncate(p.Err, config.MaxFirstNameLength+14))
	default:
		lines = append(lines, "Enter to continue, ESC to skip")
	}
	c.panel(centerY-len(lines)/2, lines, panelColor)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int) {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.state.lastInput).Seconds())
	lines := []string{
		"INACTIVITY WARNING",
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", max(0, remaining)),
		"",
		"Press any key to continue",
	}
	c.panel(centerY-len(lines)/2, lines, panelColor)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	remaining := int(c.state.shutdownTimer) + 1
	lines := []string{
		"SERVER SHUTTING DOWN",
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		"Press Q to disconnect now",
	}
	c.panel(centerY-len(lines)/2, lines, panelColor)
}

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
