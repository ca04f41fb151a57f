package client

import (
	"context"
	"errors"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/loop/server"
	"github.com/tomz197/flapssh/internal/scores"
)

// submitResult is the outcome of one submission goroutine.
type submitResult struct {
	sub scores.Submission
	res scores.Result
	err error
}

// submit sends the finished run without blocking the frame loop.
func (c *Client) submit() {
	c.submitWith(scores.NewSubmission(c.playerID, c.state.SubmitScore))
}

func (c *Client) submitWith(sub scores.Submission) {
	c.state.Submit = SubmitPending
	c.state.SubmitErr = ""
	go func() {
		res, err := c.server.Submit(context.Background(), sub)
		c.submits <- submitResult{sub: sub, res: res, err: err}
	}()
}

// processSubmissions applies a finished submission, if any.
func (c *Client) processSubmissions() {
	select {
	case r := <-c.submits:
		c.applySubmission(r)
	default:
	}
}

func (c *Client) applySubmission(r submitResult) {
	switch {
	case r.err == nil:
		c.state.Submit = SubmitSaved
		c.state.SavedBest = r.res.Entry.Score
		c.logger.Info("score saved", "score", r.res.Entry.Score, "created", r.res.Created)
	case errors.Is(r.err, scores.ErrProfileRequired):
		c.state.Submit = SubmitNone
		c.openProfile()
	case errors.Is(r.err, server.ErrScoringDisabled):
		c.state.Submit = SubmitDisabled
	case errors.Is(r.err, scores.ErrInvalid) && c.state.Screen == ScreenProfile:
		c.state.Submit = SubmitNone
		c.state.Profile.Err = r.err.Error()
	default:
		c.state.Submit = SubmitFailed
		c.state.SubmitErr = r.err.Error()
		if c.state.Screen == ScreenProfile {
			c.state.Screen = ScreenGame
		}
		c.logger.Warn("score submission failed", "err", r.err)
	}
	if r.err == nil && c.state.Screen == ScreenProfile {
		c.state.Screen = ScreenGame
	}
}

// openProfile shows the name prompt, keeping anything already typed.
func (c *Client) openProfile() {
	if c.state.Screen == ScreenShutdown {
		return
	}
	c.state.Screen = ScreenProfile
	c.state.Profile.field = fieldFirstName
	c.state.Profile.Err = ""
}

// updateProfile edits the name prompt. Enter moves to the initial and then
// submits; ESC skips saving this run.
func (c *Client) updateProfile() {
	in := c.state.Input
	p := &c.state.Profile
	if c.state.Submit == SubmitPending {
		return
	}

	if in.Escape {
		c.state.Screen = ScreenGame
		c.state.Submit = SubmitSkipped
		return
	}
	if in.Backspace {
		switch {
		case p.field == fieldLastInitial && p.LastInitial != 0:
			p.LastInitial = 0
		case p.field == fieldLastInitial:
			p.field = fieldFirstName
		case len(p.FirstName) > 0:
			p.FirstName = p.FirstName[:len(p.FirstName)-1]
		}
	}
	for _, r := range in.Pressed {
		// The prompt is drawn one rune per cell.
		if !unicode.IsPrint(r) || runewidth.RuneWidth(r) != 1 {
			continue
		}
		switch p.field {
		case fieldFirstName:
			if len(p.FirstName) < config.MaxFirstNameLength && !(r == ' ' && len(p.FirstName) == 0) {
				p.FirstName = append(p.FirstName, r)
			}
		case fieldLastInitial:
			if unicode.IsLetter(r) {
				p.LastInitial = unicode.ToUpper(r)
			}
		}
	}
	if !in.Enter {
		return
	}

	if p.field == fieldFirstName {
		if len(trimRunes(p.FirstName)) == 0 {
			p.Err = "First name is required"
			return
		}
		p.Err = ""
		p.field = fieldLastInitial
		return
	}
	initial := ""
	if p.LastInitial != 0 {
		initial = string(p.LastInitial)
	}
	sub := scores.NewSubmission(c.playerID, c.state.SubmitScore).
		WithProfile(string(trimRunes(p.FirstName)), initial)
	c.submitWith(sub)
}

func trimRunes(rs []rune) []rune {
	start, end := 0, len(rs)
	for start < end && unicode.IsSpace(rs[start]) {
		start++
	}
	for end > start && unicode.IsSpace(rs[end-1]) {
		end--
	}
	return rs[start:end]
}
