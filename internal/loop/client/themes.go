package client

import (
	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/loop/config"
)

// Theme is one background look. The session picks a theme from its score, so
// the scenery changes every level until the last theme.
type Theme struct {
	Name      string
	SkyTop    draw.Color
	SkyBottom draw.Color
	Far       draw.Color // Distant hills
	Near      draw.Color // Foreground skyline
	Window    draw.Color // Lit windows on the skyline; ColorDefault for none
	Text      draw.Color // Overlay text that reads well on this sky
	Stars     bool
}

var themes = [config.ThemeCount]Theme{
	{
		Name:      "Dawn",
		SkyTop:    draw.Hex("#f59e8b"),
		SkyBottom: draw.Hex("#ffe8c2"),
		Far:       draw.Hex("#d79a9a"),
		Near:      draw.Hex("#8a5f73"),
		Text:      draw.Hex("#3b1f2b"),
	},
	{
		Name:      "Day",
		SkyTop:    draw.Hex("#4ec0ca"),
		SkyBottom: draw.Hex("#c7f0f3"),
		Far:       draw.Hex("#a3d9a0"),
		Near:      draw.Hex("#5f9f6a"),
		Text:      draw.Hex("#0f2d33"),
	},
	{
		Name:      "Dusk",
		SkyTop:    draw.Hex("#3b2b5c"),
		SkyBottom: draw.Hex("#e07a5f"),
		Far:       draw.Hex("#7a4f7f"),
		Near:      draw.Hex("#2f2440"),
		Window:    draw.Hex("#f4c95d"),
		Text:      draw.Hex("#fff4e0"),
	},
	{
		Name:      "Night",
		SkyTop:    draw.Hex("#070b1f"),
		SkyBottom: draw.Hex("#27325e"),
		Far:       draw.Hex("#1c2448"),
		Near:      draw.Hex("#0c1230"),
		Window:    draw.Hex("#ffd166"),
		Text:      draw.Hex("#e6ecff"),
		Stars:     true,
	},
	{
		Name:      "Warp",
		SkyTop:    draw.Hex("#14002b"),
		SkyBottom: draw.Hex("#6a1b9a"),
		Far:       draw.Hex("#431070"),
		Near:      draw.Hex("#1a0036"),
		Window:    draw.Hex("#22d3ee"),
		Text:      draw.Hex("#f5e9ff"),
		Stars:     true,
	},
}

// themeFor clamps idx into the theme table.
func themeFor(idx int) Theme {
	return themes[max(0, min(idx, len(themes)-1))]
}
