package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/tomz197/flapssh/internal/audio"
	"github.com/tomz197/flapssh/internal/config"
	"github.com/tomz197/flapssh/internal/input"
	"github.com/tomz197/flapssh/internal/loop/client"
	loopconfig "github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/loop/server"
	"github.com/tomz197/flapssh/internal/scores"
)

// game plays one session on a terminal.
type game func(hub server.GameServer, opts client.ClientOptions) error

// openSpeaker opens the audio device.
var openSpeaker = func(volume float64) (audio.Player, error) {
	return audio.NewSpeaker(volume)
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:], os.Stderr, nil))
}

// run plays until the session ends and returns the exit code. A nil play
// picks the tcell or ANSI frontend from the flags.
func run(args []string, stderr io.Writer, play game) int {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	fs.SetOutput(stderr)
	startScore := fs.Int("start-score", config.GetEnvInt("FLAPPY_START_SCORE", 0), "start at this score (debug)")
	tuningPath := fs.String("tuning", config.GetEnv("FLAPPY_TUNING", ""), "YAML file overriding gameplay tuning")
	scoresURL := fs.String("scores-url", config.GetEnv("FLAPPY_SCORES_URL", ""), "score service base URL; empty plays offline")
	playerID := fs.String("player", config.GetEnv("FLAPPY_PLAYER_ID", ""), "score service player id (default derived from user and host)")
	ansi := fs.Bool("ansi", config.GetEnvBool("FLAPPY_ANSI", false), "draw with raw ANSI output instead of tcell")
	mute := fs.Bool("mute", config.GetEnvBool("FLAPPY_MUTE", false), "disable sound")
	seed := fs.Int64("seed", 0, "gap placement seed (0 picks one)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, closeLog, err := openLog(config.GetEnv("FLAPPY_LOG_FILE", ""))
	if err != nil {
		fmt.Fprintf(stderr, "failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	tuning, err := loopconfig.LoadTuning(*tuningPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	var board scores.Board
	if *scoresURL != "" {
		board = scores.NewClient(*scoresURL, nil)
		if *playerID == "" {
			*playerID = defaultPlayerID()
		}
	}
	hub := server.NewServer(board, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	var player audio.Player = audio.Nop{}
	if !*mute {
		sp, err := openSpeaker(config.GetEnvFloat("FLAPPY_VOLUME", 0.8))
		if err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		} else {
			player = sp
		}
	}
	defer player.Close()

	opts := client.ClientOptions{
		Username:   localUser(),
		PlayerID:   *playerID,
		StartScore: *startScore,
		Tuning:     tuning,
		Seed:       *seed,
		Audio:      player,
		Logger:     logger,
	}

	if play == nil {
		play = runTcell
		if *ansi {
			play = runANSI
		}
	}
	if err := play(hub, opts); err != nil {
		fmt.Fprintf(stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}

// runTcell plays on a tcell screen.
func runTcell(hub server.GameServer, opts client.ClientOptions) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	c := client.NewClient(hub, input.StartEvents(screen), client.NewTcellPresenter(screen), opts)
	return c.Run()
}

// runANSI plays on the raw TTY, the same output path SSH sessions use.
func runANSI(hub server.GameServer, opts client.ClientOptions) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	src := input.StartStream(bufio.NewReader(os.Stdin))
	c := client.NewClient(hub, src, client.NewANSIPresenter(os.Stdout, nil), opts)
	return c.Run()
}

// openLog logs to path, or nowhere: the terminal belongs to the game.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return config.NewLogger(io.Discard, "game"), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return config.NewLogger(f, "game"), func() { _ = f.Close() }, nil
}

func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return config.GetEnv("USER", "player")
}

// defaultPlayerID is stable per user and machine.
func defaultPlayerID() string {
	host, _ := os.Hostname()
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(localUser()+"@"+host)).String()
}
