package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/flapssh/internal/audio"
	"github.com/tomz197/flapssh/internal/config"
	"github.com/tomz197/flapssh/internal/draw"
	"github.com/tomz197/flapssh/internal/input"
	"github.com/tomz197/flapssh/internal/loop/client"
	loopconfig "github.com/tomz197/flapssh/internal/loop/config"
	"github.com/tomz197/flapssh/internal/loop/server"
	"github.com/tomz197/flapssh/internal/scores"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// Shared by all SSH sessions.
var (
	gameServer *server.Server
	tuning     loopconfig.Tuning
	logger     *log.Logger
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	logger = config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath)

	var err error
	tuning, err = loopconfig.LoadTuning(config.GetEnv("FLAPPY_TUNING", ""))
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}

	board, closeBoard, err := openBoard()
	if err != nil {
		logger.Fatal("open score board", "err", err)
	}
	defer closeBoard()

	ctx, cancelServer := context.WithCancel(context.Background())
	gameServer = server.NewServer(board, logger)
	go gameServer.Run(ctx)
	logger.Info("game server started", "scoring", board != nil)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect.
	gameServer.Shutdown(15 * time.Second)
	cancelServer()
	logger.Info("game server stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// openBoard picks the score backend: a remote score service, a local store
// (Redis or JSON file), or none.
func openBoard() (scores.Board, func(), error) {
	if url := config.GetEnv("FLAPPY_SCORES_URL", ""); url != "" {
		return scores.NewClient(url, nil), func() {}, nil
	}
	cfg := scores.StoreConfig{
		RedisURL:    config.GetEnv("REDIS_URL", ""),
		RedisPrefix: config.GetEnv("REDIS_PREFIX", ""),
		FilePath:    config.GetEnv("FLAPPY_SCORES_FILE", ""),
	}
	if cfg.RedisURL == "" && cfg.FilePath == "" {
		return nil, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := scores.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return scores.NewService(store), func() { _ = store.Close() }, nil
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger.Info("new game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		src := input.StartStream(bufio.NewReader(sess))
		presenter := client.NewANSIPresenter(sess, sizeTracker.getSize)
		c := client.NewClient(gameServer, src, presenter, client.ClientOptions{
			Username: sess.User(),
			PlayerID: playerID(sess),
			Tuning:   tuning,
			Audio:    audio.NewBell(sess),
			Logger:   logger,
		})
		if err := c.Run(); err != nil {
			logger.Error("game error", "user", sess.User(), "err", err)
		}

		logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// playerID is stable per public key; keyless sessions get a fresh id.
func playerID(sess ssh.Session) string {
	if key := sess.PublicKey(); key != nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, key.Marshal()).String()
	}
	return uuid.NewString()
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
