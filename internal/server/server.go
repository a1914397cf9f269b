// Package server runs the line-oriented TCP front end: one goroutine
// per client connection plus a background poller that keeps the bit/
// position bus caches warm, coordinated so a fatal error in either
// shuts the whole listener down (§5's "one thread per client command
// stream; one change-polling thread").
package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pandablocks/pandad/internal/dispatch"
	"github.com/pandablocks/pandad/internal/metrics"
)

// Config controls the server's background poller cadence and its
// logging/metrics sinks.
type Config struct {
	PollInterval time.Duration
	Logger       *zap.Logger
	Metrics      *metrics.Registry
}

// Server owns a listener and the runtime it dispatches commands
// against.
type Server struct {
	ln  net.Listener
	rt  *dispatch.Runtime
	cfg Config
}

// New wraps an already-open listener (built with Listen, below, or any
// net.Listener a test wants to supply) for a loaded runtime.
func New(ln net.Listener, rt *dispatch.Runtime, cfg Config) *Server {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Server{ln: ln, rt: rt, cfg: cfg}
}

// Serve runs the accept loop and the bus poller until ctx is cancelled
// or either one fails fatally. It always returns once the listener is
// closed.
func (s *Server) Serve(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		<-ctx.Done()
		return s.ln.Close()
	})
	group.Go(func() error {
		return s.acceptLoop(ctx)
	})
	group.Go(func() error {
		return s.pollLoop(ctx)
	})

	err := group.Wait()
	if errors.Is(err, net.ErrClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := setNoDelay(conn); err != nil {
			s.cfg.Logger.Warn("set TCP_NODELAY failed", zap.Error(err))
		}
		s.cfg.Logger.Info("client connected", zap.String("remote", conn.RemoteAddr().String()))
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if s.rt.DB.Bus == nil {
				continue
			}
			if err := s.rt.DB.Bus.RefreshBits(ctx, s.rt.Index); err != nil {
				s.cfg.Logger.Warn("bit bus refresh failed", zap.Error(err))
			}
			if err := s.rt.DB.Bus.RefreshPositions(ctx, s.rt.Index); err != nil {
				s.cfg.Logger.Warn("position bus refresh failed", zap.Error(err))
			}
			s.cfg.Metrics.SetChangeIndex(float64(s.rt.Index.Current()))
		}
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	defer s.cfg.Logger.Info("client disconnected", zap.String("remote", conn.RemoteAddr().String()))

	reader := bufio.NewReader(conn)
	sess := dispatch.NewSession()

	for {
		line, err := readLine(reader)
		if err != nil {
			return
		}
		if line == "" {
			continue
		}

		result := dispatch.Dispatch(ctx, s.rt, sess, line)
		if result.Kind == dispatch.ResultTableWrite {
			s.streamTableWrite(ctx, reader, conn, result)
			continue
		}
		if _, err := conn.Write([]byte(result.Render())); err != nil {
			return
		}
		s.cfg.Metrics.ObserveDispatch(resultLabel(result))
	}
}

// streamTableWrite feeds every subsequent line into w until a blank
// terminator line, then closes it and writes the deferred response
// (§4.9): "OK\n" on success, "ERR message\n" on failure.
func (s *Server) streamTableWrite(ctx context.Context, reader *bufio.Reader, conn net.Conn, result dispatch.Result) {
	w := result.Writer
	var writeErr error
	for {
		line, err := readLine(reader)
		if err != nil {
			w.Abort()
			return
		}
		if line == "" {
			break
		}
		if writeErr == nil {
			writeErr = w.WriteLine(line)
		}
	}

	if writeErr != nil {
		w.Abort()
		conn.Write([]byte("ERR " + writeErr.Error() + "\n"))
		s.cfg.Metrics.ObserveDispatch("err")
		return
	}
	if err := w.Close(ctx); err != nil {
		conn.Write([]byte("ERR " + err.Error() + "\n"))
		s.cfg.Metrics.ObserveDispatch("err")
		return
	}
	conn.Write([]byte("OK\n"))
	s.cfg.Metrics.ObserveDispatch("ok")
	s.cfg.Metrics.ObserveTableWrite()
}

func resultLabel(r dispatch.Result) string {
	switch r.Kind {
	case dispatch.ResultErr:
		return "err"
	default:
		return "ok"
	}
}

// readLine reads one newline-terminated command, stripping a trailing
// \r\n or \n.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
