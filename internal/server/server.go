// Package server implements Ember's TCP front end: one listener accepting
// connections, each carrying exactly one request/response exchange,
// dispatched against an engine.Engine.
package server

import (
	"context"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sagararora86/ember/internal/engine"
	"github.com/sagararora86/ember/internal/protocol"
	"github.com/sagararora86/ember/pkg/kvserrors"
)

// Server accepts connections on a listener and dispatches requests
// against an Engine.
type Server struct {
	engine engine.Engine
	log    *zap.SugaredLogger
	ln     net.Listener
	group  *errgroup.Group
}

// New binds addr and returns a Server ready to Serve.
func New(addr string, eng engine.Engine, log *zap.SugaredLogger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, kvserrors.IO(err, "bind listener")
	}
	return &Server{engine: eng, log: log, ln: ln, group: &errgroup.Group{}}, nil
}

// Addr returns the bound address, useful when addr was ":0".
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Serve accepts connections until ctx is done or the listener is closed,
// handling each one in its own goroutine via the internal errgroup so
// Shutdown can wait for in-flight connections to finish.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Infow("server listening", "addr", s.ln.Addr().String())

	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return s.group.Wait()
			default:
				return kvserrors.IO(err, "accept connection")
			}
		}
		s.group.Go(func() error {
			s.handle(conn)
			return nil
		})
	}
}

// Shutdown stops accepting new connections and waits for in-flight ones
// to finish, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.ln.Close()
	done := make(chan error, 1)
	go func() { done <- s.group.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	connID := uuid.New().String()
	log := s.log.With("conn_id", connID, "remote_addr", conn.RemoteAddr().String())

	req, err := protocol.DecodeRequest(conn)
	if err != nil {
		log.Warnw("malformed request", "error", err)
		protocol.EncodeResponse(conn, protocol.UnknownCommandResult())
		return
	}

	log.Infow("request", "op", req.Op, "key", req.Key)
	resp := s.dispatch(req)
	if err := protocol.EncodeResponse(conn, resp); err != nil {
		log.Warnw("failed to write response", "error", err)
	}
}

func (s *Server) dispatch(req protocol.Request) protocol.Response {
	switch req.Op {
	case protocol.OpSet:
		if err := s.engine.Set(req.Key, req.Value); err != nil {
			return protocol.ErrorResult(err)
		}
		return protocol.SetResult(req.Key)

	case protocol.OpGet:
		value, found, err := s.engine.Get(req.Key)
		if err != nil {
			return protocol.ErrorResult(err)
		}
		if !found {
			return protocol.KeyNotFoundResult()
		}
		return protocol.GetResult(value)

	case protocol.OpRemove:
		if err := s.engine.Remove(req.Key); err != nil {
			if kvserrors.IsKeyNotFound(err) {
				return protocol.KeyNotFoundResult()
			}
			return protocol.ErrorResult(err)
		}
		return protocol.RmResult()

	default:
		return protocol.UnknownCommandResult()
	}
}
