package net

import (
	"net"
	"sync/atomic"

	"go.uber.org/zap"
)

// Server accepts TCP console connections and creates Sessions.
// New sessions are handed to the game loop via a channel.
type Server struct {
	listener    net.Listener
	nextID      atomic.Uint64
	newConns    chan *Session
	inSize      int
	outSize     int
	linesPerSec int
	log         *zap.Logger
	closeCh     chan struct{}
}

func NewServer(bindAddr string, inSize, outSize, linesPerSec int, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener:    ln,
		newConns:    make(chan *Session, 16),
		inSize:      inSize,
		outSize:     outSize,
		linesPerSec: linesPerSec,
		log:         log,
		closeCh:     make(chan struct{}),
	}
	return s, nil
}

// AcceptLoop runs in its own goroutine. It accepts connections, starts
// their sessions and pushes them onto the newConns channel.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("console accept failed", zap.Error(err))
			continue
		}

		id := s.nextID.Add(1)
		sess := NewSession(conn, id, s.inSize, s.outSize, s.linesPerSec, s.log)
		sess.Start()

		s.log.Info("console connected", zap.Uint64("session", id), zap.String("ip", sess.IP))

		select {
		case s.newConns <- sess:
		default:
			s.log.Warn("console queue full, rejecting connection")
			sess.Close()
		}
	}
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// Shutdown stops accepting new connections.
func (s *Server) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
