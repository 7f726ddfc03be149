package net

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// maxLineBytes bounds one console input line.
const maxLineBytes = 1024

const writeTimeout = 10 * time.Second

// Session is one console connection. Network I/O runs in dedicated
// goroutines; game state is touched only from the game loop.
type Session struct {
	ID   uint64
	conn net.Conn

	InQueue  chan string // game loop reads command lines from here
	OutQueue chan string // writer goroutine reads from here

	IP string

	outBuf []string // buffered replies, flushed by the game loop

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	// Per-second line rate limiter (readLoop goroutine only)
	linesPerSec int
	lineCount   int
	resetAt     int64

	log *zap.Logger
}

func NewSession(conn net.Conn, id uint64, inSize, outSize, linesPerSec int, log *zap.Logger) *Session {
	return &Session{
		ID:          id,
		conn:        conn,
		InQueue:     make(chan string, inSize),
		OutQueue:    make(chan string, outSize),
		IP:          conn.RemoteAddr().String(),
		closeCh:     make(chan struct{}),
		linesPerSec: linesPerSec,
		log:         log.With(zap.Uint64("session", id)),
	}
}

// Start greets the client and launches the reader and writer goroutines.
func (s *Session) Start() {
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := s.conn.Write([]byte("gelopine console ready, /help for commands\n")); err != nil {
		s.log.Error("console greeting failed", zap.Error(err))
		s.Close()
		return
	}
	go s.readLoop()
	go s.writeLoop()
}

// Send buffers a reply. Game loop only.
func (s *Session) Send(line string) {
	if s.closed.Load() {
		return
	}
	s.outBuf = append(s.outBuf, line)
}

// FlushOutput hands buffered replies to the writer. A client that does not
// keep up is disconnected.
func (s *Session) FlushOutput() {
	for _, line := range s.outBuf {
		select {
		case s.OutQueue <- line:
		default:
			s.log.Warn("console output queue full, disconnecting")
			s.Close()
			s.outBuf = s.outBuf[:0]
			return
		}
	}
	s.outBuf = s.outBuf[:0]
}

func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// readLoop pushes each non-empty input line onto InQueue.
func (s *Session) readLoop() {
	defer s.Close()

	sc := bufio.NewScanner(s.conn)
	sc.Buffer(make([]byte, 0, 256), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		if s.linesPerSec > 0 {
			now := time.Now().Unix()
			if now != s.resetAt {
				s.lineCount = 0
				s.resetAt = now
			}
			s.lineCount++
			if s.lineCount > s.linesPerSec {
				s.log.Warn("console line rate exceeded, disconnecting", zap.Int("lps", s.lineCount))
				return
			}
		}

		select {
		case s.InQueue <- line:
		case <-s.closeCh:
			return
		}
	}
	if err := sc.Err(); err != nil && !s.closed.Load() {
		s.log.Debug("console read error", zap.Error(err))
	}
}

func (s *Session) writeLoop() {
	defer s.Close()

	for {
		select {
		case line := <-s.OutQueue:
			s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if _, err := s.conn.Write([]byte(line + "\n")); err != nil {
				if !s.closed.Load() {
					s.log.Debug("console write error", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
