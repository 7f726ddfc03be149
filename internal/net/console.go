package net

import "go.uber.org/zap"

// Console tracks live console sessions on the game loop side.
type Console struct {
	srv        *Server
	sessions   map[uint64]*Session
	maxPerTick int
	log        *zap.Logger
}

func NewConsole(srv *Server, maxPerTick int, log *zap.Logger) *Console {
	if maxPerTick <= 0 {
		maxPerTick = 8
	}
	return &Console{srv: srv, sessions: make(map[uint64]*Session), maxPerTick: maxPerTick, log: log}
}

// Pump adopts new sessions, runs up to maxPerTick queued lines per session
// through handle and flushes the replies. Game loop only.
func (c *Console) Pump(handle func(line string) []string) {
adopt:
	for {
		select {
		case sess := <-c.srv.NewSessions():
			c.sessions[sess.ID] = sess
		default:
			break adopt
		}
	}

	for id, sess := range c.sessions {
		if sess.IsClosed() {
			delete(c.sessions, id)
			c.log.Info("console disconnected", zap.Uint64("session", id))
			continue
		}
	drain:
		for i := 0; i < c.maxPerTick; i++ {
			select {
			case line := <-sess.InQueue:
				for _, out := range handle(line) {
					sess.Send(out)
				}
			default:
				break drain
			}
		}
		sess.FlushOutput()
	}
}

// Broadcast queues line for every session; it goes out with the next Pump.
func (c *Console) Broadcast(line string) {
	for _, sess := range c.sessions {
		sess.Send(line)
	}
}

// Len returns the number of live sessions.
func (c *Console) Len() int { return len(c.sessions) }

// Close disconnects every session and stops the listener.
func (c *Console) Close() {
	c.srv.Shutdown()
	for id, sess := range c.sessions {
		sess.Close()
		delete(c.sessions, id)
	}
}
