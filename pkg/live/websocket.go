package live

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/command"
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied to the client.
		s.logger.Warn("websocket upgrade failed", "error", errors.New("E060").Wrap(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, s.config.SendBuffer),
		done: make(chan struct{}),
	}
	if !s.addClient(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}
	s.logger.Info("websocket connected", "client", c.id, "remote", r.RemoteAddr)

	go s.writeLoop(c)
	s.reply(c, Message{Type: TypeDocument, HTML: s.HTML()})

	s.readLoop(r.Context(), c)
	<-c.done
	s.logger.Info("websocket disconnected", "client", c.id, "remote", r.RemoteAddr)
}

// readLoop applies inbound commands until the socket fails or the client
// is removed.
func (s *Server) readLoop(ctx context.Context, c *client) {
	defer s.removeClient(c)

	for {
		c.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("websocket read error", "client", c.id, "error", err)
			}
			return
		}

		cmd, err := command.Decode(bytes.NewReader(msg))
		if err != nil {
			s.reply(c, Message{Type: TypeError, Error: asMdom(err, "E061")})
			continue
		}
		res, err := s.Apply(ctx, cmd)
		if err != nil {
			s.reply(c, Message{Type: TypeError, Error: asMdom(err, "E041")})
			continue
		}
		s.reply(c, Message{Type: TypeResult, Result: &res})
	}
}

// writeLoop drains c.send, then closes the connection.
func (s *Server) writeLoop(c *client) {
	defer close(c.done)
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.logger.Debug("websocket write failed", "client", c.id, "error", err)
			s.removeClient(c)
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}

func (s *Server) addClient(c *client) bool {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c] = struct{}{}
	s.metrics.clients.Inc()
	return true
}

func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	s.removeLocked(c)
	s.clientsMu.Unlock()
}

// removeLocked closes c.send once; clientsMu must be held.
func (s *Server) removeLocked(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	s.metrics.clients.Dec()
	c.once.Do(func() { close(c.send) })
}

func (s *Server) broadcast(m Message) {
	data := m.encode()
	s.metrics.broadcasts.WithLabelValues(m.Type).Inc()

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Warn("dropping slow websocket client")
			s.metrics.dropped.Inc()
			s.removeLocked(c)
		}
	}
}

// reply queues m for c alone.
func (s *Server) reply(c *client, m Message) {
	data := m.encode()

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		s.metrics.dropped.Inc()
		s.removeLocked(c)
	}
}
