package remote

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second

	// Pointer and edit messages are tiny; properties carry at most a color
	// and a width.
	readLimit  = 16 * 1024
	outboxSize = 256
)

// Client is one websocket connection attached to a session. Outgoing
// messages are queued on send and written by a single goroutine.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	session  *Session
	send     chan []byte
	log      *slog.Logger
	ClientID string
}

func NewClient(hub *Hub, conn *websocket.Conn, session *Session, clientID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		session:  session,
		send:     make(chan []byte, outboxSize),
		log:      slog.With("client", clientID, "session", session.ID),
		ClientID: clientID,
	}
}

// Serve pumps messages in both directions until the peer goes away or ctx
// ends. The client is unregistered from the hub on return.
func (c *Client) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.writeLoop(ctx)
		cancel()
	}()

	err := c.readLoop(ctx)
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
	cancel()
	<-done

	if err != nil && !closedNormally(err) {
		c.log.Debug("connection ended", "error", err)
		c.conn.Close(websocket.StatusInternalError, "")
		return
	}
	c.conn.Close(websocket.StatusNormalClosure, "")
}

func (c *Client) readLoop(ctx context.Context) error {
	c.conn.SetReadLimit(readLimit)
	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			c.log.Warn("ignoring binary frame")
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warn("invalid message", "error", err)
			c.hub.sendTo(c, errorMessage(err))
			continue
		}
		msg.ClientID = c.ClientID
		msg.SessionID = c.session.ID

		c.hub.handleMessage(c, &msg)
	}
}

// writeLoop drains the outbox and keeps the connection alive with pings.
// It returns when the hub closes the outbox or a write fails.
func (c *Client) writeLoop(ctx context.Context) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.write(ctx, func(ctx context.Context) error {
				return c.conn.Write(ctx, websocket.MessageText, data)
			}); err != nil {
				c.log.Debug("write failed", "error", err)
				return
			}
		case <-ping.C:
			if err := c.write(ctx, c.conn.Ping); err != nil {
				c.log.Debug("ping failed", "error", err)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return fn(ctx)
}

// Send queues msg without blocking. When the outbox is full the message is
// dropped; the next render replaces whatever was lost. The caller must hold
// the hub lock.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal message", "error", err, "type", msg.Type)
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("outbox full, dropping message", "type", msg.Type)
	}
}

func closedNormally(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return false
}
