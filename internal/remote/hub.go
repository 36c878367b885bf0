package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/drawtools/internal/document"
	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/store"
	"github.com/inamate/drawtools/internal/typeid"
)

const saveTimeout = 10 * time.Second

// Hub owns the open editing sessions and the clients attached to them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session // sessionID -> session

	store   store.Store
	opts    engine.Options
	metrics *Metrics

	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}

	// autosaves started when a session's last client left
	saves sync.WaitGroup
}

func NewHub(st store.Store, opts engine.Options, metrics *Metrics) *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		store:      st,
		opts:       opts,
		metrics:    metrics,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.stop:
			h.saves.Wait()
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			h.SaveAll(ctx)
			cancel()
			return
		}
	}
}

// Stop ends Run after saving every dirty session. It must only be called
// once, while Run is active.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// Register attaches client to its session. It reports false once the hub
// has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Create opens a session. An empty drawingID starts a new drawing;
// otherwise the latest snapshot of that drawing is loaded.
func (h *Hub) Create(ctx context.Context, drawingID string) (*Session, error) {
	editor := engine.NewEditor(h.opts)

	if drawingID == "" {
		drawingID = typeid.NewDrawingID()
	} else {
		snap, err := h.store.Latest(ctx, drawingID)
		if err != nil {
			return nil, fmt.Errorf("load drawing %s: %w", drawingID, err)
		}
		rec, err := document.Decode(snap.Document, document.FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("load drawing %s: %w", drawingID, err)
		}
		if err := editor.Load(rec); err != nil {
			return nil, fmt.Errorf("load drawing %s: %w", drawingID, err)
		}
	}

	s := newSession(typeid.NewSessionID(), drawingID, editor)

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	h.metrics.sessions.Inc()

	slog.Info("session opened", "session", s.ID, "drawing", drawingID)
	return s, nil
}

func (h *Hub) Get(sessionID string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[sessionID]
	return s, ok
}

// Save stores a new snapshot of the session's drawing.
func (h *Hub) Save(ctx context.Context, s *Session) (*store.Snapshot, error) {
	doc, err := s.Document()
	if err != nil {
		h.metrics.saves.WithLabelValues(status(err)).Inc()
		return nil, fmt.Errorf("save session %s: %w", s.ID, err)
	}

	snap, err := h.store.Save(ctx, s.DrawingID, doc)
	h.metrics.saves.WithLabelValues(status(err)).Inc()
	if err != nil {
		s.MarkDirty()
		return nil, fmt.Errorf("save session %s: %w", s.ID, err)
	}

	slog.Info("drawing saved", "session", s.ID, "drawing", s.DrawingID, "version", snap.Version)
	h.broadcastState(s)
	return snap, nil
}

// SaveAll saves every session with unsaved changes.
func (h *Hub) SaveAll(ctx context.Context) {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	for _, s := range sessions {
		if !s.Dirty() {
			continue
		}
		if _, err := h.Save(ctx, s); err != nil {
			slog.Error("save on shutdown", "error", err, "session", s.ID)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	s := client.session

	h.mu.Lock()
	s.clients[client.ClientID] = client
	h.mu.Unlock()
	h.metrics.clients.Inc()

	welcome, _ := newMessage(TypeWelcome, WelcomePayload{
		SessionID: s.ID,
		DrawingID: s.DrawingID,
		ClientID:  client.ClientID,
	})
	h.sendTo(client, welcome)

	for _, pos := range s.presence.GetAll() {
		msg, _ := newMessage(TypePresenceUpdate, pos)
		h.sendTo(client, msg)
	}

	if msg, err := s.RenderMessage(); err == nil {
		h.sendTo(client, msg)
	}

	slog.Info("client joined", "client", client.ClientID, "session", s.ID)
}

func (h *Hub) removeClient(client *Client) {
	s := client.session

	h.mu.Lock()
	if _, ok := s.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(s.clients, client.ClientID)
	close(client.send)
	empty := len(s.clients) == 0
	h.mu.Unlock()
	h.metrics.clients.Dec()

	s.presence.Remove(client.ClientID)
	leave, _ := newMessage(TypePresenceLeave, PresenceLeavePayload{ClientID: client.ClientID})
	h.broadcast(s, leave, "")

	slog.Info("client left", "client", client.ClientID, "session", s.ID)

	if empty && s.Dirty() {
		// off the Run loop so a slow store does not hold up other sessions
		h.saves.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			if _, err := h.Save(ctx, s); err != nil {
				slog.Error("autosave", "error", err, "session", s.ID)
			}
		})
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	s := sender.session

	redraw, err := s.Handle(msg)
	h.metrics.messages.WithLabelValues(msg.Type, status(err)).Inc()
	if err != nil {
		slog.Warn("message rejected", "error", err, "type", msg.Type, "client", sender.ClientID)
		h.sendTo(sender, errorMessage(err))
		return
	}

	if msg.Type == TypePointerMove {
		h.updatePresence(sender, msg)
	}
	if redraw {
		h.broadcastState(s)
	}
}

func (h *Hub) updatePresence(sender *Client, msg *Message) {
	var p PointerPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return
	}
	pos := PresencePayload{ClientID: sender.ClientID, X: p.X, Y: p.Y}
	sender.session.presence.Update(pos)

	out, err := newMessage(TypePresenceUpdate, pos)
	if err != nil {
		return
	}
	h.broadcast(sender.session, out, sender.ClientID)
}

// broadcastState sends a fresh render to every client of s.
func (h *Hub) broadcastState(s *Session) {
	msg, err := s.RenderMessage()
	if err != nil {
		slog.Error("render message", "error", err, "session", s.ID)
		return
	}
	h.broadcast(s, msg, "")
}

func (h *Hub) sendTo(c *Client, msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := c.session.clients[c.ClientID]; ok {
		c.Send(msg)
	}
}

func (h *Hub) broadcast(s *Session, msg *Message, excludeClientID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range s.clients {
		if c.ClientID != excludeClientID {
			c.Send(msg)
		}
	}
}
