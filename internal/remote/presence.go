package remote

import (
	"maps"
	"sync"
)

// Presence tracks where each connected client last moved its pointer.
type Presence struct {
	mu        sync.RWMutex
	positions map[string]PresencePayload // clientID -> position
}

func NewPresence() *Presence {
	return &Presence{
		positions: make(map[string]PresencePayload),
	}
}

func (p *Presence) Update(pos PresencePayload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positions[pos.ClientID] = pos
}

func (p *Presence) Remove(clientID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.positions, clientID)
}

func (p *Presence) GetAll() map[string]PresencePayload {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.positions)
}
