// Package cart owns the in-memory session carts. Each session holds two
// independent carts, one priced per garment and one priced per bag; an
// order type flag selects which one a checkout acts on.
package cart

import (
	"sync"

	"kleanly/internal/domain"
)

type session struct {
	perItem domain.Cart
	perBag  domain.Cart
}

func (s *session) cart(typ domain.OrderType) *domain.Cart {
	if typ == domain.OrderTypePerBag {
		return &s.perBag
	}
	return &s.perItem
}

// Manager keys carts by session id. All operations are total: adding
// is unbounded, removing an absent line is a no-op, and nothing here
// performs I/O.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*session)}
}

func (m *Manager) session(id string) *session {
	s, ok := m.sessions[id]
	if !ok {
		s = &session{}
		m.sessions[id] = s
	}
	return s
}

// Add increments the quantity for the given entry by one, inserting a
// new line at quantity 1 when absent.
func (m *Manager) Add(sessionID string, typ domain.OrderType, itemID, name string, price int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.session(sessionID).cart(typ)
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, domain.CartLine{ItemID: itemID, Name: name, Price: price, Quantity: 1})
}

// Remove decrements the quantity for the given item by one, deleting
// the line when it reaches zero. Unknown ids are ignored.
func (m *Manager) Remove(sessionID string, typ domain.OrderType, itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.session(sessionID).cart(typ)
	for i := range c.Lines {
		if c.Lines[i].ItemID != itemID {
			continue
		}
		if c.Lines[i].Quantity > 1 {
			c.Lines[i].Quantity--
			return
		}
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return
	}
}

// Get returns a copy of the active cart for the session.
func (m *Manager) Get(sessionID string, typ domain.OrderType) domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.session(sessionID).cart(typ)
	out := domain.Cart{Lines: make([]domain.CartLine, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return out
}

// Clear empties the active cart for the session, leaving the other
// order type's cart untouched.
func (m *Manager) Clear(sessionID string, typ domain.OrderType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.session(sessionID).cart(typ)
	c.Lines = nil
}

// Total is the sum of price*quantity for the active cart.
func (m *Manager) Total(sessionID string, typ domain.OrderType) int64 {
	return m.Get(sessionID, typ).Total()
}

// Count is the sum of quantities for the active cart.
func (m *Manager) Count(sessionID string, typ domain.OrderType) int {
	return m.Get(sessionID, typ).Count()
}
