package payment

import (
	"sync"

	"github.com/google/uuid"

	"kleanly/internal/domain"
)

// Registry tracks live payment flows by id. One flow exists per
// checkout attempt; finished or abandoned flows are removed explicitly.
type Registry struct {
	mu    sync.Mutex
	cfg   Config
	flows map[string]*Flow
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg, flows: make(map[string]*Flow)}
}

// Create starts a new flow at the select step.
func (r *Registry) Create(amount int64, complete CompleteFunc) *Flow {
	f := newFlow(uuid.NewString(), amount, r.cfg, complete)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[f.id] = f
	return f
}

// Get looks up a live flow.
func (r *Registry) Get(id string) (*Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// Remove closes the flow and forgets it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	f, ok := r.flows[id]
	delete(r.flows, id)
	r.mu.Unlock()

	if ok {
		f.Close()
	}
}
