package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/docfolio/backend/internal/models"
)

// MemoryRepositories is an in-memory Repositories used by unit tests.
type MemoryRepositories struct {
	mu       sync.RWMutex
	seq      int
	profiles map[string]*models.Profile
	hirings  map[string]*models.Hiring
	groups   map[string]*models.Group
	services map[string]*models.Service
}

var _ Repositories = (*MemoryRepositories)(nil)

func NewMemoryRepositories() *MemoryRepositories {
	return &MemoryRepositories{
		profiles: make(map[string]*models.Profile),
		hirings:  make(map[string]*models.Hiring),
		groups:   make(map[string]*models.Group),
		services: make(map[string]*models.Service),
	}
}

func (m *MemoryRepositories) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s_%03d", prefix, m.seq)
}

func (m *MemoryRepositories) ProfileByName(ctx context.Context, name string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[name]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepositories) HiringByType(ctx context.Context, hiringType string) (*models.Hiring, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.hirings[hiringType]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepositories) GroupByName(ctx context.Context, name string) (*models.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.groups[name]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepositories) ServicesByNames(ctx context.Context, names []string) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Service{}
	for _, name := range names {
		if s, ok := m.services[name]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *MemoryRepositories) CreateProfile(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = m.nextID("prof")
	}
	cp := *p
	m.profiles[p.Name] = &cp
	return nil
}

func (m *MemoryRepositories) CreateHiring(ctx context.Context, h *models.Hiring) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.ID == "" {
		h.ID = m.nextID("hire")
	}
	cp := *h
	m.hirings[h.Type] = &cp
	return nil
}

func (m *MemoryRepositories) CreateGroup(ctx context.Context, g *models.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == "" {
		g.ID = m.nextID("grp")
	}
	cp := *g
	m.groups[g.Name] = &cp
	return nil
}

func (m *MemoryRepositories) CreateService(ctx context.Context, s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = m.nextID("svc")
	}
	cp := *s
	m.services[s.Name] = &cp
	return nil
}
