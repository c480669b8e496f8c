package requisite

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/docfolio/backend/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	seq   int
	store map[string]*models.Requisite
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Requisite)}
}

func (m *MemoryRepository) Create(ctx context.Context, req *models.Requisite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.ID == "" {
		m.seq++
		req.ID = fmt.Sprintf("req_%03d", m.seq)
	}
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	cp := *req
	m.store[req.ID] = &cp
	return nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*models.Requisite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.store[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepository) FindByName(ctx context.Context, name string) (*models.Requisite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.store {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Requisite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Requisite{}
	for _, id := range ids {
		if r, ok := m.store[id]; ok {
			found := false
			for _, have := range out {
				if have.ID == id {
					found = true
					break
				}
			}
			if !found {
				out = append(out, *r)
			}
		}
	}
	return out, nil
}

func (m *MemoryRepository) FindAndCount(ctx context.Context, name string, offset, limit int) ([]models.Requisite, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := []models.Requisite{}
	for _, r := range m.store {
		if name == "" || strings.Contains(strings.ToLower(r.Name), strings.ToLower(name)) {
			all = append(all, *r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	count := int64(len(all))
	if offset >= len(all) {
		return []models.Requisite{}, count, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, count, nil
}

func (m *MemoryRepository) Update(ctx context.Context, req *models.Requisite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[req.ID]; !ok {
		return fmt.Errorf("requisite %q not found", req.ID)
	}
	req.UpdatedAt = time.Now().UTC()
	cp := *req
	m.store[req.ID] = &cp
	return nil
}
