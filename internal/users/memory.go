package users

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
	store map[string]*models.User
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.User)}
}

func (m *MemoryRepository) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		m.seq++
		u.ID = fmt.Sprintf("user_%03d", m.seq)
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.store[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findBy(func(u *models.User) bool { return u.Email == email })
}

func (m *MemoryRepository) FindByIDDocument(ctx context.Context, docType, number string) (*models.User, error) {
	return m.findBy(func(u *models.User) bool {
		return u.IDDocument.Type == docType && u.IDDocument.Number == number
	})
}

func (m *MemoryRepository) FindByDocumentNumber(ctx context.Context, number string) (*models.User, error) {
	return m.findBy(func(u *models.User) bool { return u.IDDocument.Number == number })
}

func (m *MemoryRepository) findBy(match func(*models.User) bool) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.User{}
	for _, u := range m.store {
		if u.IsActive {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) FindAndCount(ctx context.Context, f Filter, offset, limit int) ([]*models.User, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matchField := func(have, want string) bool {
		return want == "" || strings.Contains(strings.ToLower(have), strings.ToLower(want))
	}
	all := []*models.User{}
	for _, u := range m.store {
		if f.ID != "" && u.ID != f.ID {
			continue
		}
		if !matchField(u.FirstName, f.FirstName) || !matchField(u.SecondName, f.SecondName) ||
			!matchField(u.Surname, f.Surname) || !matchField(u.SecondSurname, f.SecondSurname) ||
			!matchField(u.Email, f.Email) || !matchField(u.IDDocument.Number, f.IDNumber) {
			continue
		}
		if f.FullName != "" {
			any := false
			for _, part := range []string{u.FirstName, u.SecondName, u.Surname, u.SecondSurname} {
				if matchField(part, f.FullName) && part != "" {
					any = true
					break
				}
			}
			if !any {
				continue
			}
		}
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Surname < all[j].Surname })
	count := int64(len(all))
	if offset >= len(all) {
		return []*models.User{}, count, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, count, nil
}

func (m *MemoryRepository) Update(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[u.ID]; !ok {
		return fmt.Errorf("user %q not found", u.ID)
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}
