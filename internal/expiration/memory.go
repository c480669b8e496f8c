package expiration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/docfolio/backend/internal/models"
)

// MemoryLogRepository is an in-memory LogRepository used by unit tests.
type MemoryLogRepository struct {
	mu   sync.RWMutex
	seq  int
	logs []models.ExpirationLog
}

var _ LogRepository = (*MemoryLogRepository)(nil)

func NewMemoryLogRepository() *MemoryLogRepository {
	return &MemoryLogRepository{}
}

func (m *MemoryLogRepository) Create(ctx context.Context, log *models.ExpirationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if log.ID == "" {
		m.seq++
		log.ID = fmt.Sprintf("log_%03d", m.seq)
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *MemoryLogRepository) FindByUser(ctx context.Context, userID string) ([]models.ExpirationLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.ExpirationLog{}
	for _, l := range m.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// All returns every stored log; test helper.
func (m *MemoryLogRepository) All() []models.ExpirationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ExpirationLog, len(m.logs))
	copy(out, m.logs)
	return out
}
