package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/shopkart-io/shopkart/internal/common"
)

type entry struct {
	userID    int64
	expiresAt time.Time
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]entry
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tokens: make(map[string]entry)}
}

func (r *InMemoryRepository) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = entry{userID: userID, expiresAt: time.Now().Add(validity)}
	return nil
}

func (r *InMemoryRepository) UserIDByToken(ctx context.Context, token string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tokens[token]
	if !ok || time.Now().After(e.expiresAt) {
		return 0, common.ErrNotFound
	}
	return e.userID, nil
}
