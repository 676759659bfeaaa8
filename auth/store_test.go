package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rpupo63/blog-auth-backend/models"
)

// memoryUsers enforces unique email and username in Add the way the
// database indexes do. blindChecks makes the Exists lookups always miss so
// tests can reach the insert path concurrently.
type memoryUsers struct {
	mu          sync.Mutex
	byID        map[uuid.UUID]models.User
	blindChecks bool
	addErr      error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[uuid.UUID]models.User{}}
}

func (m *memoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blindChecks {
		return false, nil
	}
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUsers) ExistsByUsername(_ context.Context, username string, exclude uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blindChecks {
		return false, nil
	}
	for _, u := range m.byID {
		if u.Username == username && u.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUsers) Add(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	for _, u := range m.byID {
		if u.Email == user.Email || u.Username == user.Username {
			return fmt.Errorf("user: %w", errs.ErrUniqueConstraintViolation)
		}
	}
	user.ID = uuid.New()
	m.byID[user.ID] = *user
	return nil
}

func (m *memoryUsers) FindByEmailWithPassword(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user: %w", errs.ErrNotFound)
}

func (m *memoryUsers) FindByIDWithPassword(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", errs.ErrNotFound)
	}
	return &u, nil
}

func (m *memoryUsers) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("user: %w", errs.ErrNotFound)
	}
	u.Password = hash
	m.byID[id] = u
	return nil
}

func (m *memoryUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
