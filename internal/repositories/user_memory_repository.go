package repositories

import (
	"sync"
	"time"

	"userapi/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// A single mutex guards the record map and the identifier counter; the
// counter only ever moves forward, so identifiers are never reused after
// a delete.
type MemoryUserRepository struct {
	users  map[int]models.User
	nextID int
	mu     sync.RWMutex
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:  make(map[int]models.User),
		nextID: 1,
	}
}

// GetAll returns all users. Order is not guaranteed.
func (r *MemoryUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

// GetByID returns a user by its ID, or nil if the ID is unknown.
func (r *MemoryUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Create stores a new user under the next identifier and stamps both
// timestamps with the current time.
func (r *MemoryUserRepository) Create(fields models.UserFields) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user := models.User{
		ID:        r.nextID,
		Name:      fields.Name,
		Email:     fields.Email,
		Age:       fields.Age,
		Position:  fields.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.users[user.ID] = user
	r.nextID++
	return &user, nil
}

// Update applies the non-nil fields of the partial update and refreshes
// UpdatedAt. It returns nil if the ID is unknown.
func (r *MemoryUserRepository) Update(id int, update models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Position != nil {
		user.Position = *update.Position
	}
	user.UpdatedAt = time.Now()

	r.users[id] = user
	return &user, nil
}

// Delete removes and returns the user, or nil if the ID is unknown. The
// identifier counter is untouched, so the ID will not be handed out again.
func (r *MemoryUserRepository) Delete(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	delete(r.users, id)
	return &user, nil
}
