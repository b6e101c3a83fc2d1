package repositories

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"userapi/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository. Identifier
// assignment stays in the repository rather than relying on database
// autoincrement, so identifiers are never reused after a delete regardless
// of the backing driver.
type GORMUserRepository struct {
	db     *gorm.DB
	nextID int
	mu     sync.Mutex
}

// NewGORMUserRepository creates a new GORMUserRepository, resuming the
// identifier counter after the highest ID already in the table.
func NewGORMUserRepository(db *gorm.DB) (*GORMUserRepository, error) {
	var maxID int64
	if err := db.Model(&models.User{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return nil, fmt.Errorf("failed to read max user ID: %w", err)
	}
	return &GORMUserRepository{db: db, nextID: int(maxID) + 1}, nil
}

// GetAll returns all users.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns a user by its ID, or nil if the ID is unknown.
func (r *GORMUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// Create stores a new user under the next identifier and stamps both
// timestamps with the current time.
func (r *GORMUserRepository) Create(fields models.UserFields) (*models.User, error) {
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
	if err := r.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	r.nextID++
	return &user, nil
}

// Update applies the non-nil fields of the partial update and refreshes
// UpdatedAt. It returns nil if the ID is unknown.
func (r *GORMUserRepository) Update(id int, update models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %d for update: %w", id, err)
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

	if err := r.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return &user, nil
}

// Delete removes and returns the user, or nil if the ID is unknown.
func (r *GORMUserRepository) Delete(id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %d for deletion: %w", id, err)
	}
	if err := r.db.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return &user, nil
}
