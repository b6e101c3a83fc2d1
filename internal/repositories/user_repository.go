package repositories

import (
	"userapi/internal/models"
)

// UserRepository defines the interface for user data access.
//
// "Not found" is not an error: GetByID, Update and Delete return (nil, nil)
// for an unknown identifier, and callers decide how to respond. The error
// return is reserved for backend failures.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id int) (*models.User, error)
	Create(fields models.UserFields) (*models.User, error)
	Update(id int, update models.UserUpdate) (*models.User, error)
	Delete(id int) (*models.User, error)
}
