package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"userapi/internal/models"
	"userapi/internal/repositories"
)

// Sentinel errors returned by UserService. Handlers translate these into
// HTTP statuses; they never propagate further.
var (
	// ErrNotFound means the identifier is absent from the store.
	ErrNotFound = errors.New("user not found")
	// ErrEmailExists means a create collides with an existing email.
	ErrEmailExists = errors.New("user with this email already exists")
	// ErrEmailExistsOther means an update collides with another user's email.
	ErrEmailExistsOther = errors.New("another user with this email already exists")
)

// EventPublisher publishes user lifecycle events. A nil publisher disables
// event publication entirely.
type EventPublisher interface {
	PublishUserEvent(event string, user models.User) error
}

// UserService handles business logic for user records: email uniqueness,
// search, and event publication on top of the repository.
type UserService struct {
	repo      repositories.UserRepository
	publisher EventPublisher
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(repo repositories.UserRepository, publisher EventPublisher) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// GetUserByID retrieves a single user, or nil if the ID is unknown.
func (s *UserService) GetUserByID(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

// CreateUser creates a new user from an already-validated payload. The
// email uniqueness check is case-insensitive and happens here, above the
// repository, so the store stays a plain persistence primitive.
func (s *UserService) CreateUser(p models.UserPayload) (*models.User, error) {
	taken, err := s.emailTaken(p.Email.Value(), 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailExists
	}

	user, err := s.repo.Create(models.UserFields{
		Name:     p.Name.Value(),
		Email:    p.Email.Value(),
		Age:      p.Age.Value(),
		Position: p.Position.Value(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publish("user.created", *user)
	return user, nil
}

// UpdateUser applies the fields present in the payload to an existing user.
// It returns ErrNotFound for an unknown ID and ErrEmailExistsOther when the
// new email belongs to a different user (a self-match is allowed).
func (s *UserService) UpdateUser(id int, p models.UserPayload) (*models.User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if p.Email.Present() {
		taken, err := s.emailTaken(p.Email.Value(), id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExistsOther
		}
	}

	user, err := s.repo.Update(id, toUpdate(p))
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	s.publish("user.updated", *user)
	return user, nil
}

// DeleteUser removes a user and returns the deleted record, or ErrNotFound
// if the ID is unknown. Deleting the same ID twice fails the same way.
func (s *UserService) DeleteUser(id int) (*models.User, error) {
	user, err := s.repo.Delete(id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	s.publish("user.deleted", *user)
	return user, nil
}

// SearchUsers returns the users whose name, email or position contains the
// query, case-insensitively.
func (s *UserService) SearchUsers(query string) ([]models.User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]models.User, 0)
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Position), q) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

// emailTaken reports whether any user other than excludeID already uses the
// email, ignoring case.
func (s *UserService) emailTaken(email string, excludeID int) (bool, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// publish sends a lifecycle event if a publisher is configured. Publish
// failures are logged and never fail the request.
func (s *UserService) publish(event string, user models.User) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishUserEvent(event, user); err != nil {
		log.Printf("Warning: failed to publish %s event for user %d: %v", event, user.ID, err)
	}
}

func toUpdate(p models.UserPayload) models.UserUpdate {
	var update models.UserUpdate
	if p.Name.Present() {
		name := p.Name.Value()
		update.Name = &name
	}
	if p.Email.Present() {
		email := p.Email.Value()
		update.Email = &email
	}
	if p.Age.Present() {
		age := p.Age.Value()
		update.Age = &age
	}
	if p.Position.Present() {
		position := p.Position.Value()
		update.Position = &position
	}
	return update
}
