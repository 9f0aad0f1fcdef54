// Package profile keeps the demo user's editable profile in memory.
package profile

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrInvalidName  = errors.New("name must not be empty")
	ErrInvalidEmail = errors.New("email address is not valid")
)

type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinDate string `json:"join_date"`
	Avatar   string `json:"avatar"`
}

// Store holds a single user profile and serializes edits.
type Store struct {
	mu   sync.RWMutex
	user User
}

// NewStore seeds the store with the dashboard's demo user.
func NewStore() *Store {
	return &Store{user: User{
		Name:     "John Doe",
		Email:    "john.doe@example.com",
		JoinDate: "January 2025",
		Avatar:   "👤",
	}}
}

func (s *Store) Get() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Update replaces the editable fields. A failed validation leaves the stored
// profile unchanged.
func (s *Store) Update(name, email string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return User{}, ErrInvalidName
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return User{}, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Name = name
	s.user.Email = email
	return s.user, nil
}
