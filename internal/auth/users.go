// Package auth keeps the student directory and issues the bearer tokens the
// API accepts.
package auth

import (
	"fmt"
	"strings"
	"sync"

	"quickbite/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

// User is a registered student or the administrator.
type User struct {
	StudentID    string `json:"student_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
	passwordHash []byte
}

// Registration is the sign-up form of a student.
type Registration struct {
	StudentID       string `json:"student_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate checks that every field is filled in and the passwords agree.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.StudentID) == "" || strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Email) == "" || r.Password == "" || r.ConfirmPassword == "" {
		return fmt.Errorf("%w: please fill in all fields", apperr.ErrValidation)
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", apperr.ErrValidation)
	}
	if len(r.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperr.ErrValidation, MinPasswordLength)
	}
	return nil
}

// Directory holds the registered users of the process.
type Directory struct {
	mu    sync.RWMutex
	users map[string]*User
	cost  int
}

// NewDirectory creates an empty directory hashing passwords at the given
// bcrypt cost. A cost outside bcrypt's range falls back to the default.
func NewDirectory(cost int) *Directory {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Directory{
		users: make(map[string]*User),
		cost:  cost,
	}
}

// Register adds a student. A taken student id fails with apperr.ErrConflict.
func (d *Directory) Register(r Registration) (*User, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return d.add(strings.TrimSpace(r.StudentID), strings.TrimSpace(r.Name), strings.TrimSpace(r.Email), r.Password, false)
}

// SeedAdmin creates the administrator account.
func (d *Directory) SeedAdmin(studentID, name, email, password string) (*User, error) {
	return d.add(studentID, name, email, password, true)
}

func (d *Directory) add(studentID, name, email, password string, admin bool) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.users[studentID]; exists {
		return nil, fmt.Errorf("%w: student id %s already exists", apperr.ErrConflict, studentID)
	}
	u := &User{
		StudentID:    studentID,
		Name:         name,
		Email:        email,
		IsAdmin:      admin,
		passwordHash: hash,
	}
	d.users[studentID] = u
	out := *u
	return &out, nil
}

// Authenticate checks a student id and password. Unknown ids and wrong
// passwords fail the same way.
func (d *Directory) Authenticate(studentID, password string) (*User, error) {
	d.mu.RLock()
	u, ok := d.users[studentID]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: invalid student id or password", apperr.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid student id or password", apperr.ErrUnauthorized)
	}
	out := *u
	return &out, nil
}

// Lookup returns the user with the given id.
func (d *Directory) Lookup(studentID string) (*User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[studentID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, studentID)
	}
	out := *u
	return &out, nil
}
