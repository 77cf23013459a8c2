// Package models defines the core data structures for users and tasks.
package models

import (
	"strings"
	"time"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID string `json:"id"`
	// Username is the login name chosen by the user. Unique, immutable.
	Username string `json:"username"`
	// Email is the user's email address. Unique across all users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt digest of the user's password.
	// Never serialized in responses.
	PasswordHash string `json:"-"`
}

// Task represents a single task owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task, assigned by the store.
	ID string `json:"id"`
	// Title is the short task summary. Always non-empty.
	Title string `json:"title"`
	// Description holds optional free-form text.
	Description string `json:"description"`
	// Completed reports whether the task is done.
	Completed bool `json:"completed"`
	// Priority is one of LOW, MEDIUM, HIGH, stored upper-case.
	Priority string `json:"priority"`
	// UserID identifies the owning user. Immutable after creation.
	UserID string `json:"userId"`
	// CreatedAt is set once when the task is created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Priority levels a task may carry.
const (
	// PriorityLow marks a task that can wait.
	PriorityLow = "LOW"
	// PriorityMedium is the default priority for new tasks.
	PriorityMedium = "MEDIUM"
	// PriorityHigh marks an urgent task.
	PriorityHigh = "HIGH"
)

// CanonicalPriority upper-cases the input so LOW/MEDIUM/HIGH compare
// consistently regardless of how the caller spelled them. An empty
// input yields PriorityMedium.
func CanonicalPriority(p string) string {
	if p == "" {
		return PriorityMedium
	}
	return strings.ToUpper(p)
}
