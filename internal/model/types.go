// Package model defines shared data structures.
package model

import "time"

// Config defines page settings.
type Config struct {
	ContentPath   string
	ReducedMotion bool
	// Negative typing values defer to the content file.
	TypingSpeedMs int
	TypingDelayMs int
	NoStore       bool
}

// InboxConfig defines filters for the stored message list.
type InboxConfig struct {
	Limit int
	Since *time.Time
}

// Message is a contact form submission.
type Message struct {
	ID        int64
	Name      string `validate:"required"`
	Email     string `validate:"required,email"`
	Body      string `validate:"required"`
	CreatedAt time.Time
}
