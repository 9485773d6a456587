package models

import (
	"time"
)

// UserStatus is the lifecycle state of an account. Only ACTIVE is created today.
type UserStatus string

const (
	UserStatusActive UserStatus = "ACTIVE"
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserInput carries a validated registration request into the service layer.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}
