package model

import "time"

// User is an admin-panel account. Accounts are created on registration and
// read on login/verify; there is no update or delete path. The password hash
// never serializes to JSON.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" validate:"omitempty"`
}
