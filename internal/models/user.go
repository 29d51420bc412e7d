package models

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	UserID int64  `bun:"user_id,pk,autoincrement" json:"user_id"`
	Name   string `bun:"name,notnull" json:"name"`
	Email  string `bun:"email,notnull" json:"email"`
}

// CreateUserRequest is the JSON body of POST /api/create-user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
