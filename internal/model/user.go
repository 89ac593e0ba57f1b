package model

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Ctime        int64  `json:"ctime" db:"ctime"`
}

// UserSkill is a stored profile skill row, denormalized per user.
type UserSkill struct {
	UserID string `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Level  int    `json:"level" db:"level"`
}
