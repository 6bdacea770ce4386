package entity

import "time"

type User struct {
	ID           int64
	Email        string
	MobileNumber string
	FullName     string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type NewUser struct {
	ID           int64
	Email        string
	MobileNumber string
	FullName     string
	Status       UserStatus
}

type UserLoginInfo struct {
	ID       int64
	Email    string
	Status   UserStatus
	Password string // hashed
}
