package user

import "time"

type User struct {
	Id           int
	Uid          string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
