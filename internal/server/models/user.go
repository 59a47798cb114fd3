package models

import "database/sql"

// User mirrors the users table. Username is immutable after creation.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Phone        string
	Name         string
	Image        sql.NullString
	Theme        Theme
}

// UserProfile is the mutable, user-visible part of a User.
type UserProfile struct {
	Username string
	Image    sql.NullString
	Theme    Theme
}

// Admin mirrors the admin table. Admins are seeded out of band.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	Image        sql.NullString
	Theme        Theme
}

// AdminProfile carries the password hash so the self-service password
// change can re-verify the current password.
type AdminProfile struct {
	Username     string
	PasswordHash string
	Image        sql.NullString
	Theme        Theme
}
