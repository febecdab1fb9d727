package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordHashCost is the bcrypt cost used when hashing passwords.
var PasswordHashCost = bcrypt.DefaultCost

// User represents the user model in the database
type User struct {
	Base
	Name         string `gorm:"not null" json:"nome"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Password     string `gorm:"-" json:"-"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// BeforeSave hashes Password into PasswordHash whenever a plaintext password
// has been set, then clears the plaintext.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), PasswordHashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Password = ""
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
