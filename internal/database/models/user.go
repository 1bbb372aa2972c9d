package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultAvatar is assigned to accounts created without a profile picture.
const DefaultAvatar = "https://i.ibb.co/4pDNDk1/avatar.png"

// User represents a marketplace account. Password always holds the bcrypt
// hash, never the plaintext, and is excluded from JSON serialization.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Avatar    string             `bson:"avatar" json:"avatar"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Profile is the public projection of a user returned by the API.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// Profile returns the public fields of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}
