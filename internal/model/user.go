package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the account upserted from the identity provider's profile on login.
// Provider plus Subject uniquely identify the external account.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Provider  string             `bson:"provider" json:"provider"`
	Subject   string             `bson:"subject" json:"-"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Picture   string             `bson:"picture,omitempty" json:"picture,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// SessionUser is the user payload embedded in a session. ID is copied from
// the session token's subject claim.
type SessionUser struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Session is the object returned to authenticated clients.
type Session struct {
	User    SessionUser `json:"user"`
	Expires time.Time   `json:"expires"`
}
