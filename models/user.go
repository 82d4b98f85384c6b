package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the side of the marketplace a user has chosen.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User is a document of the users collection.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	GoogleID     string             `bson:"googleId,omitempty" json:"-"`
	RefreshToken string             `bson:"refreshToken,omitempty" json:"-"` // encrypted
	Role         Role               `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SellerSummary is the public projection of a seller listed to buyers.
type SellerSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
}

// UserStatus answers "who am I and where should the frontend send me".
type UserStatus struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     *Role  `json:"role"`
	HasRole  bool   `json:"hasRole"`
	Redirect string `json:"redirect"`
}

// GoogleProfile holds the fields of the OpenID profile used at sign-in.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
