package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleStandard Role = "STANDARD"
	RoleAdmin    Role = "ADMIN"
)

var roleRank = map[Role]int{
	RoleStandard: 0,
	RoleAdmin:    1,
}

// Meets reports whether r grants at least the access level of required.
// Unknown roles rank below Standard.
func (r Role) Meets(required Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		rank = -1
	}
	return rank >= roleRank[required]
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// ResetRequest is the single pending password-reset per user. The token is
// delivered out-of-band and never serialized to clients.
type ResetRequest struct {
	Token   string    `bson:"token" json:"-"`
	Expires time.Time `bson:"expires" json:"-"`
}

type User struct {
	ID                   bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string        `bson:"email" json:"email"`
	FirstName            string        `bson:"firstName" json:"firstName"`
	LastName             string        `bson:"lastName" json:"lastName"`
	Role                 Role          `bson:"role" json:"role"`
	PasswordHash         string        `bson:"passwordHash" json:"-"` // never expose
	PasswordResetRequest *ResetRequest `bson:"passwordResetRequest,omitempty" json:"-"`
	AvatarURL            string        `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt            time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time     `bson:"updatedAt" json:"updatedAt"`
}
