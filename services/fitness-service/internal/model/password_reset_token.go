package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PasswordResetToken is the single outstanding reset secret of a user.
// The store removes it once created_at is older than the reset window.
type PasswordResetToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Token     string        `bson:"token"`
	ExpiresAt time.Time     `bson:"expires_at"`
	CreatedAt time.Time     `bson:"created_at"`
}

// Active reports whether the token is still usable at now.
func (t *PasswordResetToken) Active(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
