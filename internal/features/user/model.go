package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// MaxLoginAttempts failed password matches lock the account
	MaxLoginAttempts = 5
	// LockDuration is how long a triggered lock lasts
	LockDuration = 2 * time.Hour
)

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	Zip     string `json:"zip,omitempty" bson:"zip,omitempty"`
}

// User is a customer or staff account. Role is a single optional reference;
// Permissions are direct grants unioned with (never subtracted from) the
// role's set.
type User struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Phone    string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address  *Address           `json:"address,omitempty" bson:"address,omitempty"`

	// Commerce profile
	LoyaltyPoints int     `json:"loyalty_points" bson:"loyalty_points"`
	TotalOrders   int     `json:"total_orders" bson:"total_orders"`
	TotalSpent    float64 `json:"total_spent" bson:"total_spent"`

	// Authorization
	IsAdmin     bool                 `json:"is_admin" bson:"is_admin"`
	Role        *primitive.ObjectID  `json:"role,omitempty" bson:"role,omitempty"`
	Permissions []primitive.ObjectID `json:"permissions" bson:"permissions"`
	IsActive    bool                 `json:"is_active" bson:"is_active"`

	// Security
	LoginAttempts int        `json:"-" bson:"login_attempts"`
	LockUntil     *time.Time `json:"-" bson:"lock_until,omitempty"`
	LastLogin     *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	LastLoginIP   string     `json:"-" bson:"last_login_ip,omitempty"`

	CreatedBy *primitive.ObjectID `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// IsLocked reports whether a lock is currently in force.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

// NextFailedLogin computes the counter and lock expiry after one more failed
// password match. An expired lock restarts the counter at 1 instead of
// continuing to increment; reaching MaxLoginAttempts sets a fresh
// time-bounded lock. There is no permanent lock state.
func NextFailedLogin(attempts int, lockUntil *time.Time, now time.Time) (int, *time.Time) {
	if lockUntil != nil && !lockUntil.After(now) {
		return 1, nil
	}

	attempts++
	if attempts >= MaxLoginAttempts && (lockUntil == nil || !lockUntil.After(now)) {
		until := now.Add(LockDuration)
		return attempts, &until
	}
	return attempts, lockUntil
}
