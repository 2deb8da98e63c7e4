package middleware

import (
	"errors"
	"fmt"
	"time"
)

// Session gate failure modes. The HTTP mapping is 401, 403, 423.
var (
	ErrUnauthenticated = errors.New("not authorized")
	ErrAccountInactive = errors.New("user account is inactive")
)

// AccountLockedError carries the lock expiry so responses can hint when to
// retry.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account is locked until %s", e.Until.Format(time.RFC3339))
}

// RetryAfter is the remaining lock duration, floored at one second.
func (e *AccountLockedError) RetryAfter() time.Duration {
	d := time.Until(e.Until)
	if d < time.Second {
		d = time.Second
	}
	return d
}
