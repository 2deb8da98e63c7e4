package user

import (
	"testing"
	"time"
)

func TestNextFailedLogin(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name         string
		attempts     int
		lockUntil    *time.Time
		wantAttempts int
		wantLocked   bool
	}{
		{"first failure", 0, nil, 1, false},
		{"fourth failure stays unlocked", 3, nil, 4, false},
		{"fifth failure locks", 4, nil, 5, true},
		{"expired lock restarts at one", 7, &past, 1, false},
		{"failure while locked keeps lock", 5, &future, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAttempts, gotLock := NextFailedLogin(tt.attempts, tt.lockUntil, now)
			if gotAttempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", gotAttempts, tt.wantAttempts)
			}
			if (gotLock != nil && gotLock.After(now)) != tt.wantLocked {
				t.Errorf("locked = %v, want %v", gotLock, tt.wantLocked)
			}
		})
	}
}

func TestFifthFailureLockDuration(t *testing.T) {
	now := time.Now()

	_, lock := NextFailedLogin(4, nil, now)
	if lock == nil {
		t.Fatal("expected a lock after the fifth failure")
	}
	if got, want := lock.Sub(now), LockDuration; got != want {
		t.Errorf("lock duration = %v, want %v", got, want)
	}

	u := &User{LockUntil: lock}
	if !u.IsLocked(now) {
		t.Error("user should be locked immediately after lock is set")
	}
	if u.IsLocked(now.Add(LockDuration + time.Second)) {
		t.Error("lock should expire after its duration")
	}
}
