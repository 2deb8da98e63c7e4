package order

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusConfirmed, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusShipped, StatusOutForDelivery, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusDelivered, StatusRefunded, true},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusRefunded, StatusDelivered, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCancellable(t *testing.T) {
	cancellable := []Status{StatusPending, StatusConfirmed}
	final := []Status{StatusProcessing, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusRefunded}

	for _, s := range cancellable {
		if !s.Cancellable() {
			t.Errorf("%s should be cancellable by the customer", s)
		}
	}
	for _, s := range final {
		if s.Cancellable() {
			t.Errorf("%s should not be cancellable by the customer", s)
		}
	}
}
