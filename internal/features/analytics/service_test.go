package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestReportWindowNormalize(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("zero window defaults to last 30 days", func(t *testing.T) {
		from, to, err := (ReportWindow{}).normalize(now)
		if err != nil {
			t.Fatal(err)
		}
		if !to.Equal(now) {
			t.Errorf("to = %v, want %v", to, now)
		}
		if !from.Equal(now.AddDate(0, 0, -30)) {
			t.Errorf("from = %v", from)
		}
	})

	t.Run("explicit bounds kept", func(t *testing.T) {
		w := ReportWindow{
			From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}
		from, to, err := w.normalize(now)
		if err != nil {
			t.Fatal(err)
		}
		if !from.Equal(w.From) || !to.Equal(w.To) {
			t.Errorf("bounds changed: %v %v", from, to)
		}
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		w := ReportWindow{
			From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}
		if _, _, err := w.normalize(now); !errors.Is(err, ErrBadDateRange) {
			t.Errorf("err = %v, want ErrBadDateRange", err)
		}
	})
}
