package traffic

import (
	"testing"
	"time"
)

// TestErrorRate_Empty verifies ErrorRate returns zeros when nothing has
// been recorded within the window.
func TestErrorRate_Empty(t *testing.T) {
	Reset()
	errors, total := ErrorRate(1 * time.Minute)
	if errors != 0 || total != 0 {
		t.Errorf("ErrorRate() = (%d, %d), want (0, 0)", errors, total)
	}
}

// TestErrorRate_SuccessAndError verifies ErrorRate calculates the rate
// from recorded success and error outcomes.
func TestErrorRate_SuccessAndError(t *testing.T) {
	Reset()
	RecordSuccess()
	RecordSuccess()
	RecordError()
	errors, total := ErrorRate(1 * time.Minute)
	if errors != 1 || total != 3 {
		t.Errorf("ErrorRate() = (%d, %d), want (1, 3)", errors, total)
	}
}

// TestErrorRate_WindowExcludesOld verifies outcomes outside the window
// are not counted.
func TestErrorRate_WindowExcludesOld(t *testing.T) {
	Reset()
	RecordError()
	time.Sleep(20 * time.Millisecond)
	RecordSuccess()
	errors, total := ErrorRate(10 * time.Millisecond)
	if errors != 0 || total != 1 {
		t.Errorf("ErrorRate() = (%d, %d), want (0, 1) with aged-out error", errors, total)
	}
}

// TestReset verifies Reset clears all recorded outcomes.
func TestReset(t *testing.T) {
	Reset()
	RecordSuccess()
	RecordError()
	Reset()
	errors, total := ErrorRate(1 * time.Minute)
	if errors != 0 || total != 0 {
		t.Errorf("ErrorRate() = (%d, %d), want (0, 0)", errors, total)
	}
}

// TestTracker_Isolated verifies a standalone Tracker does not share
// state with the package default.
func TestTracker_Isolated(t *testing.T) {
	Reset()
	var tr Tracker
	tr.RecordError()
	tr.RecordError()
	tr.RecordSuccess()

	errors, total := tr.ErrorRate(1 * time.Minute)
	if errors != 2 || total != 3 {
		t.Errorf("Tracker.ErrorRate() = (%d, %d), want (2, 3)", errors, total)
	}
	errors, total = ErrorRate(1 * time.Minute)
	if errors != 0 || total != 0 {
		t.Errorf("default ErrorRate() = (%d, %d), want (0, 0)", errors, total)
	}
}
