package entities

import (
	"errors"
	"testing"
	"time"
)

func TestTimeEntryStopDuration(t *testing.T) {
	start := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"two minutes and change", 125 * time.Second, 2},
		{"under a minute", 59 * time.Second, 0},
		{"exactly a minute", 60 * time.Second, 1},
		{"zero", 0, 0},
		{"long session", 3*time.Hour + 30*time.Minute + 59*time.Second, 210},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &TimeEntry{StartTime: start}

			if err := entry.Stop(start.Add(tt.elapsed)); err != nil {
				t.Fatalf("Stop failed: %v", err)
			}

			if entry.Duration == nil {
				t.Fatal("duration not set")
			}
			if *entry.Duration != tt.want {
				t.Errorf("duration = %d, want %d", *entry.Duration, tt.want)
			}
			if entry.EndTime == nil || !entry.EndTime.Equal(start.Add(tt.elapsed)) {
				t.Errorf("end_time = %v, want %v", entry.EndTime, start.Add(tt.elapsed))
			}
		})
	}
}

func TestTimeEntryStopIsTerminal(t *testing.T) {
	start := time.Now()
	entry := &TimeEntry{StartTime: start}

	if err := entry.Stop(start.Add(time.Minute)); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	firstEnd := *entry.EndTime
	firstDuration := *entry.Duration

	err := entry.Stop(start.Add(10 * time.Minute))
	if !errors.Is(err, ErrTimeEntryClosed) {
		t.Fatalf("second Stop: err = %v, want ErrTimeEntryClosed", err)
	}

	if !entry.EndTime.Equal(firstEnd) || *entry.Duration != firstDuration {
		t.Error("closed entry was mutated by second Stop")
	}
}

func TestTimeEntryStopClockSkew(t *testing.T) {
	// A stop instant before start would yield a negative duration; it
	// clamps to zero instead.
	start := time.Now()
	entry := &TimeEntry{StartTime: start}

	if err := entry.Stop(start.Add(-30 * time.Second)); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if *entry.Duration != 0 {
		t.Errorf("duration = %d, want 0", *entry.Duration)
	}
}

func TestTimeEntryRoundTrip(t *testing.T) {
	start := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	entry := &TimeEntry{StartTime: start}

	if err := entry.Stop(start.Add(125 * time.Second)); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	elapsedSeconds := int(entry.EndTime.Sub(entry.StartTime) / time.Second)
	if got := elapsedSeconds / 60; got != *entry.Duration {
		t.Errorf("floor(elapsed/60) = %d, persisted duration = %d", got, *entry.Duration)
	}
}

func TestTimeEntryMinutes(t *testing.T) {
	open := &TimeEntry{}
	if got := open.Minutes(); got != 0 {
		t.Errorf("open entry Minutes = %d, want 0", got)
	}

	d := 42
	closed := &TimeEntry{Duration: &d}
	if got := closed.Minutes(); got != 42 {
		t.Errorf("Minutes = %d, want 42", got)
	}
}

func TestTimeEntryLiveElapsed(t *testing.T) {
	start := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	entry := &TimeEntry{StartTime: start}

	if got := entry.LiveElapsed(start.Add(90*time.Second + 500*time.Millisecond)); got != 90 {
		t.Errorf("LiveElapsed = %d, want 90", got)
	}

	// Observation before start clamps to zero.
	if got := entry.LiveElapsed(start.Add(-time.Second)); got != 0 {
		t.Errorf("LiveElapsed = %d, want 0", got)
	}
}

func TestTimeEntryIsOpen(t *testing.T) {
	entry := &TimeEntry{StartTime: time.Now()}
	if !entry.IsOpen() {
		t.Error("entry without end_time should be open")
	}

	if err := entry.Stop(time.Now()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if entry.IsOpen() {
		t.Error("stopped entry should be closed")
	}
}

func TestStatusAndPriorityValidation(t *testing.T) {
	for _, valid := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted} {
		if !valid.IsValid() {
			t.Errorf("status %q should be valid", valid)
		}
	}
	if TaskStatus("archived").IsValid() {
		t.Error("unknown status accepted")
	}

	for _, valid := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !valid.IsValid() {
			t.Errorf("priority %q should be valid", valid)
		}
	}
	if Priority("critical").IsValid() {
		t.Error("unknown priority accepted")
	}
}
