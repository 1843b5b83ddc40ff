package availability

import (
	"testing"
	"time"
)

func TestGenerateSlots_ClosedDay(t *testing.T) {
	day := DayAvailability{IsOpen: false, StartMinutes: 540, EndMinutes: 1020}
	booked := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 660, AppointmentID: "a1", Status: StatusConfirmed},
	}

	slots, err := GenerateSlots(day, booked, 540, 1020, 15, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) == 0 {
		t.Fatal("expected candidate slots for a closed day, got none")
	}
	for _, s := range slots {
		if s.Offered {
			t.Errorf("slot %d offered on a closed day", s.StartMinutes)
		}
	}
}

func TestGenerateSlots_OpenDayNoBookings(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020}

	slots, err := GenerateSlots(day, nil, 480, 1080, 15, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range slots {
		want := s.StartMinutes >= 540 && s.StartMinutes+30 <= 1020
		if s.Offered != want {
			t.Errorf("slot %d: offered=%v, want %v", s.StartMinutes, s.Offered, want)
		}
	}
}

func TestGenerateSlots_OverlapExclusion(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020}
	booked := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a1", Status: StatusConfirmed},
	}
	const duration = 30

	slots, err := GenerateSlots(day, booked, 540, 1020, 15, duration)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, s := range slots {
		overlaps := s.StartMinutes < 690 && s.StartMinutes+duration > 600
		inHours := s.StartMinutes >= 540 && s.StartMinutes+duration <= 1020
		want := inHours && !overlaps
		if s.Offered != want {
			t.Errorf("slot %d: offered=%v, want %v", s.StartMinutes, s.Offered, want)
		}
	}
}

// Scenario from the booking flow: 9:00-17:00 day, confirmed 10:00-11:30,
// 15-minute grid, 30-minute service.
func TestGenerateSlots_BookedMorning(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020}
	booked := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a1", Status: StatusConfirmed},
	}

	slots, err := GenerateSlots(day, booked, 540, 1020, 15, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byStart := make(map[int]TimeSlot, len(slots))
	for _, s := range slots {
		byStart[s.StartMinutes] = s
	}

	cases := []struct {
		start   int
		offered bool
	}{
		{570, true},  // 9:30, ends exactly at 10:00
		{585, false}, // 9:45, would run into the booking
		{600, false},
		{675, false}, // 11:15, still inside the booking
		{690, true},  // 11:30, booking just ended
	}
	for _, tc := range cases {
		s, ok := byStart[tc.start]
		if !ok {
			t.Fatalf("slot %d missing from grid", tc.start)
		}
		if s.Offered != tc.offered {
			t.Errorf("slot %d (%s): offered=%v, want %v", tc.start, s.Label, s.Offered, tc.offered)
		}
	}
}

func TestGenerateSlots_InactiveStatusesAreInert(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020}

	active := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a1", Status: StatusConfirmed},
		{StartMinutes: 720, EndMinutes: 750, AppointmentID: "a2", Status: StatusPending},
	}

	before, err := GenerateSlots(day, active, 540, 1020, 15, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, status := range []AppointmentStatus{StatusCancelled, StatusCompleted} {
		relaxed := make([]BookedInterval, len(active))
		copy(relaxed, active)
		relaxed[0].Status = status

		after, err := GenerateSlots(day, relaxed, 540, 1020, 15, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Flipping an interval to an inactive status may only add offered
		// slots, never remove them.
		for i := range before {
			if before[i].Offered && !after[i].Offered {
				t.Errorf("status %s: slot %d lost its offer", status, before[i].StartMinutes)
			}
		}

		s := after[(600-540)/15]
		if !s.Offered {
			t.Errorf("status %s: slot 600 should be freed", status)
		}
	}
}

func TestGenerateSlots_UnknownDuration(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020}
	booked := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a1", Status: StatusPending},
	}

	slots, err := GenerateSlots(day, booked, 540, 1035, 15, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byStart := make(map[int]TimeSlot, len(slots))
	for _, s := range slots {
		byStart[s.StartMinutes] = s
	}

	// Degraded checks: start-only bounds, exact-start collision.
	if !byStart[585].Offered {
		t.Error("slot 585 should be offered when duration is unknown")
	}
	if byStart[600].Offered {
		t.Error("slot 600 matches a booked start, should not be offered")
	}
	if !byStart[615].Offered {
		t.Error("slot 615 does not match any booked start, should be offered")
	}
	if !byStart[1005].Offered {
		t.Error("slot 1005 starts inside open hours, should be offered")
	}
	if byStart[1020].Offered {
		t.Error("slot 1020 starts at closing time, should not be offered")
	}
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 600, EndMinutes: 720}
	booked := []BookedInterval{
		{StartMinutes: 630, EndMinutes: 660, AppointmentID: "a1", Status: StatusConfirmed},
	}

	first, err := GenerateSlots(day, booked, 600, 720, 15, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GenerateSlots(day, booked, 600, 720, 15, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateSlots_Ordering(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020}

	slots, err := GenerateSlots(day, nil, 540, 720, 15, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].StartMinutes <= slots[i-1].StartMinutes {
			t.Fatalf("slots out of order at %d: %d after %d", i, slots[i].StartMinutes, slots[i-1].StartMinutes)
		}
	}
	if slots[0].StartMinutes != 540 {
		t.Errorf("first slot = %d, want 540", slots[0].StartMinutes)
	}
	if last := slots[len(slots)-1].StartMinutes; last != 705 {
		t.Errorf("last slot = %d, want 705 (strictly below window end)", last)
	}
}

func TestGenerateSlots_InputValidation(t *testing.T) {
	day := DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020}

	if _, err := GenerateSlots(day, nil, 720, 720, 15, 0); err != ErrInvalidWindow {
		t.Errorf("equal window bounds: got %v, want ErrInvalidWindow", err)
	}
	if _, err := GenerateSlots(day, nil, 720, 600, 15, 0); err != ErrInvalidWindow {
		t.Errorf("inverted window: got %v, want ErrInvalidWindow", err)
	}
	if _, err := GenerateSlots(day, nil, 540, 1020, 0, 0); err != ErrInvalidGranularity {
		t.Errorf("zero granularity: got %v, want ErrInvalidGranularity", err)
	}
	if _, err := GenerateSlots(day, nil, 540, 1020, -15, 0); err != ErrInvalidGranularity {
		t.Errorf("negative granularity: got %v, want ErrInvalidGranularity", err)
	}
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "12:00 AM"},
		{540, "9:00 AM"},
		{555, "9:15 AM"},
		{690, "11:30 AM"},
		{720, "12:00 PM"},
		{765, "12:45 PM"},
		{795, "1:15 PM"},
		{1439, "11:59 PM"},
	}

	for _, tc := range cases {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestIsDateOpen(t *testing.T) {
	var weekly WeeklyAvailability
	for d := Sunday; d <= Saturday; d++ {
		weekly.SetDay(d, DayAvailability{IsOpen: true, StartMinutes: 540, EndMinutes: 1020})
	}
	weekly.SetDay(Saturday, DayAvailability{IsOpen: false})

	saturday := time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC)
	if saturday.Weekday() != time.Saturday {
		t.Fatal("test date is not a Saturday")
	}
	if IsDateOpen(weekly, saturday) {
		t.Error("Saturday should be closed regardless of other days")
	}

	friday := saturday.AddDate(0, 0, -1)
	if !IsDateOpen(weekly, friday) {
		t.Error("Friday should be open")
	}
}

func TestHasConflict(t *testing.T) {
	existing := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a1", Status: StatusPending},
	}

	cases := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"overlap tail", 680, 710, true},
		{"abuts end", 690, 720, false},
		{"abuts start", 570, 600, false},
		{"contained", 615, 630, true},
		{"contains", 590, 700, true},
		{"disjoint", 720, 750, false},
	}
	for _, tc := range cases {
		if got := HasConflict(existing, tc.start, tc.end); got != tc.want {
			t.Errorf("%s: HasConflict([%d,%d)) = %v, want %v", tc.name, tc.start, tc.end, got, tc.want)
		}
	}

	inactive := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a1", Status: StatusCancelled},
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a2", Status: StatusCompleted},
	}
	if HasConflict(inactive, 600, 690) {
		t.Error("inactive intervals should never conflict")
	}
}

func TestFindOverlaps(t *testing.T) {
	intervals := []BookedInterval{
		{StartMinutes: 600, EndMinutes: 690, AppointmentID: "a1", Status: StatusConfirmed},
		{StartMinutes: 660, EndMinutes: 720, AppointmentID: "a2", Status: StatusPending},
		{StartMinutes: 660, EndMinutes: 720, AppointmentID: "a3", Status: StatusCancelled},
		{StartMinutes: 720, EndMinutes: 780, AppointmentID: "a4", Status: StatusConfirmed},
	}

	pairs := FindOverlaps(intervals)
	if len(pairs) != 1 {
		t.Fatalf("got %d overlap pairs, want 1", len(pairs))
	}
	if pairs[0][0].AppointmentID != "a1" || pairs[0][1].AppointmentID != "a2" {
		t.Errorf("unexpected pair: %s / %s", pairs[0][0].AppointmentID, pairs[0][1].AppointmentID)
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2026-02-01 is a Sunday.
	sunday := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		got := WeekdayOf(sunday.AddDate(0, 0, i))
		want := Weekday(i + 1)
		if got != want {
			t.Errorf("day %d: got %d, want %d", i, got, want)
		}
	}
}
