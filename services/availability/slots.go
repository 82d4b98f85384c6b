package availability

import (
	"fmt"
	"time"

	"checkfree/models"
)

// WorkingWindow returns the window [start, end) of date (YYYY-MM-DD) between
// the wall-clock hours startHour and endHour in loc.
func WorkingWindow(date string, loc *time.Location, startHour, endHour int) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, startHour, 0, 0, 0, loc)
	end := time.Date(y, m, d, endHour, 0, 0, 0, loc)
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("empty working window %d-%d on %s", startHour, endHour, date)
	}
	return start, end, nil
}

// BuildSlots partitions [windowStart, windowEnd) into consecutive slots of
// slotLen and marks every slot that intersects a busy interval unavailable.
// A trailing remainder shorter than slotLen is not emitted.
func BuildSlots(windowStart, windowEnd time.Time, slotLen time.Duration, busy []models.BusyInterval) []models.Slot {
	slots := []models.Slot{}
	if slotLen <= 0 {
		return slots
	}
	for t := windowStart; !t.Add(slotLen).After(windowEnd); t = t.Add(slotLen) {
		end := t.Add(slotLen)
		slots = append(slots, models.Slot{
			Start:     t,
			End:       end,
			Available: !overlapsAny(t, end, busy),
		})
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		// [start,end) and [b.Start,b.End) overlap iff start < b.End && end > b.Start.
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}
