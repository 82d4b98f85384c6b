package models

import (
	"encoding/json"
	"time"
)

// ISOMillis formats UTC instants with millisecond precision, e.g. 2025-01-15T03:30:00.000Z.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// Slot is a bookable interval [Start, End) of a seller's working window.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

type slotJSON struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// MarshalJSON renders start and end as UTC ISO-8601 strings.
func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotJSON{
		Start:     s.Start.UTC().Format(ISOMillis),
		End:       s.End.UTC().Format(ISOMillis),
		Available: s.Available,
	})
}

// UnmarshalJSON parses the representation produced by MarshalJSON.
func (s *Slot) UnmarshalJSON(data []byte) error {
	var raw slotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.Parse(time.RFC3339, raw.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(time.RFC3339, raw.End)
	if err != nil {
		return err
	}
	*s = Slot{Start: start, End: end, Available: raw.Available}
	return nil
}

// BusyInterval is a range [Start, End) reported busy by the calendar provider.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
