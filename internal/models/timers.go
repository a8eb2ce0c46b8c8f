package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

const totalKey = "total"

// Timers holds the watched seconds per playlist index
// plus the aggregate over all the videos.
// In JSON it's a flat object: {"total": 10, "0": 4, "1": 6}.
type Timers struct {
	Total int
	Items map[int]int
}

// NewTimers creates a timer map with a zero entry for each of the n indexes
func NewTimers(total, n int) Timers {
	items := make(map[int]int, n)
	for i := range n {
		items[i] = 0
	}
	return Timers{Total: total, Items: items}
}

// Clone returns a deep copy of the timers
func (t Timers) Clone() Timers {
	return Timers{Total: t.Total, Items: maps.Clone(t.Items)}
}

// MarshalJSON implements the json.Marshaler interface
func (t Timers) MarshalJSON() ([]byte, error) {
	flat := make(map[string]int, len(t.Items)+1)
	for i, seconds := range t.Items {
		flat[strconv.Itoa(i)] = seconds
	}
	flat[totalKey] = t.Total
	return json.Marshal(flat)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Every key other than "total" must be a non-negative index.
func (t *Timers) UnmarshalJSON(data []byte) error {

	var flat map[string]int
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	timers := Timers{Items: make(map[int]int, len(flat))}
	for key, seconds := range flat {
		if key == totalKey {
			timers.Total = seconds
			continue
		}

		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid timer key '%s'", key)
		}

		timers.Items[i] = seconds
	}

	*t = timers
	return nil
}
