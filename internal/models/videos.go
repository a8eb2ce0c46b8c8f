package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Custom string type used to convert string duration to desirable format
type ISO8601Duration string

// Video is a single playlist entry.
// Identity is the pointer, two videos with the same fields are still different entries.
type Video struct {
	VideoID     string          `json:"video_id"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Thumbnail   *Thumbnail      `json:"thumbnail,omitempty"`
	Duration    ISO8601Duration `json:"duration,omitempty"`
	VideoTime   int             `json:"video_time"` // playback duration in seconds
}

// Videos is an ordered list of playlist entries, the order is the episode order
type Videos []*Video

// MarshalBinary implements the encoding.BinaryMarshaler interface.
// Used by Redis to store the list.
func (v Videos) MarshalBinary() ([]byte, error) {
	return json.Marshal(v)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
// Used by Redis to scan the list.
func (v *Videos) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, v)
}

// Valid ISO time format, days are used by YouTube for very long videos
var validISO8601 = regexp.MustCompile(
	`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`,
)

// Compile an ISO-8601 string to time components
func (d ISO8601Duration) compile() (map[string]int, error) {

	// Find the substrings (days, hours, minutes, seconds)
	matches := validISO8601.FindStringSubmatch(string(d))
	if matches == nil || d == "P" || d == "PT" {
		return nil, fmt.Errorf("invalid duration format: %s", d)
	}

	// Check for the matched regex groups
	days, _ := strconv.Atoi(matches[1])
	hours, _ := strconv.Atoi(matches[2])
	minutes, _ := strconv.Atoi(matches[3])
	sec, _ := strconv.ParseFloat(matches[4], 64)

	return map[string]int{
		"h": days*24 + hours,
		"m": minutes,
		"s": int(sec),
	}, nil
}

// Get video duration in seconds
func (d ISO8601Duration) Seconds() (int, error) {
	t, err := d.compile()
	if err != nil {
		return 0, err
	}

	return t["h"]*60*60 + t["m"]*60 + t["s"], nil
}
