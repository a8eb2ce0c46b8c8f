package yt

import "regexp"

// VideoIDLength is the fixed length of a YouTube video ID
const VideoIDLength = 11

// Matches /v/, /u/x/, /embed/, ?v=, &v= and youtu.be/ links
var videoURL = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// A plain video ID with no URL around it
var bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID extracts the video ID from a YouTube URL or a bare ID.
// Returns false if the input doesn't match or the ID is not exactly 11 characters.
func ExtractVideoID(url string) (string, bool) {

	if match := videoURL.FindStringSubmatch(url); match != nil {
		if len(match[2]) != VideoIDLength {
			return "", false
		}
		return match[2], true
	}

	if bareVideoID.MatchString(url) {
		return url, true
	}

	return "", false
}

// ExtractVideoIDs extracts the IDs from the URLs in order, skipping the invalid ones.
// The invalid inputs are returned separately.
func ExtractVideoIDs(urls ...string) (ids, invalid []string) {
	for _, url := range urls {
		if id, ok := ExtractVideoID(url); ok {
			ids = append(ids, id)
			continue
		}
		invalid = append(invalid, url)
	}
	return ids, invalid
}
