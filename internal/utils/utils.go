package utils

import (
	"fmt"
	"net/http"
	"strconv"
)

// HttpError provides shorter handling of http error
func HttpError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// ParseIndex parses a non-negative list index
func ParseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index '%s'", s)
	}

	if i < 0 {
		return 0, fmt.Errorf("negative index %d", i)
	}

	return i, nil
}
