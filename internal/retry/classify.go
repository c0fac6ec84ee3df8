package retry

import "strings"

// transientMarkers name failure conditions that are plausibly temporary:
// a later attempt against the same endpoint may succeed.
var transientMarkers = []string{
	"timeout",
	"time-out",
	"network",
	"connection",
	"connection refused",
	"host not found",
	"socket hang up",
	"temporarily unavailable",
}

// permanentMarkers name failure conditions that hold for the lifetime of
// the process (bad credentials, exhausted quota, rejected input). These
// take precedence over transient markers: retrying them only burns budget.
var permanentMarkers = []string{
	"rate limit",
	"quota",
	"authentication",
	"api key",
	"invalid",
	"not found",
	"private",
	"inaccessible",
	"validation",
}

// IsTransient reports whether err is worth retrying. The verdict is based
// on the error message: it must contain at least one transient marker and
// no permanent marker.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return false
		}
	}

	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
