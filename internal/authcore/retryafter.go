package authcore

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RetryAfterSource is the shape an opaque error may expose to provide a
// retry hint: a case-insensitive headers map, or a direct numeric
// RetryAfter/retry_after property. No other shape is assumed.
type RetryAfterSource interface {
	RetryAfterHeaders() map[string][]string
	RetryAfterSeconds() (float64, bool)
}

// ExtractRetryAfter parses a delay hint from a caller-provided error object.
func ExtractRetryAfter(err error, now time.Time) (ms int64, ok bool) {
	src, isSrc := err.(RetryAfterSource)
	if !isSrc {
		return 0, false
	}

	if headers := src.RetryAfterHeaders(); headers != nil {
		if v, found := lookupHeaderCaseInsensitive(headers, "retry-after"); found {
			v = strings.TrimSpace(v)
			if v != "" {
				if seconds, err := strconv.ParseFloat(v, 64); err == nil {
					return int64(math.Ceil(seconds * 1000)), true
				}
				t, err := http.ParseTime(v)
				if err != nil {
					// RFC 1123 dates with a zone other than literal GMT
					// (e.g. "UTC") are accepted as well.
					t, err = time.Parse(time.RFC1123, v)
				}
				if err == nil {
					wait := t.Sub(now)
					if wait < 0 {
						wait = 0
					}
					return wait.Milliseconds(), true
				}
			}
		}
	}

	if seconds, found := src.RetryAfterSeconds(); found {
		return int64(math.Ceil(seconds * 1000)), true
	}

	return 0, false
}

func lookupHeaderCaseInsensitive(headers map[string][]string, key string) (string, bool) {
	for k, values := range headers {
		if strings.EqualFold(k, key) && len(values) > 0 {
			return values[0], true
		}
	}
	return "", false
}
