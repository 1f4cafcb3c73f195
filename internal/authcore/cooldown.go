package authcore

import "time"

const (
	oneHourMs   = int64(time.Hour / time.Millisecond)
	oneMinuteMs = int64(time.Minute / time.Millisecond)
)

// RateLimitBackoff computes the rate-limit/timeout backoff for the n-th
// consecutive error: min(1h, 60_000 * 5^min(n-1, 3)) ms, yielding
// 60s, 300s, 1500s, 3600s, 3600s...
func RateLimitBackoff(n int) int64 {
	if n <= 0 {
		n = 1
	}
	exp := n - 1
	if exp > 3 {
		exp = 3
	}
	backoff := oneMinuteMs
	for i := 0; i < exp; i++ {
		backoff *= 5
	}
	if backoff > oneHourMs {
		backoff = oneHourMs
	}
	return backoff
}

// BillingBackoff computes the billing-disable backoff for the n-th
// consecutive billing failure: min(maxMs, max(60_000, baseMs) * 2^min(n-1, 10)),
// with maxMs clamped up to at least baseMs.
func BillingBackoff(n int, baseMs, maxMs int64) int64 {
	if n <= 0 {
		n = 1
	}
	if baseMs < oneMinuteMs {
		baseMs = oneMinuteMs
	}
	if maxMs < baseMs {
		maxMs = baseMs
	}
	exp := n - 1
	if exp > 10 {
		exp = 10
	}
	backoff := baseMs
	for i := 0; i < exp; i++ {
		if backoff >= maxMs {
			backoff = maxMs
			break
		}
		backoff *= 2
	}
	if backoff > maxMs {
		backoff = maxMs
	}
	return backoff
}
