package authcore

import (
	"testing"
	"time"
)

type fakeRetryAfterError struct {
	headers map[string][]string
	seconds float64
	hasSecs bool
}

func (f *fakeRetryAfterError) Error() string { return "fake retry-after error" }

func (f *fakeRetryAfterError) RetryAfterHeaders() map[string][]string { return f.headers }

func (f *fakeRetryAfterError) RetryAfterSeconds() (float64, bool) { return f.seconds, f.hasSecs }

func TestExtractRetryAfter_NumericHeader(t *testing.T) {
	err := &fakeRetryAfterError{headers: map[string][]string{"Retry-After": {"2"}}}
	ms, ok := ExtractRetryAfter(err, time.Now())
	if !ok || ms != 2000 {
		t.Errorf("got (%d,%v), want (2000,true)", ms, ok)
	}
}

func TestExtractRetryAfter_CaseInsensitiveHeader(t *testing.T) {
	err := &fakeRetryAfterError{headers: map[string][]string{"retry-after": {"1.5"}}}
	ms, ok := ExtractRetryAfter(err, time.Now())
	if !ok || ms != 1500 {
		t.Errorf("got (%d,%v), want (1500,true)", ms, ok)
	}
}

func TestExtractRetryAfter_HTTPDate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(10 * time.Second)
	err := &fakeRetryAfterError{headers: map[string][]string{
		"Retry-After": {future.Format(time.RFC1123)},
	}}
	ms, ok := ExtractRetryAfter(err, now)
	if !ok || ms != 10_000 {
		t.Errorf("got (%d,%v), want (10000,true)", ms, ok)
	}
}

func TestExtractRetryAfter_PastHTTPDateClampsToZero(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-10 * time.Second)
	err := &fakeRetryAfterError{headers: map[string][]string{
		"Retry-After": {past.Format(time.RFC1123)},
	}}
	ms, ok := ExtractRetryAfter(err, now)
	if !ok || ms != 0 {
		t.Errorf("got (%d,%v), want (0,true)", ms, ok)
	}
}

func TestExtractRetryAfter_DirectProperty(t *testing.T) {
	err := &fakeRetryAfterError{seconds: 3, hasSecs: true}
	ms, ok := ExtractRetryAfter(err, time.Now())
	if !ok || ms != 3000 {
		t.Errorf("got (%d,%v), want (3000,true)", ms, ok)
	}
}

func TestExtractRetryAfter_Absent(t *testing.T) {
	err := &fakeRetryAfterError{}
	if _, ok := ExtractRetryAfter(err, time.Now()); ok {
		t.Error("expected absent when nothing is populated")
	}
}

func TestExtractRetryAfter_NonSourceError(t *testing.T) {
	if _, ok := ExtractRetryAfter(errPlain{}, time.Now()); ok {
		t.Error("expected absent for an error not implementing RetryAfterSource")
	}
}

type errPlain struct{}

func (errPlain) Error() string { return "plain" }
