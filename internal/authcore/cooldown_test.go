package authcore

import "testing"

func TestRateLimitBackoff_Sequence(t *testing.T) {
	tests := []struct {
		n    int
		want int64
	}{
		{1, 60_000},
		{2, 300_000},
		{3, 1_500_000},
		{4, 3_600_000},
		{5, 3_600_000},
		{0, 60_000}, // n<=0 treated as n=1
	}
	for _, tt := range tests {
		if got := RateLimitBackoff(tt.n); got != tt.want {
			t.Errorf("RateLimitBackoff(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestRateLimitBackoff_Monotone(t *testing.T) {
	for n := 1; n < 20; n++ {
		a, b := RateLimitBackoff(n), RateLimitBackoff(n+1)
		if a > b {
			t.Errorf("RateLimitBackoff(%d)=%d > RateLimitBackoff(%d)=%d", n, a, n+1, b)
		}
		if a > 3_600_000 {
			t.Errorf("RateLimitBackoff(%d)=%d exceeds 1h cap", n, a)
		}
	}
}

func TestBillingBackoff_Sequence(t *testing.T) {
	base := hoursToMs(5)
	max := hoursToMs(24)
	if got := BillingBackoff(1, base, max); got != base {
		t.Errorf("BillingBackoff(1) = %d, want base %d", got, base)
	}
	if got, want := BillingBackoff(2, base, max), hoursToMs(10); got != want {
		t.Errorf("BillingBackoff(2) = %d, want %d", got, want)
	}
	if got := BillingBackoff(10, base, max); got != max {
		t.Errorf("BillingBackoff(10) = %d, want capped at max %d", got, max)
	}
}

func TestBillingBackoff_Monotone(t *testing.T) {
	base := int64(60_000)
	max := int64(10 * 60_000)
	for n := 1; n < 20; n++ {
		a, b := BillingBackoff(n, base, max), BillingBackoff(n+1, base, max)
		if a > b {
			t.Errorf("BillingBackoff(%d)=%d > BillingBackoff(%d)=%d", n, a, n+1, b)
		}
		if a > max {
			t.Errorf("BillingBackoff(%d)=%d exceeds max %d", n, a, max)
		}
	}
}

func TestBillingBackoff_MaxClampedToBase(t *testing.T) {
	// maxMs below baseMs must clamp up to at least baseMs.
	got := BillingBackoff(1, 100_000, 50_000)
	if got != 100_000 {
		t.Errorf("BillingBackoff with maxMs<baseMs = %d, want baseMs %d", got, 100_000)
	}
}
