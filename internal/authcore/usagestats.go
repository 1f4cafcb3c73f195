package authcore

// CooldownConfig parameterizes backoff computation: billing backoff
// base/max and the failure window, with an optional per-normalized-provider
// override table.
type CooldownConfig struct {
	BillingBackoffMs           int64
	BillingMaxMs               int64
	FailureWindowMs            int64
	BillingBackoffMsByProvider map[string]int64
}

// billingBackoffFor resolves the per-provider override, falling back to the
// config default, looked up by Normalize(providerKey) == Normalize(provider).
func (c CooldownConfig) billingBackoffFor(provider string) int64 {
	if c.BillingBackoffMsByProvider != nil {
		if v, ok := c.BillingBackoffMsByProvider[Normalize(provider)]; ok {
			return v
		}
	}
	return c.BillingBackoffMs
}

// windowExpired reports whether the existing lastFailureAt is old enough
// that the failure window has reset.
func windowExpired(existing ProfileUsageStats, now int64, windowMs int64) bool {
	if !existing.LastFailureAt.Present {
		return false
	}
	return now-existing.LastFailureAt.Value > windowMs
}

// nextFailureStats computes the next ProfileUsageStats after a failure.
// provider is the credential's provider, used to resolve the per-provider
// billing override.
func nextFailureStats(existing ProfileUsageStats, now int64, reason FailureReason, provider string, modelID string, retryAfterMs *int64, cfg CooldownConfig) ProfileUsageStats {
	next := existing.Clone()
	expired := windowExpired(existing, now, cfg.FailureWindowMs)

	if reason == ReasonBilling {
		counts := map[FailureReason]int{}
		if !expired {
			for k, v := range existing.FailureCounts {
				counts[k] = v
			}
		}
		counts[ReasonBilling]++
		base := cfg.billingBackoffFor(provider)
		backoff := BillingBackoff(counts[ReasonBilling], base, cfg.BillingMaxMs)
		next.DisabledUntil = Millis(now + backoff)
		next.DisabledReason = ReasonBilling
		next.FailureCounts = counts
		next.LastFailureAt = Millis(now)
		return next
	}

	if modelID != "" && (reason == ReasonRateLimit || reason == ReasonTimeout) {
		model := next.ModelStats[modelID]
		model.ErrorCount++
		backoff := RateLimitBackoff(model.ErrorCount)
		if retryAfterMs != nil {
			backoff = *retryAfterMs
		}
		model.CooldownUntil = Millis(now + backoff)
		model.LastFailureAt = Millis(now)
		if next.ModelStats == nil {
			next.ModelStats = map[string]ModelUsageStats{}
		}
		next.ModelStats[modelID] = model
		return next
	}

	base := 0
	if !expired {
		base = existing.ErrorCount
	}
	count := base + 1
	backoff := RateLimitBackoff(count)
	if retryAfterMs != nil {
		backoff = *retryAfterMs
	}
	next.ErrorCount = count
	next.CooldownUntil = Millis(now + backoff)
	next.LastFailureAt = Millis(now)
	return next
}

// nextSuccessStats computes the next ProfileUsageStats after a success.
func nextSuccessStats(existing ProfileUsageStats, now int64, modelID string) ProfileUsageStats {
	next := existing.Clone()
	next.ErrorCount = 0
	next.CooldownUntil = OptionalMillis{}
	next.DisabledUntil = OptionalMillis{}
	next.DisabledReason = ""
	next.FailureCounts = nil
	next.LastUsed = Millis(now)

	if modelID != "" {
		model := next.ModelStats[modelID]
		model.ErrorCount = 0
		model.CooldownUntil = OptionalMillis{}
		model.LastUsed = Millis(now)
		if next.ModelStats == nil {
			next.ModelStats = map[string]ModelUsageStats{}
		}
		next.ModelStats[modelID] = model
	}
	return next
}

// clearStats computes the next ProfileUsageStats for a manual cooldown
// clear.
func clearStats(existing ProfileUsageStats, modelID string) ProfileUsageStats {
	next := existing.Clone()
	if modelID != "" {
		if next.ModelStats == nil {
			return next
		}
		model, ok := next.ModelStats[modelID]
		if !ok {
			return next
		}
		model.ErrorCount = 0
		model.CooldownUntil = OptionalMillis{}
		next.ModelStats[modelID] = model
		return next
	}
	next.ErrorCount = 0
	next.CooldownUntil = OptionalMillis{}
	return next
}
