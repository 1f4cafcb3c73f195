package authcore

// ResolveUnusableUntil computes max over {cooldownUntil, disabledUntil,
// modelStats[modelID].cooldownUntil}, considering only present, strictly
// positive values. modelID == "" skips the model term. Returns (0, false) if
// none apply — the profile is eligible.
func ResolveUnusableUntil(stats ProfileUsageStats, modelID string) (int64, bool) {
	var max int64
	found := false

	consider := func(v OptionalMillis) {
		if v.Present && v.Value > 0 && (!found || v.Value > max) {
			max = v.Value
			found = true
		}
	}

	consider(stats.CooldownUntil)
	consider(stats.DisabledUntil)
	if modelID != "" {
		if model, ok := stats.ModelStats[modelID]; ok {
			consider(model.CooldownUntil)
		}
	}
	return max, found
}

// IsInCooldown reports whether ResolveUnusableUntil(...) > now.
func IsInCooldown(stats ProfileUsageStats, modelID string, now int64) bool {
	until, ok := ResolveUnusableUntil(stats, modelID)
	return ok && until > now
}
