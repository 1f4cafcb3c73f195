package authcore

import "context"

// RegisterProfile adds cred to the store under profileID, minting a fresh
// identifier via NewProfileID when profileID is empty. Returns the
// identifier actually used. A profile already present under that ID is left
// untouched and the write is declined.
func RegisterProfile(ctx context.Context, store *Store, cred Credential, profileID string) (string, error) {
	if profileID == "" {
		profileID = NewProfileID(cred.Provider)
	}
	_, err := store.Update(ctx, func(fresh *AuthProfileStore) bool {
		if _, exists := fresh.Profiles[profileID]; exists {
			return false
		}
		if fresh.Profiles == nil {
			fresh.Profiles = map[string]Credential{}
		}
		fresh.Profiles[profileID] = cred
		return true
	})
	if err != nil {
		return "", err
	}
	return profileID, nil
}

// MarkUsed records a successful use, clearing error counters. A missing
// profile is a silent no-op — the updater simply declines to write.
func MarkUsed(ctx context.Context, store *Store, now Clock, profileID, modelID string) (*AuthProfileStore, error) {
	return store.Update(ctx, func(fresh *AuthProfileStore) bool {
		if _, ok := fresh.Profiles[profileID]; !ok {
			return false
		}
		existing := fresh.StatsFor(profileID)
		next := nextSuccessStats(existing, now.NowMillis(), modelID)
		setStats(fresh, profileID, next)
		return true
	})
}

// MarkFailure is the umbrella operation used by all non-success paths.
func MarkFailure(ctx context.Context, store *Store, now Clock, profileID string, reason FailureReason, modelID string, retryAfterMs *int64, cfg CooldownConfig) (*AuthProfileStore, error) {
	return store.Update(ctx, func(fresh *AuthProfileStore) bool {
		cred, ok := fresh.Profiles[profileID]
		if !ok {
			return false
		}
		existing := fresh.StatsFor(profileID)
		next := nextFailureStats(existing, now.NowMillis(), reason, cred.Provider, modelID, retryAfterMs, cfg)
		setStats(fresh, profileID, next)
		return true
	})
}

// MarkCooldown is a convenience wrapper equivalent to
// MarkFailure(reason = rate_limit).
func MarkCooldown(ctx context.Context, store *Store, now Clock, profileID, modelID string, retryAfterMs *int64, cfg CooldownConfig) (*AuthProfileStore, error) {
	return MarkFailure(ctx, store, now, profileID, ReasonRateLimit, modelID, retryAfterMs, cfg)
}

// ClearCooldown performs a manual reset of a profile's (or a profile's
// model-scoped) cooldown state.
func ClearCooldown(ctx context.Context, store *Store, profileID, modelID string) (*AuthProfileStore, error) {
	return store.Update(ctx, func(fresh *AuthProfileStore) bool {
		if _, ok := fresh.Profiles[profileID]; !ok {
			return false
		}
		existing := fresh.StatsFor(profileID)
		next := clearStats(existing, modelID)
		setStats(fresh, profileID, next)
		return true
	})
}

func setStats(store *AuthProfileStore, profileID string, stats ProfileUsageStats) {
	if store.UsageStats == nil {
		store.UsageStats = map[string]ProfileUsageStats{}
	}
	store.UsageStats[profileID] = stats
}
