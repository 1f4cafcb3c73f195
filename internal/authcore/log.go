package authcore

import log "github.com/sirupsen/logrus"

// warnQuotaExhausted is the default log sink invoked when the caller hasn't
// supplied an onQuotaExhaustion callback.
func warnQuotaExhausted(provider, model string, waitMs int64, attempt int) {
	log.Warnf("authcore: all profiles for provider=%s model=%s in cooldown, waiting %dms (attempt %d)", provider, model, waitMs, attempt)
}
