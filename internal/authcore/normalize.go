package authcore

import "strings"

// providerAliases folds provider spellings seen across configs and vendor
// SDKs onto one canonical name.
var providerAliases = map[string]string{
	"google":         "gemini",
	"google-genai":   "gemini",
	"vertex":         "gemini",
	"vertex-ai":      "gemini",
	"anthropic":      "claude",
	"claude-code":    "claude",
	"github":         "copilot",
	"github-copilot": "copilot",
	"open-ai":        "openai",
	"azure-openai":   "openai",
}

// Normalize canonicalizes a provider name: lowercase, trim, fold known
// aliases.
func Normalize(provider string) string {
	p := strings.ToLower(strings.TrimSpace(provider))
	if canon, ok := providerAliases[p]; ok {
		return canon
	}
	return p
}
