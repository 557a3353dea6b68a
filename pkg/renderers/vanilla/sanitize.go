package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	hintPolicyOnce sync.Once
	hintPolicy     *bluemonday.Policy
)

// sanitizeHint keeps inline formatting in configuration hints and drops
// everything else.
func sanitizeHint(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(hintSanitizer().Sanitize(trimmed))
}

func hintSanitizer() *bluemonday.Policy {
	hintPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "b", "i", "code", "kbd", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("https", "mailto")
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		hintPolicy = policy
	})
	return hintPolicy
}
