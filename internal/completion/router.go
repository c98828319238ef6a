package completion

import (
	"context"
	"fmt"
	"strings"
)

// Router dispatches provider IDs to a backend by scheme prefix. An ID such as
// "gemini:gemini-2.0-flash" goes to the "gemini" backend with the model
// "gemini-2.0-flash"; IDs without a registered scheme go to the default.
// OpenRouter model IDs contain "/" and ":free" suffixes, so only a prefix
// before the first "/" is considered a scheme.
type Router struct {
	fallback Completer
	schemes  map[string]Completer
}

func NewRouter(defaultClient Completer) *Router {
	return &Router{fallback: defaultClient, schemes: make(map[string]Completer)}
}

// Register routes IDs of the form "<scheme>:<model>" to c. A nil c marks the
// scheme as known but unconfigured, so its IDs fail instead of leaking to the
// default backend.
func (r *Router) Register(scheme string, c Completer) {
	r.schemes[scheme] = c
}

func (r *Router) Complete(ctx context.Context, providerID, prompt string) Result {
	if scheme, model, ok := splitScheme(providerID); ok {
		if c, known := r.schemes[scheme]; known {
			if c == nil {
				return Failure(fmt.Errorf("provider %q not configured", scheme))
			}
			return c.Complete(ctx, model, prompt)
		}
	}
	if r.fallback == nil {
		return Failure(fmt.Errorf("no default provider for %q", providerID))
	}
	return r.fallback.Complete(ctx, providerID, prompt)
}

func splitScheme(id string) (string, string, bool) {
	i := strings.Index(id, ":")
	if i <= 0 {
		return "", "", false
	}
	if strings.Contains(id[:i], "/") {
		return "", "", false
	}
	return id[:i], id[i+1:], true
}
