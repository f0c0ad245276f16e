package lower

import "github.com/arc-ml/arc/internal/source"

// Registry holds the registered lowering rules in registration order.
// Registration order is the tie-break: when two rules answer the same
// match level, the first registered wins. Backend rule sets layer over
// the standard set by registering first or answering a higher level.
//
// A Registry is immutable once dispatch starts and may be shared
// read-only across concurrently compiled units.
type Registry struct {
	rules []Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewStandardRegistry creates a registry pre-loaded with the standard
// rule set.
func NewStandardRegistry() *Registry {
	r := NewRegistry()
	r.Register(StandardRules()...)
	return r
}

// Register appends rules in order.
func (r *Registry) Register(rules ...Rule) {
	r.rules = append(r.rules, rules...)
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }

// Match probes every rule against the node and returns the one with the
// highest match level. The strict comparison keeps the first-registered
// rule on ties. Returns (nil, NotMe) when no rule claims the node.
func (r *Registry) Match(n *source.Node) (Rule, MatchLevel) {
	var best Rule
	bestLevel := NotMe
	for _, rule := range r.rules {
		if level := rule.IsMe(n); level > bestLevel {
			best, bestLevel = rule, level
		}
	}
	return best, bestLevel
}
