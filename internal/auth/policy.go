package auth

import "strings"

// Requirement is the access level a route demands.
type Requirement int

const (
	RequirePublic Requirement = iota
	RequireAuthenticated
	RequireAdmin
)

// Rule binds a route shape to a requirement. An empty Method matches any
// method. A pattern ending in "/*" matches the prefix before the wildcard
// and everything below it; other patterns match exactly.
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

// Policy is an ordered route classification table evaluated first-match.
type Policy struct {
	rules    []Rule
	fallback Requirement
}

// NewPolicy builds a policy. Unmatched routes get the fallback requirement.
func NewPolicy(rules []Rule, fallback Requirement) *Policy {
	return &Policy{rules: rules, fallback: fallback}
}

// Classify returns the requirement for a method and path.
func (p *Policy) Classify(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule.Requirement
		}
	}
	return p.fallback
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
