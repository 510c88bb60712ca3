package rules

import (
	"fmt"

	"sift/internal/diag"
)

// Settings override a rule's defaults from configuration.
type Settings struct {
	Enabled  *bool
	Severity *diag.Severity
}

// ConfiguredRule is a rule with its effective severity.
type ConfiguredRule struct {
	Rule     Rule
	Severity diag.Severity
}

// Registry holds the known rules and their configuration state.
type Registry struct {
	rules    []Rule
	disabled map[string]bool
	severity map[string]diag.Severity
}

// NewRegistry returns a registry with all built-in rules registered and
// enabled at their default severities.
func NewRegistry() *Registry {
	reg := &Registry{
		disabled: make(map[string]bool),
		severity: make(map[string]diag.Severity),
	}
	reg.register(PreferTypeCheck{})
	return reg
}

func (reg *Registry) register(r Rule) {
	reg.rules = append(reg.rules, r)
}

// Apply overlays configuration settings. Unknown rule names are an error so
// that config typos do not silently disable linting.
func (reg *Registry) Apply(settings map[string]Settings) error {
	known := make(map[string]bool, len(reg.rules))
	for _, r := range reg.rules {
		known[r.Name()] = true
	}
	for name, s := range settings {
		if !known[name] {
			return fmt.Errorf("unknown rule %q", name)
		}
		if s.Enabled != nil {
			reg.disabled[name] = !*s.Enabled
		}
		if s.Severity != nil {
			reg.severity[name] = *s.Severity
		}
	}
	return nil
}

// Active returns the enabled rules with effective severities, in
// registration order.
func (reg *Registry) Active() []ConfiguredRule {
	out := make([]ConfiguredRule, 0, len(reg.rules))
	for _, r := range reg.rules {
		if reg.disabled[r.Name()] {
			continue
		}
		sev := r.DefaultSeverity()
		if s, ok := reg.severity[r.Name()]; ok {
			sev = s
		}
		out = append(out, ConfiguredRule{Rule: r, Severity: sev})
	}
	return out
}
