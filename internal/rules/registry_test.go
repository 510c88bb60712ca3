package rules_test

import (
	"testing"

	"sift/internal/diag"
	"sift/internal/rules"
)

func TestRegistryDefaults(t *testing.T) {
	reg := rules.NewRegistry()
	active := reg.Active()
	if len(active) != 1 {
		t.Fatalf("got %d active rules, want 1", len(active))
	}
	if active[0].Rule.Name() != "prefer-type-check" {
		t.Errorf("unexpected rule %q", active[0].Rule.Name())
	}
	if active[0].Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", active[0].Severity)
	}
}

func TestRegistryApplySettings(t *testing.T) {
	t.Run("disable", func(t *testing.T) {
		reg := rules.NewRegistry()
		off := false
		if err := reg.Apply(map[string]rules.Settings{
			"prefer-type-check": {Enabled: &off},
		}); err != nil {
			t.Fatal(err)
		}
		if active := reg.Active(); len(active) != 0 {
			t.Errorf("got %d active rules, want 0", len(active))
		}
	})

	t.Run("severity_override", func(t *testing.T) {
		reg := rules.NewRegistry()
		sev := diag.SevError
		if err := reg.Apply(map[string]rules.Settings{
			"prefer-type-check": {Severity: &sev},
		}); err != nil {
			t.Fatal(err)
		}
		active := reg.Active()
		if len(active) != 1 || active[0].Severity != diag.SevError {
			t.Errorf("severity override not applied: %+v", active)
		}
	})

	t.Run("unknown_rule", func(t *testing.T) {
		reg := rules.NewRegistry()
		err := reg.Apply(map[string]rules.Settings{"no-such-rule": {}})
		if err == nil {
			t.Error("expected an error for an unknown rule name")
		}
	})
}
