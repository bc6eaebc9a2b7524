package inspector

import (
	"testing"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag        string
		wantWidget Widget
		wantOpts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:100", WidgetBar, map[string]string{"max": "100"}},
		{"label,fmt:%.1f s", WidgetLabel, map[string]string{"fmt": "%.1f s"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"sparkle", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		w, opts := ParseTag(tt.tag)
		if w != tt.wantWidget {
			t.Errorf("ParseTag(%q) widget = %v, want %v", tt.tag, w, tt.wantWidget)
		}
		if len(opts) != len(tt.wantOpts) {
			t.Errorf("ParseTag(%q) options = %v, want %v", tt.tag, opts, tt.wantOpts)
			continue
		}
		for k, v := range tt.wantOpts {
			if opts[k] != v {
				t.Errorf("ParseTag(%q) option %q = %q, want %q", tt.tag, k, opts[k], v)
			}
		}
	}
}

func TestExtractFieldsCreature(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	c := components.NewCreature(components.NewRules(cfg), 100, 300, 64)
	c.Activity = components.ActivityDancing
	c.SetTarget(5, 6)

	fields := ExtractFields(c)
	byName := make(map[string]Field, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	hunger, ok := byName["Hunger"]
	if !ok || hunger.Widget != WidgetBar || GetMax(hunger.Options) != 100 {
		t.Errorf("Hunger field = %+v", hunger)
	}
	if got := FormatValue(byName["Activity"].Value, ""); got != "dancing" {
		t.Errorf("Activity formats as %q, want dancing", got)
	}
	if f, ok := byName["Target.X"]; !ok || f.Value != 5.0 {
		t.Errorf("Target.X = %+v, want flattened 5", f)
	}
	if f := byName["HasTarget"]; f.Widget != WidgetBool {
		t.Errorf("HasTarget widget = %v, want bool", f.Widget)
	}
	if got := FormatValue(byName["Age"].Value, byName["Age"].Options["fmt"]); got != "0.0 s" {
		t.Errorf("Age formats as %q", got)
	}
	if _, ok := byName["rules"]; ok {
		t.Error("unexported field extracted")
	}
}

func TestExtractFieldsNonStruct(t *testing.T) {
	if fields := ExtractFields(42); fields != nil {
		t.Errorf("ExtractFields(42) = %v, want nil", fields)
	}
	var c *components.Creature
	if fields := ExtractFields(c); fields != nil {
		t.Errorf("ExtractFields(nil) = %v, want nil", fields)
	}
}

func TestGetMaxDefault(t *testing.T) {
	if got := GetMax(map[string]string{"max": "nope"}); got != 1 {
		t.Errorf("GetMax = %v, want 1", got)
	}
	if got := GetMax(nil); got != 1 {
		t.Errorf("GetMax(nil) = %v, want 1", got)
	}
}
