package inspector

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/warpdash/components"
	"github.com/pthm-cable/warpdash/entities"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opt    string
		val    string
	}{
		{"", WidgetAuto, "", ""},
		{"bar,max:120", WidgetBar, "max", "120"},
		{"label,fmt:%.0f", WidgetLabel, "fmt", "%.0f"},
		{"angle", WidgetAngle, "", ""},
		{"vec", WidgetVec, "", ""},
		{"skip", WidgetSkip, "", ""},
		{"unknown", WidgetAuto, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if tt.opt != "" && opts[tt.opt] != tt.val {
				t.Errorf("option %s = %q, want %q", tt.opt, opts[tt.opt], tt.val)
			}
		})
	}
}

func TestExtractEnemyFields(t *testing.T) {
	en := &components.Enemy{ID: 7, Kind: components.KindShooter, Radius: 15, HasShield: true, ShieldAngle: 1}
	fields := ExtractFields(en)

	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}
	for _, skipped := range []string{"Kind", "Color", "HitCooldown", "Visual", "HasVisual", "LastBlock"} {
		if _, ok := byName[skipped]; ok {
			t.Errorf("field %s should be skipped", skipped)
		}
	}
	if f := byName["ShieldAngle"]; f.Widget != WidgetAngle {
		t.Errorf("ShieldAngle widget = %v, want angle", f.Widget)
	}
	if f := byName["HasShield"]; f.Widget != WidgetBool || f.Value != true {
		t.Errorf("HasShield = %+v", f)
	}
	if got := GetMax(byName["Stunned"].Options); got != 120 {
		t.Errorf("Stunned max = %v, want 120", got)
	}
}

func TestExtractPayloadFields(t *testing.T) {
	j := &components.Jouster{State: components.JousterTelegraph, Dir: r2.Vec{X: 1}}
	fields := ExtractFields(j)
	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}
	if got := FormatValue(fields[0].Value, ""); got != "telegraph" {
		t.Errorf("State formats as %q, want telegraph", got)
	}
	if fields[2].Widget != WidgetVec {
		t.Errorf("Dir widget = %v, want vec", fields[2].Widget)
	}
	if FieldHeight(fields[2]) != 44 {
		t.Errorf("non-zero vec height = %d, want 44", FieldHeight(fields[2]))
	}

	var nilPtr *components.Glitch
	if ExtractFields(nilPtr) != nil {
		t.Error("nil pointer should have no fields")
	}
	if ExtractFields(42) != nil {
		t.Error("non-struct should have no fields")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    any
		fmt  string
		want string
	}{
		{1.5, "", "1.50"},
		{float32(2), "", "2.00"},
		{3, "", "3"},
		{r2.Vec{X: 1, Y: -2}, "", "(1.00, -2.00)"},
		{[]float64{0, 1.5}, "%.2f", "[0.00 1.50]"},
		{components.KindWarden, "", "warden"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.fmt); got != tt.want {
			t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.v, tt.fmt, got, tt.want)
		}
	}
}

func TestPickClosest(t *testing.T) {
	enemies := []entities.EnemyView{
		{HitPos: r2.Vec{X: 100, Y: 100}, Radius: 10},
		{HitPos: r2.Vec{X: 108, Y: 100}, Radius: 10},
	}
	if _, ok := Pick(300, 300, enemies); ok {
		t.Error("click far from enemies should pick nothing")
	}
	if _, ok := Pick(100, 100, enemies); !ok {
		t.Fatal("click on an enemy should pick it")
	}
	if _, ok := Pick(100+10+pickSlack-1, 100, enemies[:1]); !ok {
		t.Error("slack should widen the hit circle")
	}
}
