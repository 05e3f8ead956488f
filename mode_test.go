package stringart

import (
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"darkness", ModeDarkness, false},
		{"Color", ModeColor, false},
		{"ACCURACY", ModeAccuracy, false},
		{"grayscale", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMode_Text(t *testing.T) {
	for _, m := range []Mode{ModeDarkness, ModeColor, ModeAccuracy} {
		b, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", m, err)
		}
		var got Mode
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != m {
			t.Errorf("text round trip of %v = %v", m, got)
		}
	}
	if Mode(42).String() != "Mode(42)" {
		t.Errorf("Mode(42).String() = %q", Mode(42).String())
	}
}

func TestMode_Policies(t *testing.T) {
	tests := []struct {
		mode      Mode
		multiPath bool
		reuse     ReusePolicy
	}{
		{ModeDarkness, false, ReuseForbidden},
		{ModeColor, true, ReuseAllowed},
		{ModeAccuracy, false, ReuseForbidden},
	}
	for _, tt := range tests {
		if got := tt.mode.MultiPath(); got != tt.multiPath {
			t.Errorf("%v.MultiPath() = %v, want %v", tt.mode, got, tt.multiPath)
		}
		if got := tt.mode.DefaultReuse(); got != tt.reuse {
			t.Errorf("%v.DefaultReuse() = %v, want %v", tt.mode, got, tt.reuse)
		}
	}
}

func TestParseReusePolicy(t *testing.T) {
	for _, r := range []ReusePolicy{ReuseDefault, ReuseForbidden, ReuseAllowed} {
		var got ReusePolicy
		if err := got.UnmarshalText([]byte(r.String())); err != nil || got != r {
			t.Errorf("UnmarshalText(%q) = (%v, %v), want %v", r.String(), got, err, r)
		}
	}
	if _, err := ParseReusePolicy("sometimes"); err == nil {
		t.Error("ParseReusePolicy(sometimes) should fail")
	}
}
