package stringart

import (
	"fmt"
	"strings"
)

// Mode selects the scoring policy, halt predicate, and path layout of a run.
type Mode uint8

const (
	// ModeDarkness follows a single black path over a grayscale reference.
	// A line scores the darkness still under it, Σ(255 - v), and each
	// accepted line lightens the working copy. The run halts when no line
	// scores above zero.
	ModeDarkness Mode = iota

	// ModeColor grows one path per palette color over a shared white
	// canvas. A line scores the reduction in squared RGB error its stroke
	// would bring. The run halts when the best move does not reduce error.
	ModeColor

	// ModeAccuracy follows a single black path over a bi-level reference
	// and classifies each pixel under a line as ink (not white) or blank
	// (white). More ink wins, then less blank. The run halts once the best
	// line's ink ratio falls below the quality threshold.
	ModeAccuracy
)

var modeNames = [...]string{
	ModeDarkness: "darkness",
	ModeColor:    "color",
	ModeAccuracy: "accuracy",
}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// MultiPath reports whether the mode grows one path per palette color.
func (m Mode) MultiPath() bool {
	return m == ModeColor
}

// DefaultReuse returns the line-reuse policy the mode uses unless
// overridden.
func (m Mode) DefaultReuse() ReusePolicy {
	if m == ModeColor {
		return ReuseAllowed
	}
	return ReuseForbidden
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("stringart: unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ReusePolicy controls whether a path may draw the same pin pair twice.
type ReusePolicy uint8

const (
	// ReuseDefault defers to Mode.DefaultReuse.
	ReuseDefault ReusePolicy = iota
	// ReuseForbidden records every drawn pair and never offers it again
	// to the same path.
	ReuseForbidden
	// ReuseAllowed lets a path redraw a pair; error reduction saturates
	// on its own.
	ReuseAllowed
)

var reuseNames = [...]string{
	ReuseDefault:   "default",
	ReuseForbidden: "forbid",
	ReuseAllowed:   "allow",
}

// String returns the policy name.
func (r ReusePolicy) String() string {
	if int(r) < len(reuseNames) {
		return reuseNames[r]
	}
	return fmt.Sprintf("ReusePolicy(%d)", r)
}

// ParseReusePolicy parses a policy name as returned by ReusePolicy.String.
func ParseReusePolicy(s string) (ReusePolicy, error) {
	for r, name := range reuseNames {
		if strings.EqualFold(s, name) {
			return ReusePolicy(r), nil
		}
	}
	return 0, fmt.Errorf("stringart: unknown reuse policy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r ReusePolicy) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ReusePolicy) UnmarshalText(b []byte) error {
	v, err := ParseReusePolicy(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
