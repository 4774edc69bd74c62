package blindfour

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blindfour/internal/core"
)

// Turn time limits for the title option editor, in seconds.
const (
	TurnTimeMin = 3
	TurnTimeMax = 300
)

// OptionField identifies a row of the title option editor.
type OptionField int

const (
	FieldTurnTime OptionField = iota
	FieldInvert
	FieldBlindHorizontal
	FieldBlindVertical
	fieldCount
)

func (f OptionField) String() string {
	switch f {
	case FieldTurnTime:
		return "Time Limit"
	case FieldInvert:
		return "Invert"
	case FieldBlindHorizontal:
		return "Horizontal Blind"
	case FieldBlindVertical:
		return "Vertical Blind"
	default:
		return "Unknown"
	}
}

// Settings is the rule set edited on the title screen. It survives
// between matches so players can rematch with the same rules.
type Settings struct {
	TurnTime        int // seconds, 0 = OFF
	Invert          bool
	BlindHorizontal int // 0 = OFF, up to board width
	BlindVertical   int // 0 = OFF, up to board height

	width    int
	height   int
	selected OptionField
}

// NewSettings seeds the editor from opts, clamping values to the editor ranges.
func NewSettings(opts Options) *Settings {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	s := &Settings{
		TurnTime:        int(opts.TurnTime / time.Second),
		Invert:          opts.InvertEnabled,
		BlindHorizontal: opts.BlindHorizontal,
		BlindVertical:   opts.BlindVertical,
		width:           opts.Width,
		height:          opts.Height,
	}
	s.normalize()
	return s
}

func (s *Settings) normalize() {
	switch {
	case s.TurnTime <= 0:
		s.TurnTime = 0
	case s.TurnTime < TurnTimeMin:
		s.TurnTime = TurnTimeMin
	case s.TurnTime > TurnTimeMax:
		s.TurnTime = TurnTimeMax
	}
	s.BlindHorizontal = core.Clamp(s.BlindHorizontal, 0, s.width)
	s.BlindVertical = core.Clamp(s.BlindVertical, 0, s.height)
}

// Selected returns the highlighted field.
func (s *Settings) Selected() OptionField {
	return s.selected
}

// Select moves the highlight by delta rows without wrapping.
func (s *Settings) Select(delta int) {
	s.selected = OptionField(core.Clamp(int(s.selected)+delta, 0, int(fieldCount)-1))
}

// Modify steps the highlighted field by delta (-1 or +1).
func (s *Settings) Modify(delta int) {
	if delta == 0 {
		return
	}
	switch s.selected {
	case FieldTurnTime:
		switch {
		case s.TurnTime == 0 && delta > 0:
			s.TurnTime = TurnTimeMin
		case s.TurnTime == 0:
			// already OFF
		default:
			s.TurnTime += delta
			if s.TurnTime < TurnTimeMin {
				s.TurnTime = 0
			} else if s.TurnTime > TurnTimeMax {
				s.TurnTime = TurnTimeMax
			}
		}
	case FieldInvert:
		s.Invert = !s.Invert
	case FieldBlindHorizontal:
		s.BlindHorizontal = core.Clamp(s.BlindHorizontal+delta, 0, s.width)
	case FieldBlindVertical:
		s.BlindVertical = core.Clamp(s.BlindVertical+delta, 0, s.height)
	}
}

// Value renders the current value of field f.
func (s *Settings) Value(f OptionField) string {
	switch f {
	case FieldTurnTime:
		if s.TurnTime == 0 {
			return "OFF"
		}
		return fmt.Sprintf("%d sec", s.TurnTime)
	case FieldInvert:
		return onOff(s.Invert)
	case FieldBlindHorizontal:
		return countOrOff(s.BlindHorizontal)
	case FieldBlindVertical:
		return countOrOff(s.BlindVertical)
	default:
		return ""
	}
}

// Lines returns one display line per field, the selected one prefixed with "> ".
func (s *Settings) Lines() []string {
	lines := make([]string, 0, fieldCount)
	for f := FieldTurnTime; f < fieldCount; f++ {
		prefix := "  "
		if f == s.selected {
			prefix = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-16s : %s", prefix, f, s.Value(f)))
	}
	return lines
}

// Options converts the edited rules into match options.
func (s *Settings) Options() Options {
	return Options{
		Width:           s.width,
		Height:          s.height,
		TurnTime:        time.Duration(s.TurnTime) * time.Second,
		InvertEnabled:   s.Invert,
		BlindHorizontal: s.BlindHorizontal,
		BlindVertical:   s.BlindVertical,
	}
}

// Summary is a one-line description of the rules, e.g. "time 30s, invert, blind h3".
func (o Options) Summary() string {
	out := ""
	add := func(part string) {
		if out != "" {
			out += ", "
		}
		out += part
	}
	if o.TurnTime > 0 {
		add(fmt.Sprintf("time %ds", int(o.TurnTime/time.Second)))
	}
	if o.InvertEnabled {
		add("invert")
	}
	if o.BlindHorizontal > 0 {
		add(fmt.Sprintf("blind h%d", o.BlindHorizontal))
	}
	if o.BlindVertical > 0 {
		add(fmt.Sprintf("blind v%d", o.BlindVertical))
	}
	if out == "" {
		return "classic"
	}
	return out
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func countOrOff(n int) string {
	if n == 0 {
		return "OFF"
	}
	return fmt.Sprintf("%d", n)
}
