package parser

import (
	"fmt"
	"strings"

	"github.com/ryanlewis/figfont/internal/common"
)

// Mode is the layout mode of one axis.
type Mode uint8

const (
	// FullWidth places glyphs edge to edge.
	FullWidth Mode = iota
	// Fitting moves glyphs together until they touch (kerning).
	Fitting
	// Smushing overlaps glyphs by one more column, merging sub-characters.
	Smushing
)

func (m Mode) String() string {
	switch m {
	case FullWidth:
		return "full-width"
	case Fitting:
		return "fitting"
	case Smushing:
		return "smushing"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Rule counts per axis.
const (
	HorizontalRuleCount = 6
	VerticalRuleCount   = 5
)

// FittingRules is the normalized layout of a font: a mode and rule flags for
// each axis. Modes and rules are resolved together from the header and cannot
// be changed independently afterwards.
type FittingRules struct {
	hMode  Mode
	vMode  Mode
	hRules [HorizontalRuleCount]bool
	vRules [VerticalRuleCount]bool
}

var hRuleBits = [HorizontalRuleCount]int{
	common.HRuleEqual, common.HRuleUnderscore, common.HRuleHierarchy,
	common.HRuleOppositePair, common.HRuleBigX, common.HRuleHardblank,
}

var vRuleBits = [VerticalRuleCount]int{
	common.VRuleEqual, common.VRuleUnderscore, common.VRuleHierarchy,
	common.VRuleHorizontalLine, common.VRuleVerticalLine,
}

// modeFromBits picks the axis mode. Smushing wins when both bits are set.
func modeFromBits(bits, fitBit, smushBit int) Mode {
	switch {
	case bits&smushBit != 0:
		return Smushing
	case bits&fitBit != 0:
		return Fitting
	}
	return FullWidth
}

// RulesFromFullLayout decodes the 16-bit full-layout header field.
// Bit 15 is ignored.
func RulesFromFullLayout(full uint16) FittingRules {
	bits := int(full)
	fr := FittingRules{
		hMode: modeFromBits(bits, common.HFitting, common.HSmushing),
		vMode: modeFromBits(bits, common.VFitting, common.VSmushing),
	}
	for i, b := range hRuleBits {
		fr.hRules[i] = bits&b != 0
	}
	for i, b := range vRuleBits {
		fr.vRules[i] = bits&b != 0
	}
	return fr
}

// RulesFromOldLayout decodes the legacy old-layout header field:
// -1 is full width, 0 is fitting, and any other value is horizontal
// smushing with the rules taken from its low bits. The vertical axis is
// always full width.
func RulesFromOldLayout(old int8) FittingRules {
	switch old {
	case -1:
		return FittingRules{}
	case 0:
		return FittingRules{hMode: Fitting}
	}
	bits := int(uint16(int16(old)))
	fr := FittingRules{hMode: Smushing}
	for i, b := range hRuleBits {
		fr.hRules[i] = bits&b != 0
	}
	return fr
}

// ResolveFittingRules prefers the full-layout field when the header carried
// one, and falls back to the old-layout field otherwise.
func ResolveFittingRules(old int8, full uint16, fullSet bool) FittingRules {
	if fullSet {
		return RulesFromFullLayout(full)
	}
	return RulesFromOldLayout(old)
}

// HorizontalMode returns the horizontal layout mode.
func (fr FittingRules) HorizontalMode() Mode { return fr.hMode }

// VerticalMode returns the vertical layout mode.
func (fr FittingRules) VerticalMode() Mode { return fr.vMode }

// HorizontalRule reports whether horizontal rule n (1-6) is enabled.
func (fr FittingRules) HorizontalRule(n int) bool {
	if n < 1 || n > HorizontalRuleCount {
		return false
	}
	return fr.hRules[n-1]
}

// VerticalRule reports whether vertical rule n (1-5) is enabled.
func (fr FittingRules) VerticalRule(n int) bool {
	if n < 1 || n > VerticalRuleCount {
		return false
	}
	return fr.vRules[n-1]
}

// UniversalHorizontal reports horizontal smushing with no rule enabled.
func (fr FittingRules) UniversalHorizontal() bool {
	return fr.hMode == Smushing && fr.hRules == [HorizontalRuleCount]bool{}
}

// UniversalVertical reports vertical smushing with no rule enabled.
func (fr FittingRules) UniversalVertical() bool {
	return fr.vMode == Smushing && fr.vRules == [VerticalRuleCount]bool{}
}

// FullLayout encodes the rules back into a full-layout bit field.
func (fr FittingRules) FullLayout() uint16 {
	bits := 0
	switch fr.hMode {
	case Fitting:
		bits |= common.HFitting
	case Smushing:
		bits |= common.HSmushing
	}
	switch fr.vMode {
	case Fitting:
		bits |= common.VFitting
	case Smushing:
		bits |= common.VSmushing
	}
	for i, on := range fr.hRules {
		if on {
			bits |= hRuleBits[i]
		}
	}
	for i, on := range fr.vRules {
		if on {
			bits |= vRuleBits[i]
		}
	}
	return uint16(bits)
}

// String renders the rules as "h=smushing[1,2] v=full-width[]".
func (fr FittingRules) String() string {
	var sb strings.Builder
	sb.WriteString("h=")
	sb.WriteString(fr.hMode.String())
	writeRuleList(&sb, fr.hRules[:])
	sb.WriteString(" v=")
	sb.WriteString(fr.vMode.String())
	writeRuleList(&sb, fr.vRules[:])
	return sb.String()
}

func writeRuleList(sb *strings.Builder, rules []bool) {
	sb.WriteByte('[')
	first := true
	for i, on := range rules {
		if !on {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		fmt.Fprintf(sb, "%d", i+1)
		first = false
	}
	sb.WriteByte(']')
}
