package figfont

import (
	"fmt"
	"strings"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/internal/parser"
)

// Layout is a FIGfont full-layout bit field, as found in the font header.
//
//   - Bits 0-5: horizontal smushing rules 1-6
//   - Bit 6: horizontal fitting (kerning)
//   - Bit 7: horizontal smushing
//   - Bits 8-12: vertical smushing rules 1-5
//   - Bit 13: vertical fitting
//   - Bit 14: vertical smushing
//
// When both the fitting and smushing bit of an axis are set, smushing
// wins. Bit 15 has no meaning and is ignored.
type Layout uint16

// Horizontal fitting modes. FitFullWidth is the absence of both bits.
const (
	FitFullWidth Layout = 0
	FitKerning   Layout = common.HFitting
	FitSmushing  Layout = common.HSmushing
)

// Horizontal smushing rules.
const (
	RuleEqualChar    Layout = common.HRuleEqual
	RuleUnderscore   Layout = common.HRuleUnderscore
	RuleHierarchy    Layout = common.HRuleHierarchy
	RuleOppositePair Layout = common.HRuleOppositePair
	RuleBigX         Layout = common.HRuleBigX
	RuleHardblank    Layout = common.HRuleHardblank
)

// Vertical fitting modes and rules.
const (
	VFitKerning        Layout = common.VFitting
	VFitSmushing       Layout = common.VSmushing
	VRuleEqualChar     Layout = common.VRuleEqual
	VRuleUnderscore    Layout = common.VRuleUnderscore
	VRuleHierarchy     Layout = common.VRuleHierarchy
	VRuleHorizontalBar Layout = common.VRuleHorizontalLine
	VRuleVerticalBar   Layout = common.VRuleVerticalLine
)

var layoutNames = []struct {
	bit  Layout
	name string
}{
	{FitKerning, "FitKerning"},
	{FitSmushing, "FitSmushing"},
	{RuleEqualChar, "RuleEqualChar"},
	{RuleUnderscore, "RuleUnderscore"},
	{RuleHierarchy, "RuleHierarchy"},
	{RuleOppositePair, "RuleOppositePair"},
	{RuleBigX, "RuleBigX"},
	{RuleHardblank, "RuleHardblank"},
	{VFitKerning, "VFitKerning"},
	{VFitSmushing, "VFitSmushing"},
	{VRuleEqualChar, "VRuleEqualChar"},
	{VRuleUnderscore, "VRuleUnderscore"},
	{VRuleHierarchy, "VRuleHierarchy"},
	{VRuleHorizontalBar, "VRuleHorizontalBar"},
	{VRuleVerticalBar, "VRuleVerticalBar"},
}

// FittingRules is the normalized layout model: a mode and a set of enabled
// rules for each axis.
type FittingRules = parser.FittingRules

// Mode is the layout mode of one axis.
type Mode = parser.Mode

// Layout modes.
const (
	FullWidth = parser.FullWidth
	Fitting   = parser.Fitting
	Smushing  = parser.Smushing
)

// FittingRules decodes the layout.
func (l Layout) FittingRules() FittingRules {
	return parser.RulesFromFullLayout(uint16(l))
}

// HasRule reports whether every bit of rule is set.
func (l Layout) HasRule(rule Layout) bool {
	return rule != 0 && l&rule == rule
}

// Normalize returns the canonical form of l: bit 15 cleared, and the
// fitting bit of an axis dropped when its smushing bit is also set.
func (l Layout) Normalize() Layout {
	return Layout(l.FittingRules().FullLayout())
}

// String lists the set bits by name, for example
// "FitSmushing|RuleEqualChar|RuleBigX".
func (l Layout) String() string {
	if l == FitFullWidth {
		return "FitFullWidth"
	}
	var parts []string
	rest := l
	for _, n := range layoutNames {
		if l&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%04X", uint16(rest)))
	}
	return strings.Join(parts, "|")
}

// LayoutFromOld converts a legacy old-layout header value: -1 is full
// width, 0 is kerning, anything else is smushing with the rules in its low
// six bits.
func LayoutFromOld(old int) Layout {
	return Layout(parser.RulesFromOldLayout(int8(old)).FullLayout())
}
