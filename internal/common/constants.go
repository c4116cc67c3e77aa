// Package common provides shared constants and errors for internal packages.
// The bit values follow the FIGfont full-layout header field.
package common

import "errors"

// Horizontal smushing rules (bits 0-5)
const (
	// HRuleEqual smushes equal sub-characters (code value 1)
	HRuleEqual = 1 << 0
	// HRuleUnderscore replaces an underscore with a border sub-character (code value 2)
	HRuleUnderscore = 1 << 1
	// HRuleHierarchy keeps the sub-character from the later class (code value 4)
	HRuleHierarchy = 1 << 2
	// HRuleOppositePair turns opposing brackets into a vertical bar (code value 8)
	HRuleOppositePair = 1 << 3
	// HRuleBigX smushes diagonals into |, Y or X (code value 16)
	HRuleBigX = 1 << 4
	// HRuleHardblank smushes two hardblanks into one (code value 32)
	HRuleHardblank = 1 << 5
)

// Horizontal layout modes (bits 6-7)
const (
	HFitting  = 1 << 6
	HSmushing = 1 << 7
)

// Vertical smushing rules (bits 8-12)
const (
	VRuleEqual          = 1 << 8
	VRuleUnderscore     = 1 << 9
	VRuleHierarchy      = 1 << 10
	VRuleHorizontalLine = 1 << 11
	VRuleVerticalLine   = 1 << 12
)

// Vertical layout modes (bits 13-14). Bit 15 is unused.
const (
	VFitting  = 1 << 13
	VSmushing = 1 << 14
)

// Masks over the rule bits of each axis.
const (
	HRuleMask = HRuleEqual | HRuleUnderscore | HRuleHierarchy | HRuleOppositePair | HRuleBigX | HRuleHardblank
	VRuleMask = VRuleEqual | VRuleUnderscore | VRuleHierarchy | VRuleHorizontalLine | VRuleVerticalLine
)

// Common errors (re-exported by the figfont package)
var (
	// ErrUnknownFont is returned when font is nil
	ErrUnknownFont = errors.New("unknown font")
	// ErrUnsupportedRune is returned when a rune is not in the font's character set
	ErrUnsupportedRune = errors.New("unsupported rune")
	// ErrBadFontFormat is returned when font data has an invalid structure
	ErrBadFontFormat = errors.New("bad font format")
)
