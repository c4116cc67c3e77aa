package renderer

import (
	"strings"

	"github.com/ryanlewis/figfont/internal/parser"
)

// underscoreBorders are the characters that replace an underscore under
// rule 2. Rule 3 ranks them by their position in this string.
const underscoreBorders = `|/\[]{}()<>`

// oppositePairs holds the rule 4 brackets. Runes at most one position apart
// form a pair.
const oppositePairs = "[] {} ()"

// positions returns the indexes of l and r in set, or false when either is
// missing.
func positions(set string, l, r rune) (int, int, bool) {
	pl, pr := strings.IndexRune(set, l), strings.IndexRune(set, r)
	return pl, pr, pl >= 0 && pr >= 0
}

// SmushEqual is horizontal rule 1: two identical sub-characters merge into
// one. Hardblanks are excluded; rule 6 handles them.
func SmushEqual(l, r, hardblank rune) (rune, bool) {
	if l == r && l != hardblank {
		return l, true
	}
	return 0, false
}

// SmushUnderscore is rule 2: an underscore is replaced by a border
// character on either side.
func SmushUnderscore(l, r rune) (rune, bool) {
	switch {
	case l == '_' && strings.ContainsRune(underscoreBorders, r):
		return r, true
	case r == '_' && strings.ContainsRune(underscoreBorders, l):
		return l, true
	}
	return 0, false
}

// SmushHierarchy is rule 3. Both characters must come from |/\[]{}()<>
// and sit neither at the same nor at neighbouring positions in that
// string; the later one survives. So "/" and "\" never merge, nor do "|"
// and "/", while ">" beats ")".
func SmushHierarchy(l, r rune) (rune, bool) {
	pl, pr, ok := positions(underscoreBorders, l, r)
	if !ok || pl == pr || pl-pr == 1 || pr-pl == 1 {
		return 0, false
	}
	if pl > pr {
		return l, true
	}
	return r, true
}

// SmushOppositePair is rule 4: brackets of the same kind, in either order,
// become "|". That includes a bracket meeting its own copy.
func SmushOppositePair(l, r rune) (rune, bool) {
	if l == ' ' || r == ' ' {
		return 0, false
	}
	pl, pr, ok := positions(oppositePairs, l, r)
	if !ok || pl-pr > 1 || pr-pl > 1 {
		return 0, false
	}
	return '|', true
}

// SmushBigX is rule 5.
func SmushBigX(l, r rune) (rune, bool) {
	switch {
	case l == '/' && r == '\\':
		return '|', true
	case l == '\\' && r == '/':
		return 'Y', true
	case l == '>' && r == '<':
		return 'X', true
	}
	return 0, false
}

// SmushHardblank is rule 6: two hardblanks merge into one.
func SmushHardblank(l, r, hardblank rune) (rune, bool) {
	if l == hardblank && r == hardblank {
		return hardblank, true
	}
	return 0, false
}

// VSmushEqual is vertical rule 1. Unlike the horizontal rule it has no
// hardblank exception.
func VSmushEqual(u, l rune) (rune, bool) {
	if u == l {
		return u, true
	}
	return 0, false
}

// VSmushUnderscore is vertical rule 2, identical to the horizontal rule.
func VSmushUnderscore(u, l rune) (rune, bool) {
	return SmushUnderscore(u, l)
}

// VSmushHierarchy is vertical rule 3, identical to the horizontal rule.
func VSmushHierarchy(u, l rune) (rune, bool) {
	return SmushHierarchy(u, l)
}

// VSmushHorizontalLine is vertical rule 4: "-" and "_" stacked in either
// order become "=".
func VSmushHorizontalLine(u, l rune) (rune, bool) {
	if (u == '-' && l == '_') || (u == '_' && l == '-') {
		return '=', true
	}
	return 0, false
}

// VSmushVerticalLine is vertical rule 5. Stacked bars merge without ending
// the vertical scan, which lets a column of "|" collapse over many rows.
func VSmushVerticalLine(u, l rune) (rune, bool) {
	if u == '|' && l == '|' {
		return '|', true
	}
	return 0, false
}

// SmushUniversal overlays r on l. A space on the right keeps l, and so does
// a right hardblank over a visible left character.
func SmushUniversal(l, r, hardblank rune) rune {
	if r == ' ' {
		return l
	}
	if r == hardblank && l != ' ' {
		return l
	}
	return r
}

// smushHorizontal runs the enabled horizontal rules in ascending order and
// returns the first result together with the number of the rule that
// produced it.
func smushHorizontal(l, r rune, rules parser.FittingRules, hardblank rune) (rune, int, bool) {
	for n := 1; n <= parser.HorizontalRuleCount; n++ {
		if !rules.HorizontalRule(n) {
			continue
		}
		var (
			c  rune
			ok bool
		)
		switch n {
		case 1:
			c, ok = SmushEqual(l, r, hardblank)
		case 2:
			c, ok = SmushUnderscore(l, r)
		case 3:
			c, ok = SmushHierarchy(l, r)
		case 4:
			c, ok = SmushOppositePair(l, r)
		case 5:
			c, ok = SmushBigX(l, r)
		case 6:
			c, ok = SmushHardblank(l, r, hardblank)
		}
		if ok {
			return c, n, true
		}
	}
	return 0, 0, false
}

// smushVertical is the vertical counterpart of smushHorizontal.
func smushVertical(u, l rune, rules parser.FittingRules) (rune, int, bool) {
	for n := 1; n <= parser.VerticalRuleCount; n++ {
		if !rules.VerticalRule(n) {
			continue
		}
		var (
			c  rune
			ok bool
		)
		switch n {
		case 1:
			c, ok = VSmushEqual(u, l)
		case 2:
			c, ok = VSmushUnderscore(u, l)
		case 3:
			c, ok = VSmushHierarchy(u, l)
		case 4:
			c, ok = VSmushHorizontalLine(u, l)
		case 5:
			c, ok = VSmushVerticalLine(u, l)
		}
		if ok {
			return c, n, true
		}
	}
	return 0, 0, false
}
