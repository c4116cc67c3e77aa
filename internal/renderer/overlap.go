package renderer

import "github.com/ryanlewis/figfont/internal/parser"

// RowOverlap returns how many trailing columns of left the leading columns
// of right may cover.
//
// Distances are tried from 1 up to the shorter row length. A distance at
// which no pair of visible sub-characters meet is always allowed. At the
// first distance where they do meet:
//   - Fitting backs off one column, so glyphs touch but never merge.
//   - Universal smushing stops there and lets the right glyph overlay.
//   - Controlled smushing stops there if every colliding pair smushes under
//     an enabled rule, and backs off one column otherwise.
//
// FullWidth never overlaps.
func RowOverlap(left, right string, rules parser.FittingRules, hardblank rune) int {
	if rules.HorizontalMode() == parser.FullWidth {
		return 0
	}

	lp, rp := acquireRunes(left), acquireRunes(right)
	defer releaseRunes(lp)
	defer releaseRunes(rp)
	return runeOverlap(*lp, *rp, rules, hardblank)
}

func runeOverlap(l, r []rune, rules parser.FittingRules, hardblank rune) int {
	mode := rules.HorizontalMode()
	if mode == parser.FullWidth {
		return 0
	}
	maxDist := min(len(l), len(r))
	universal := rules.UniversalHorizontal()

	for dist := 1; dist <= maxDist; dist++ {
		seg := l[len(l)-dist:]
		collided, smushable := false, true
		for i, lc := range seg {
			rc := r[i]
			if lc == ' ' || rc == ' ' {
				continue
			}
			collided = true
			if mode == parser.Fitting || universal {
				break
			}
			if _, _, ok := smushHorizontal(lc, rc, rules, hardblank); !ok {
				smushable = false
				break
			}
		}
		if !collided {
			continue
		}
		if mode == parser.Fitting || !smushable {
			return dist - 1
		}
		return dist
	}
	return maxDist
}

// GlyphOverlap returns the overlap two blocks of rows can share: the
// smallest RowOverlap over their rows.
func GlyphOverlap(left, right []string, rules parser.FittingRules, hardblank rune) int {
	rows := min(len(left), len(right))
	if rows == 0 || rules.HorizontalMode() == parser.FullWidth {
		return 0
	}

	overlap := -1
	for row := 0; row < rows; row++ {
		d := RowOverlap(left[row], right[row], rules, hardblank)
		if overlap < 0 || d < overlap {
			overlap = d
		}
		if overlap == 0 {
			break
		}
	}
	return overlap
}

// SmushGlyphs joins right onto left, overlapping by the given number of
// columns. Colliding sub-characters go through the enabled rules and fall
// back to SmushUniversal; all other overlapped pairs use SmushUniversal.
func SmushGlyphs(left, right []string, overlap int, rules parser.FittingRules, hardblank rune) []string {
	out := make([]string, max(len(left), len(right)))
	for row := range out {
		var l, r string
		if row < len(left) {
			l = left[row]
		}
		if row < len(right) {
			r = right[row]
		}
		out[row] = smushRow(l, r, overlap, rules, hardblank, nil)
	}
	return out
}

// smushDecision describes one merged column; the render driver forwards
// it to the debug session.
type smushDecision struct {
	col         int
	left, right rune
	result      rune
	rule        int
}

func smushRow(left, right string, overlap int, rules parser.FittingRules, hardblank rune, trace func(smushDecision)) string {
	lp, rp := acquireRunes(left), acquireRunes(right)
	defer releaseRunes(lp)
	defer releaseRunes(rp)
	l, r := *lp, *rp

	overlap = min(max(overlap, 0), len(l))
	start := len(l) - overlap

	out := make([]rune, 0, len(l)+len(r))
	out = append(out, l[:start]...)
	controlled := rules.HorizontalMode() == parser.Smushing && !rules.UniversalHorizontal()

	for i := 0; i < overlap; i++ {
		lc, rc := l[start+i], ' '
		if i < len(r) {
			rc = r[i]
		}
		if lc == ' ' || rc == ' ' || !controlled {
			out = append(out, SmushUniversal(lc, rc, hardblank))
			continue
		}
		c, rule, ok := smushHorizontal(lc, rc, rules, hardblank)
		if !ok {
			c = SmushUniversal(lc, rc, hardblank)
		}
		if trace != nil {
			trace(smushDecision{col: start + i, left: lc, right: rc, result: c, rule: rule})
		}
		out = append(out, c)
	}
	if overlap < len(r) {
		out = append(out, r[overlap:]...)
	}
	return string(out)
}
