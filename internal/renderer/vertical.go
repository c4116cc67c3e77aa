package renderer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ryanlewis/figfont/internal/parser"
)

// VerticalVerdict is the outcome of checking whether two stacked rows may
// merge.
type VerticalVerdict int

const (
	// VerticalValid means the rows merge and the scan may go on.
	VerticalValid VerticalVerdict = iota
	// VerticalEnd means the rows merge but no deeper overlap is allowed.
	VerticalEnd
	// VerticalInvalid means the rows may not merge.
	VerticalInvalid
)

func (v VerticalVerdict) String() string {
	switch v {
	case VerticalValid:
		return "valid"
	case VerticalEnd:
		return "end"
	case VerticalInvalid:
		return "invalid"
	default:
		return "VerticalVerdict(" + strconv.Itoa(int(v)) + ")"
	}
}

// CanVerticalSmush decides whether the upper row may be merged with the
// lower row placed directly on top of it.
func CanVerticalSmush(upper, lower string, rules parser.FittingRules) VerticalVerdict {
	mode := rules.VerticalMode()
	if mode == parser.FullWidth {
		return VerticalInvalid
	}

	up, lp := acquireRunes(upper), acquireRunes(lower)
	defer releaseRunes(up)
	defer releaseRunes(lp)
	u, l := *up, *lp

	n := min(len(u), len(l))
	if n == 0 {
		return VerticalInvalid
	}
	universal := rules.UniversalVertical()

	end := false
	for i := 0; i < n; i++ {
		uc, lc := u[i], l[i]
		if uc == ' ' || lc == ' ' {
			continue
		}
		switch {
		case mode == parser.Fitting:
			return VerticalInvalid
		case universal:
			return VerticalEnd
		}
		if rules.VerticalRule(5) {
			if _, ok := VSmushVerticalLine(uc, lc); ok {
				continue
			}
		}
		if _, _, ok := smushVertical(uc, lc, rules); !ok {
			return VerticalInvalid
		}
		end = true
	}
	if end {
		return VerticalEnd
	}
	return VerticalValid
}

// VerticalOverlap returns how many trailing rows of upper the leading rows
// of lower may cover.
func VerticalOverlap(upper, lower []string, rules parser.FittingRules) int {
	maxDist := len(upper)
	dist := 1
	for ; dist <= maxDist; dist++ {
		tail := upper[len(upper)-dist:]
		head := lower[:min(dist, len(lower))]

		verdict := VerticalValid
		for i := range head {
			v := CanVerticalSmush(tail[i], head[i], rules)
			if v == VerticalInvalid {
				verdict = v
				break
			}
			if v == VerticalEnd {
				verdict = v
			}
		}
		if verdict == VerticalInvalid {
			return dist - 1
		}
		if verdict == VerticalEnd {
			return dist
		}
	}
	return maxDist
}

// SmushVertical stacks lower under upper, merging overlap rows.
func SmushVertical(upper, lower []string, overlap int, rules parser.FittingRules) []string {
	overlap = min(max(overlap, 0), len(upper))
	start := len(upper) - overlap

	out := make([]string, 0, len(upper)+len(lower))
	out = append(out, upper[:start]...)
	for i := 0; i < overlap; i++ {
		if i >= len(lower) {
			out = append(out, upper[start+i])
			continue
		}
		out = append(out, smushVerticalRow(upper[start+i], lower[i], rules))
	}
	if overlap < len(lower) {
		out = append(out, lower[overlap:]...)
	}
	return out
}

func smushVerticalRow(upper, lower string, rules parser.FittingRules) string {
	up, lp := acquireRunes(upper), acquireRunes(lower)
	defer releaseRunes(up)
	defer releaseRunes(lp)
	u, l := *up, *lp

	controlled := rules.VerticalMode() == parser.Smushing && !rules.UniversalVertical()
	out := make([]rune, 0, min(len(u), len(l)))
	for i, n := 0, min(len(u), len(l)); i < n; i++ {
		uc, lc := u[i], l[i]
		if uc != ' ' && lc != ' ' && controlled {
			if c, _, ok := smushVertical(uc, lc, rules); ok {
				out = append(out, c)
				continue
			}
		}
		// vertical overlay has no hardblank exception
		out = append(out, SmushUniversal(uc, lc, ' '))
	}
	return string(out)
}

// padBlock right-pads every row to width columns.
func padBlock(rows []string, width int) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n < width {
			row += strings.Repeat(" ", width-n)
		}
		out[i] = row
	}
	return out
}

// blockWidth returns the widest row of a block in runes.
func blockWidth(rows []string) int {
	w := 0
	for _, row := range rows {
		w = max(w, utf8.RuneCountInString(row))
	}
	return w
}

// stackBlocks pads both blocks to a common width and merges them using the
// vertical layout.
func stackBlocks(upper, lower []string, rules parser.FittingRules) ([]string, int) {
	width := max(blockWidth(upper), blockWidth(lower))
	upper, lower = padBlock(upper, width), padBlock(lower, width)
	overlap := VerticalOverlap(upper, lower, rules)
	return SmushVertical(upper, lower, overlap, rules), overlap
}
