package renderer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/internal/parser"
)

var (
	fullWidthRules = parser.RulesFromFullLayout(0)
	fittingRules   = parser.RulesFromFullLayout(common.HFitting)
	universalRules = parser.RulesFromFullLayout(common.HSmushing)
	equalRules     = parser.RulesFromFullLayout(common.HSmushing | common.HRuleEqual)
	allHRules      = parser.RulesFromFullLayout(common.HSmushing | common.HRuleMask)
	hierarchyRules = parser.RulesFromFullLayout(common.HSmushing | common.HRuleHierarchy)
)

func TestRowOverlap(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		rules       parser.FittingRules
		want        int
	}{
		{"full_width", "ab", "cd", fullWidthRules, 0},
		{"fitting_touching", "ab", "cd", fittingRules, 0},
		{"fitting_padded", "ab  ", "  cd", fittingRules, 4},
		{"fitting_trailing_space", "a ", "b", fittingRules, 1},
		{"universal_collision", "ab", "cd", universalRules, 1},
		{"universal_hardblank", "a$", "b", universalRules, 1},
		{"controlled_smushable", "a|", "|b", equalRules, 1},
		{"controlled_blocked", "a|", "/b", equalRules, 0},
		{"controlled_deep", "x| ", " |y", equalRules, 3},
		{"controlled_all_rules", "||", "|/", allHRules, 1},
		{"hierarchy_neighbours_blocked", "a|", "/b", hierarchyRules, 0},
		{"hierarchy_distant", "a|", "}b", hierarchyRules, 1},
		{"empty_left", "", "abc", universalRules, 0},
		{"empty_right", "abc", "", fittingRules, 0},
		{"multibyte", "ä ", " ö", fittingRules, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RowOverlap(tt.left, tt.right, tt.rules, '$'); got != tt.want {
				t.Errorf("RowOverlap(%q, %q) = %d, want %d", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestGlyphOverlap(t *testing.T) {
	left := []string{"ab ", "a  "}
	right := []string{"cd", " d"}

	if got := GlyphOverlap(left, right, fittingRules, '$'); got != 1 {
		t.Errorf("GlyphOverlap(fitting) = %d, want 1", got)
	}
	if got := GlyphOverlap(left, right, fullWidthRules, '$'); got != 0 {
		t.Errorf("GlyphOverlap(full width) = %d, want 0", got)
	}
	if got := GlyphOverlap(nil, right, universalRules, '$'); got != 0 {
		t.Errorf("GlyphOverlap(nil left) = %d, want 0", got)
	}
}

func TestSmushGlyphs(t *testing.T) {
	tests := []struct {
		name        string
		left, right []string
		overlap     int
		rules       parser.FittingRules
		want        []string
	}{
		{
			name:    "fitting",
			left:    []string{"ab ", "a  "},
			right:   []string{"cd", " d"},
			overlap: 1,
			rules:   fittingRules,
			want:    []string{"abcd", "a  d"},
		},
		{
			name:    "universal_later_wins",
			left:    []string{"ab"},
			right:   []string{"cd"},
			overlap: 1,
			rules:   universalRules,
			want:    []string{"acd"},
		},
		{
			name:    "universal_keeps_left_under_hardblank",
			left:    []string{"ab"},
			right:   []string{"$d"},
			overlap: 1,
			rules:   universalRules,
			want:    []string{"abd"},
		},
		{
			name:    "controlled_rule",
			left:    []string{"x| "},
			right:   []string{" |y"},
			overlap: 3,
			rules:   equalRules,
			want:    []string{"x|y"},
		},
		{
			name:    "controlled_falls_back_to_universal",
			left:    []string{"ab"},
			right:   []string{"cd"},
			overlap: 1,
			rules:   equalRules,
			want:    []string{"acd"},
		},
		{
			name:    "big_x",
			left:    []string{"  /", " / ", "/  "},
			right:   []string{"\\  ", " \\ ", "  \\"},
			overlap: 1,
			rules:   allHRules,
			want:    []string{"  |  ", " / \\ ", "/   \\"},
		},
		{
			name:    "no_overlap",
			left:    []string{"a"},
			right:   []string{"b"},
			overlap: 0,
			rules:   fullWidthRules,
			want:    []string{"ab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SmushGlyphs(tt.left, tt.right, tt.overlap, tt.rules, '$')
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SmushGlyphs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSmushRow_Trace(t *testing.T) {
	var decisions []smushDecision
	got := smushRow("a[", "]b", 1, allHRules, '$', func(d smushDecision) {
		decisions = append(decisions, d)
	})
	if got != "a|b" {
		t.Errorf("smushRow = %q, want %q", got, "a|b")
	}
	want := []smushDecision{{col: 1, left: '[', right: ']', result: '|', rule: 4}}
	if diff := cmp.Diff(want, decisions, cmp.AllowUnexported(smushDecision{})); diff != "" {
		t.Errorf("decisions mismatch (-want +got):\n%s", diff)
	}
}
