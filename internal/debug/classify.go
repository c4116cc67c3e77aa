package debug

var (
	horizontalRuleNames = [...]string{"equal", "underscore", "hierarchy", "opposite-pair", "big-x", "hardblank"}
	verticalRuleNames   = [...]string{"equal", "underscore", "hierarchy", "horizontal-line", "vertical-line"}
)

// HorizontalRuleName names horizontal rule n (1-based). Rule 0 is the
// universal overlay.
func HorizontalRuleName(n int) string {
	return ruleName(horizontalRuleNames[:], n)
}

// VerticalRuleName names vertical rule n (1-based).
func VerticalRuleName(n int) string {
	return ruleName(verticalRuleNames[:], n)
}

func ruleName(names []string, n int) string {
	if n == 0 {
		return "universal"
	}
	if n < 0 || n > len(names) {
		return "unknown"
	}
	return names[n-1]
}

// RuleNames lists the names of the enabled rules; enabled reports whether
// rule n is on.
func RuleNames(count int, enabled func(n int) bool, name func(n int) string) []string {
	names := []string{}
	for n := 1; n <= count; n++ {
		if enabled(n) {
			names = append(names, name(n))
		}
	}
	return names
}
