package renderer

import (
	"testing"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/internal/fonttest"
)

const benchmarkText = "Hello, World!"

// benchSpec draws every character as a three-row box of itself.
var benchSpec = fonttest.Spec{
	Height:    3,
	MaxLength: 6,
	Default: func(code rune, _ int) []string {
		c := string(code)
		return []string{c + c + c + "  ", c + " " + c + "  ", c + c + c + "  "}
	},
	Glyphs: map[rune][]string{' ': {"$", "$", "$"}},
}

func benchmarkRender(b *testing.B, text string, opts *Options) {
	font := buildFont(b, benchSpec)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Render(text, font, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderFullWidth(b *testing.B) {
	benchmarkRender(b, benchmarkText, &Options{Rules: rules(0)})
}

func BenchmarkRenderFitting(b *testing.B) {
	benchmarkRender(b, benchmarkText, &Options{Rules: rules(common.HFitting)})
}

func BenchmarkRenderSmushing(b *testing.B) {
	benchmarkRender(b, benchmarkText, &Options{Rules: rules(common.HSmushing | common.HRuleMask)})
}

func BenchmarkRenderSmushingLong(b *testing.B) {
	benchmarkRender(b, "The quick brown fox jumps over the lazy dog. 1234567890",
		&Options{Rules: rules(common.HSmushing | common.HRuleMask)})
}

func BenchmarkRenderRTL(b *testing.B) {
	benchmarkRender(b, benchmarkText, &Options{PrintDirection: intPtr(1)})
}

func BenchmarkRenderWrapped(b *testing.B) {
	benchmarkRender(b, "The quick brown fox jumps over the lazy dog", &Options{Width: intPtr(40)})
}

func BenchmarkRenderMultiline(b *testing.B) {
	benchmarkRender(b, "Hello\nWorld\n!", &Options{
		Rules: rules(common.HSmushing | common.HRuleMask | common.VSmushing | common.VRuleMask),
	})
}

func BenchmarkRowOverlap(b *testing.B) {
	r := rules(common.HSmushing | common.HRuleMask)
	for i := 0; i < b.N; i++ {
		RowOverlap("| _ /   ", "   \\ _ |", *r, '$')
	}
}
