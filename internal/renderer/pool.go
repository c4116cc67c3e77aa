package renderer

import (
	"strings"
	"sync"
)

// maxRetainRunes caps the buffers kept in runeSlicePool so one very wide
// render does not pin its memory.
const maxRetainRunes = 4096

// runeSlicePool holds scratch buffers for decoding rows.
var runeSlicePool = sync.Pool{
	New: func() interface{} {
		buf := make([]rune, 0, 64)
		return &buf
	},
}

// acquireRunes decodes s into a pooled buffer. The caller must hand the
// buffer back with releaseRunes.
func acquireRunes(s string) *[]rune {
	bufPtr := runeSlicePool.Get().(*[]rune)
	buf := (*bufPtr)[:0]
	for _, r := range s {
		buf = append(buf, r)
	}
	*bufPtr = buf
	return bufPtr
}

func releaseRunes(bufPtr *[]rune) {
	if bufPtr == nil || cap(*bufPtr) > maxRetainRunes {
		return
	}
	*bufPtr = (*bufPtr)[:0]
	runeSlicePool.Put(bufPtr)
}

// builderPool holds string builders for the render driver.
var builderPool = sync.Pool{
	New: func() interface{} {
		return new(strings.Builder)
	},
}

func acquireBuilder() *strings.Builder {
	sb := builderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

func releaseBuilder(sb *strings.Builder) {
	if sb.Cap() > maxRetainRunes*4 {
		return
	}
	builderPool.Put(sb)
}
