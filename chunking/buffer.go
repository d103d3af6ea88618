package chunking

import (
	"strings"
	"unicode/utf8"
)

// buffer accumulates lines and tracks its length in runes so overflow checks
// do not rescan the text.
type buffer struct {
	sb    strings.Builder
	runes int
}

func newBuffer() *buffer {
	return &buffer{}
}

func (b *buffer) len() int {
	return b.runes
}

func (b *buffer) appendLine(line string, lineLen int) {
	b.sb.WriteString(line)
	b.sb.WriteByte('\n')
	b.runes += lineLen + 1
}

func (b *buffer) reset() {
	b.sb.Reset()
	b.runes = 0
}

func (b *buffer) String() string {
	return b.sb.String()
}

// tail returns the last n runes of the buffer, or all of it when n is at
// least its length. n <= 0 yields "".
func (b *buffer) tail(n int) string {
	if n <= 0 {
		return ""
	}
	s := b.sb.String()
	if n >= b.runes {
		return s
	}
	i := len(s)
	for ; n > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return s[i:]
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
