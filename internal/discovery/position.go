package discovery

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// OffsetAt converts a 1-based line and 1-based rune column into a byte offset into buffer.
// A column past the end of the line clamps to the line end.
func OffsetAt(buffer string, line, column int) (int, error) {
	if line < 1 || column < 1 {
		return 0, fmt.Errorf("invalid position %d:%d", line, column)
	}

	offset := 0
	for l := 1; l < line; l++ {
		nl := strings.IndexByte(buffer[offset:], '\n')
		if nl < 0 {
			return 0, fmt.Errorf("line %d is past the end of the buffer", line)
		}
		offset += nl + 1
	}

	lineText := buffer[offset:]
	if nl := strings.IndexByte(lineText, '\n'); nl >= 0 {
		lineText = lineText[:nl]
	}
	for c := 1; c < column && len(lineText) > 0; c++ {
		_, size := utf8.DecodeRuneInString(lineText)
		offset += size
		lineText = lineText[size:]
	}
	return offset, nil
}
