package document

import (
	"bytes"
	"unicode/utf8"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

func trimPrefix(raw []byte) []byte {
	return bytes.TrimSpace(bytes.TrimPrefix(raw, bom))
}

// looksLikeMarkup reports whether raw starts with a tag or declaration.
func looksLikeMarkup(raw []byte) bool {
	b := trimPrefix(raw)
	return len(b) > 0 && b[0] == '<'
}

// looksLikeText reports whether raw is plain UTF-8 text without NUL bytes.
func looksLikeText(raw []byte) bool {
	return utf8.Valid(raw) && bytes.IndexByte(raw, 0) < 0
}
