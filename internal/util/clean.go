package util

import (
	"bytes"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CleanText strips a UTF-8 byte order mark, replaces invalid UTF-8 sequences
// with U+FFFD and drops trailing newlines. src names the input in log output.
func CleanText(raw []byte, src string) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if !utf8.Valid(raw) {
		log.Warnf("%s is not valid UTF-8, replacing invalid bytes", src)
		raw = bytes.ToValidUTF8(raw, []byte(string(utf8.RuneError)))
	}
	return strings.TrimRight(string(raw), "\r\n")
}
