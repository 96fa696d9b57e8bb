package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Business code prefixes.
const (
	PropertyCodePrefix = "SI"
	ClientCodePrefix   = "SIC"
)

// PendingCode is the placeholder shown in the code field of a blank creation form.
// A submitted form carrying it has no identity yet.
const PendingCode = "NUOVO"

// HasIdentity reports whether a submitted code identifies an existing row.
func HasIdentity(code string) bool {
	code = strings.TrimSpace(code)
	return code != "" && !strings.EqualFold(code, PendingCode)
}

// FormatCode builds a business code from its prefix and sequence number.
// Format: PREFIX + 4-digit zero padded number (e.g., SI0004). Numbers above
// 9999 keep all their digits.
func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// ParseCode extracts the sequence number of a code with the given prefix.
func ParseCode(prefix, code string) (int64, bool) {
	rest, ok := strings.CutPrefix(code, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
