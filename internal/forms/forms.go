// Package forms decodes and normalizes the property and client forms.
package forms

import (
	"net/url"
	"strings"
)

// optional maps a blank value to nil so the store keeps NULL instead of "".
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func field(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}
