package services

import "strings"

// NormalizeID reduces a raw CNPJ/CPF value to its decimal digits so both
// feeds join on the same canonical key. A trailing ".0" left behind by a
// prior numeric coercion is stripped before digit extraction. Missing or
// digit-free values normalize to the empty string; no checksum or length
// validation is performed, so malformed IDs may collide.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, ".0")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanName upper-cases and trims a free-text name for display consistency
// and for use as a fallback join key.
func CleanName(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
