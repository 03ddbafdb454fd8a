package survey

import "strings"

// IsValidEmail reports whether value is an acceptable email address.
// The rules are deliberately literal rather than RFC-strict: exactly one
// "@" that is neither first nor last, at least one "." that is neither
// first nor last, and the character immediately after the "@" must not be
// ".". Note the "." is not required to come after the "@". Non-string
// values are invalid.
func IsValidEmail(value any) bool {
	email, ok := value.(string)
	if !ok {
		return false
	}

	if strings.Count(email, "@") != 1 ||
		strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return false
	}
	if !strings.Contains(email, ".") ||
		strings.HasPrefix(email, ".") || strings.HasSuffix(email, ".") {
		return false
	}
	if email[strings.Index(email, "@")+1] == '.' {
		return false
	}

	return true
}

// RemoveRowsWithoutMail returns a new table holding only the rows whose
// email field passes IsValidEmail, renumbered contiguously in original
// relative order. The loaded table is unchanged.
func (a *Analyzer) RemoveRowsWithoutMail() (Table, error) {
	if a.data == nil {
		return nil, a.errNoData("RemoveRowsWithoutMail")
	}

	corrected := make(Table, 0, len(a.data))
	for _, rec := range a.data {
		if IsValidEmail(rec.Email) {
			corrected = append(corrected, rec)
		}
	}
	return corrected, nil
}
