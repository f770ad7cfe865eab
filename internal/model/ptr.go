package model

// String returns a pointer to s.  It keeps fixtures and tests readable when
// filling nullable columns.
func String(s string) *string { return &s }

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
