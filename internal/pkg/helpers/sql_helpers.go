package helpers

// StringValue dereferences a string pointer, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
