package transfer

// ValidationErrors maps an offending field to its message. A save that
// produces any entry is rejected as a whole; nothing is persisted.
type ValidationErrors map[string]string

func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}
