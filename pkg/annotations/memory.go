package annotations

// NewMemory creates a store that lives only as long as the process.
func NewMemory() Store {
	return newStore(nil, nil)
}
