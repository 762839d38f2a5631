package port

type SessionStorage interface {
	// Load returns the persisted session record, or nil when none exists.
	Load() ([]byte, error)
	// Save replaces the persisted session record.
	Save(record []byte) error
	// Delete removes the persisted session record. Deleting a missing record is not an error.
	Delete() error
}
