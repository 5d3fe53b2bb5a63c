package shared

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID int64
	Admin  bool
}
