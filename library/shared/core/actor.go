package core

// Actor is the identity a command or query is executed for.
// An Actor with an empty UserID is anonymous.
type Actor struct {
	UserID  UserIDString
	IsStaff bool
}

// IsAuthenticated reports whether the actor has an identity.
func (a Actor) IsAuthenticated() bool {
	return a.UserID != ""
}

// CanAccess reports whether the actor may see or act on a record owned by ownerID.
func (a Actor) CanAccess(ownerID UserIDString) bool {
	return a.IsStaff || (a.IsAuthenticated() && a.UserID == ownerID)
}

// Authorize returns ErrUnauthorized for anonymous actors
// and ErrForbidden if the actor may not act on the record of ownerID.
func (a Actor) Authorize(ownerID UserIDString) error {
	if !a.IsAuthenticated() {
		return ErrUnauthorized
	}

	if !a.CanAccess(ownerID) {
		return ErrForbidden
	}

	return nil
}

// AuthorizeStaff returns ErrUnauthorized for anonymous actors and ErrForbidden for non-staff actors.
func (a Actor) AuthorizeStaff() error {
	if !a.IsAuthenticated() {
		return ErrUnauthorized
	}

	if !a.IsStaff {
		return ErrForbidden
	}

	return nil
}
