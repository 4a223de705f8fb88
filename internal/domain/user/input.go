package user

import (
	"time"

	"user-account-api/pkg/nullable"
)

type (
	CreateInput struct {
		Email     string
		Username  string
		FirstName string
		LastName  string
		Password  string
		Role      Role

		// nil leaves the defaults in place.
		Gender   *Gender
		Birthday *time.Time
		Active   *bool
		Groups   []string
	}

	// UpdateInput mirrors a partial update request. The string fields and
	// Role are applied only when non-empty; the others whenever they are set,
	// including false and null.
	UpdateInput struct {
		Email     string
		Username  string
		FirstName string
		LastName  string
		Password  string
		Role      Role

		Gender   nullable.Value[Gender]
		Birthday nullable.Value[time.Time]
		Active   *bool
		Groups   nullable.Value[[]string]

		UpdateLastLogin bool
	}

	// Patch is the sparse set of columns an update writes.
	Patch struct {
		Email        *string
		Username     *string
		FirstName    *string
		LastName     *string
		PasswordHash *string
		Role         *Role
		Gender       *Gender
		Birthday     nullable.Value[time.Time]
		Active       *bool
		Groups       *[]string
		Deleted      *bool
		DeletedAt    nullable.Value[time.Time]
		LastLogin    *time.Time
		UpdatedAt    *time.Time
	}

	// Lookup selects one user by exactly one key. Deleted left unset means
	// "not deleted"; an explicit null ignores the deleted flag.
	Lookup struct {
		ID       string
		Email    string
		Username string
		Deleted  nullable.Value[bool]
	}
)

// IsEmpty ignores UpdatedAt, which is stamped on every non-empty patch.
func (p Patch) IsEmpty() bool {
	return p.Email == nil &&
		p.Username == nil &&
		p.FirstName == nil &&
		p.LastName == nil &&
		p.PasswordHash == nil &&
		p.Role == nil &&
		p.Gender == nil &&
		!p.Birthday.IsSet() &&
		p.Active == nil &&
		p.Groups == nil &&
		p.Deleted == nil &&
		!p.DeletedAt.IsSet() &&
		p.LastLogin == nil
}

// Apply writes the patch onto u.
func (p Patch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Birthday.IsSet() {
		u.Birthday = p.Birthday.Ptr()
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
	if p.Groups != nil {
		u.Groups = append([]string{}, (*p.Groups)...)
	}
	if p.Deleted != nil {
		u.Deleted = *p.Deleted
	}
	if p.DeletedAt.IsSet() {
		u.DeletedAt = p.DeletedAt.Ptr()
	}
	if p.LastLogin != nil {
		t := *p.LastLogin
		u.LastLogin = &t
	}
	if p.UpdatedAt != nil {
		u.UpdatedAt = *p.UpdatedAt
	}
}
