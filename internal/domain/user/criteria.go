package user

import (
	"time"

	"user-account-api/internal/domain/query"
)

// Criteria narrows a user listing. Nil members impose no constraint; an
// explicit false on Active or Deleted still filters.
type Criteria struct {
	Active  *bool
	Deleted *bool

	Role   *query.Set[Role]
	Gender *query.Set[Gender]
	// Groups matches users sharing at least one group with the list.
	Groups []string

	CreatedAt *query.Comparison[time.Time]
	UpdatedAt *query.Comparison[time.Time]
	DeletedAt *query.Comparison[time.Time]
	LastLogin *query.Comparison[time.Time]
	Birthday  *query.Comparison[time.Time]
}

// Query translates the criteria into store constraints: booleans first, then
// set membership, then the range scans.
func (c Criteria) Query() query.Query {
	var q query.Query

	if c.Active != nil {
		q = q.Where(FieldActive, query.OpEq, *c.Active)
	}
	if c.Deleted != nil {
		q = q.Where(FieldDeleted, query.OpEq, *c.Deleted)
	}
	if c.Role != nil {
		q = q.And(c.Role.Constraints(FieldRole))
	}
	if c.Gender != nil {
		q = q.And(c.Gender.Constraints(FieldGender))
	}
	if c.Groups != nil {
		q = q.Where(FieldGroups, query.OpOverlap, append([]string{}, c.Groups...))
	}

	for _, cmp := range []struct {
		field  string
		filter *query.Comparison[time.Time]
	}{
		{FieldCreatedAt, c.CreatedAt},
		{FieldUpdatedAt, c.UpdatedAt},
		{FieldDeletedAt, c.DeletedAt},
		{FieldLastLogin, c.LastLogin},
		{FieldBirthday, c.Birthday},
	} {
		if cmp.filter != nil {
			q = q.And(cmp.filter.Constraints(cmp.field))
		}
	}

	return q
}

// Matches evaluates the criteria directly against one user.
func (c Criteria) Matches(u *User) bool {
	return len(query.Narrow([]*User{u}, c.Query())) == 1
}
