package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"user-account-api/internal/domain/query"
	domain "user-account-api/internal/domain/user"
)

// builder accumulates positional arguments while rendering SQL fragments.
type builder struct {
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, sqlArg(v))
	return fmt.Sprintf("$%d", len(b.args))
}

// where renders q as a conjunction. An empty query selects everything.
func (b *builder) where(q query.Query) (string, error) {
	if len(q) == 0 {
		return "TRUE", nil
	}

	parts := make([]string, 0, len(q))
	for _, c := range q {
		col, ok := columns[c.Field]
		if !ok {
			return "", fmt.Errorf("unsupported filter field %q", c.Field)
		}

		switch c.Op {
		case query.OpNull:
			parts = append(parts, col+" IS NULL")
		case query.OpEq:
			parts = append(parts, col+" = "+b.bind(c.Value))
		case query.OpGt:
			parts = append(parts, col+" > "+b.bind(c.Value))
		case query.OpGte:
			parts = append(parts, col+" >= "+b.bind(c.Value))
		case query.OpLt:
			parts = append(parts, col+" < "+b.bind(c.Value))
		case query.OpLte:
			parts = append(parts, col+" <= "+b.bind(c.Value))
		case query.OpIn:
			candidates, _ := c.Value.([]any)
			if len(candidates) == 0 {
				parts = append(parts, "FALSE")
				continue
			}
			ph := make([]string, len(candidates))
			for i, v := range candidates {
				ph[i] = b.bind(v)
			}
			parts = append(parts, col+" IN ("+strings.Join(ph, ", ")+")")
		case query.OpOverlap:
			parts = append(parts, col+" && "+b.bind(c.Value)+"::text[]")
		default:
			return "", fmt.Errorf("unsupported filter operator %q", c.Op)
		}
	}

	return strings.Join(parts, " AND "), nil
}

// set renders the SET list of a sparse update, always stamping updated_at
// when the patch carries it.
func (b *builder) set(p domain.Patch) string {
	var parts []string
	add := func(col string, v any) {
		parts = append(parts, col+" = "+b.bind(v))
	}

	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.Username != nil {
		add("username", *p.Username)
	}
	if p.FirstName != nil {
		add("first_name", *p.FirstName)
	}
	if p.LastName != nil {
		add("last_name", *p.LastName)
	}
	if p.PasswordHash != nil {
		add("password_hash", *p.PasswordHash)
	}
	if p.Role != nil {
		add("role", *p.Role)
	}
	if p.Gender != nil {
		add("gender", *p.Gender)
	}
	if p.Birthday.IsSet() {
		add("birthday", p.Birthday.Ptr())
	}
	if p.Active != nil {
		add("active", *p.Active)
	}
	if p.Groups != nil {
		groups := *p.Groups
		if groups == nil {
			groups = []string{}
		}
		add("group_ids", groups)
	}
	if p.Deleted != nil {
		add("deleted", *p.Deleted)
	}
	if p.DeletedAt.IsSet() {
		add("deleted_at", p.DeletedAt.Ptr())
	}
	if p.LastLogin != nil {
		add("last_login", *p.LastLogin)
	}
	if p.UpdatedAt != nil {
		add("updated_at", *p.UpdatedAt)
	}

	return strings.Join(parts, ", ")
}

// sqlArg unwraps domain types pgx has no codec for.
func sqlArg(v any) any {
	switch t := v.(type) {
	case domain.Role:
		return string(t)
	case domain.Gender:
		return string(t)
	case uuid.UUID:
		return t.String()
	case *time.Time:
		if t == nil {
			return nil
		}
		return *t
	}
	return v
}
