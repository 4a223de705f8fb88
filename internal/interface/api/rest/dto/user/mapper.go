package user

import (
	"fmt"
	"time"

	"user-account-api/internal/domain/query"
	"user-account-api/internal/domain/user"
	"user-account-api/pkg/nullable"
	"user-account-api/pkg/validation"
)

func ToResponseUser(uDomain user.User) User {
	var birthday *string
	if uDomain.Birthday != nil {
		b := uDomain.Birthday.Format(time.DateOnly)
		birthday = &b
	}
	groups := uDomain.Groups
	if groups == nil {
		groups = []string{}
	}

	var u = User{
		ID:        uDomain.ID,
		Email:     uDomain.Email,
		Username:  uDomain.Username,
		FirstName: uDomain.FirstName,
		LastName:  uDomain.LastName,
		Role:      string(uDomain.Role),
		Gender:    string(uDomain.Gender),
		Birthday:  birthday,
		Active:    uDomain.Active,
		Groups:    groups,
		CreatedAt: uDomain.CreatedAt,
		UpdatedAt: uDomain.UpdatedAt,
		Deleted:   uDomain.Deleted,
		DeletedAt: uDomain.DeletedAt,
		LastLogin: uDomain.LastLogin,
	}

	return u
}

func ToResponseUsers(usDomain []*user.User) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToResponsePage(p query.Page[*user.User]) Page {
	return Page{
		Docs:   ToResponseUsers(p.Docs),
		Total:  p.Total,
		Limit:  p.Limit,
		Page:   p.Page,
		Pages:  p.Pages,
		Offset: p.Offset,
	}
}

func ToDomainCreate(r CreateRequest) (user.CreateInput, error) {
	in := user.CreateInput{
		Email:     r.Email,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
		Role:      user.Role(r.Role),
		Active:    r.Active,
		Groups:    r.Groups,
	}
	if r.Gender != nil {
		g := user.Gender(*r.Gender)
		in.Gender = &g
	}
	if r.Birthday != nil {
		d, err := parseDate(*r.Birthday)
		if err != nil {
			return in, err
		}
		in.Birthday = &d
	}

	return in, nil
}

func ToDomainUpdate(r UpdateRequest) (user.UpdateInput, error) {
	in := user.UpdateInput{
		Email:           r.Email,
		Username:        r.Username,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Password:        r.Password,
		Role:            user.Role(r.Role),
		Active:          r.Active,
		Groups:          r.Groups,
		UpdateLastLogin: r.UpdateLastLogin,
	}

	switch {
	case r.Gender.IsNull():
		in.Gender = nullable.Null[user.Gender]()
	case r.Gender.IsSet():
		g, _ := r.Gender.Get()
		in.Gender = nullable.Of(user.Gender(g))
	}

	switch {
	case r.Birthday.IsNull():
		in.Birthday = nullable.Null[time.Time]()
	case r.Birthday.IsSet():
		s, _ := r.Birthday.Get()
		d, err := parseDate(s)
		if err != nil {
			return in, err
		}
		in.Birthday = nullable.Of(d)
	}

	return in, nil
}

func ToDomainCriteria(f FilterRequest) (user.Criteria, error) {
	c := user.Criteria{
		Active:  f.Active,
		Deleted: f.Deleted,
		Groups:  f.Groups,
	}
	if f.Role != nil {
		c.Role = toSet[user.Role](*f.Role)
	}
	if f.Gender != nil {
		c.Gender = toSet[user.Gender](*f.Gender)
	}

	for _, cmp := range []struct {
		req *ComparisonRequest
		dst **query.Comparison[time.Time]
	}{
		{f.CreatedAt, &c.CreatedAt},
		{f.UpdatedAt, &c.UpdatedAt},
		{f.DeletedAt, &c.DeletedAt},
		{f.LastLogin, &c.LastLogin},
		{f.Birthday, &c.Birthday},
	} {
		if cmp.req == nil {
			continue
		}
		parsed, err := toComparison(*cmp.req)
		if err != nil {
			return c, err
		}
		*cmp.dst = parsed
	}

	return c, nil
}

func ToDomainPagination(r FindRequest) query.Pagination {
	return query.Pagination{Page: r.Page, Limit: r.Limit, Offset: r.Offset}
}

func ToDomainLookup(r LookupRequest) user.Lookup {
	return user.Lookup{ID: r.ID, Email: r.Email, Username: r.Username}
}

func toSet[E ~string](r SetRequest) *query.Set[E] {
	s := &query.Set[E]{}
	if r.Eq != nil {
		e := E(*r.Eq)
		s.Eq = &e
	}
	if r.In != nil {
		s.In = make([]E, len(r.In))
		for i, v := range r.In {
			s.In[i] = E(v)
		}
	}
	return s
}

func toComparison(r ComparisonRequest) (*query.Comparison[time.Time], error) {
	c := &query.Comparison[time.Time]{}

	switch {
	case r.Eq.IsNull():
		c.Eq = nullable.Null[time.Time]()
	case r.Eq.IsSet():
		s, _ := r.Eq.Get()
		t, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		c.Eq = nullable.Of(t)
	}

	for _, b := range []struct {
		src *string
		dst **time.Time
	}{
		{r.Gt, &c.Gt},
		{r.Gte, &c.Gte},
		{r.Lt, &c.Lt},
		{r.Lte, &c.Lte},
	} {
		if b.src == nil {
			continue
		}
		t, err := parseDate(*b.src)
		if err != nil {
			return nil, err
		}
		*b.dst = &t
	}

	return c, nil
}

func parseDate(s string) (time.Time, error) {
	t, ok := validation.AsDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
