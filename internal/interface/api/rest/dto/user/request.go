package user

import (
	"user-account-api/pkg/nullable"
)

// Requests are decoded from the object returned by schema validation, so
// every field here has already passed its rules and carries its default.
type (
	ComparisonRequest struct {
		Eq  nullable.Value[string] `json:"eq"`
		Gt  *string                `json:"gt"`
		Gte *string                `json:"gte"`
		Lt  *string                `json:"lt"`
		Lte *string                `json:"lte"`
	}
	SetRequest struct {
		Eq *string  `json:"eq"`
		In []string `json:"in"`
	}
	FilterRequest struct {
		Active    *bool              `json:"active"`
		Deleted   *bool              `json:"deleted"`
		Role      *SetRequest        `json:"role"`
		Gender    *SetRequest        `json:"gender"`
		Groups    []string           `json:"groups"`
		CreatedAt *ComparisonRequest `json:"createdAt"`
		UpdatedAt *ComparisonRequest `json:"updatedAt"`
		DeletedAt *ComparisonRequest `json:"deletedAt"`
		LastLogin *ComparisonRequest `json:"lastLogin"`
		Birthday  *ComparisonRequest `json:"birthday"`
	}
	FindRequest struct {
		Filter FilterRequest `json:"filter"`
		Page   int           `json:"page"`
		Limit  int           `json:"limit"`
		Offset int           `json:"offset"`
	}

	CreateRequest struct {
		Email     string   `json:"email"`
		Username  string   `json:"username"`
		FirstName string   `json:"firstName"`
		LastName  string   `json:"lastName"`
		Password  string   `json:"password"`
		Role      string   `json:"role"`
		Gender    *string  `json:"gender"`
		Birthday  *string  `json:"birthday"`
		Active    *bool    `json:"active"`
		Groups    []string `json:"groups"`
	}
	UpdateRequest struct {
		Email           string                   `json:"email"`
		Username        string                   `json:"username"`
		FirstName       string                   `json:"firstName"`
		LastName        string                   `json:"lastName"`
		Password        string                   `json:"password"`
		Role            string                   `json:"role"`
		Gender          nullable.Value[string]   `json:"gender"`
		Birthday        nullable.Value[string]   `json:"birthday"`
		Active          *bool                    `json:"active"`
		Groups          nullable.Value[[]string] `json:"groups"`
		UpdateLastLogin bool                     `json:"updateLastLogin"`
	}

	CredentialsRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	LookupRequest struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
)
