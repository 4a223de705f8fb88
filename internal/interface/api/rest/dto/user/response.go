package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID        uuid.UUID  `json:"id"`
		Email     string     `json:"email"`
		Username  string     `json:"username"`
		FirstName string     `json:"firstName"`
		LastName  string     `json:"lastName"`
		Role      string     `json:"role"`
		Gender    string     `json:"gender"`
		Birthday  *string    `json:"birthday"`
		Active    bool       `json:"active"`
		Groups    []string   `json:"groups"`
		CreatedAt time.Time  `json:"createdAt"`
		UpdatedAt time.Time  `json:"updatedAt"`
		Deleted   bool       `json:"deleted"`
		DeletedAt *time.Time `json:"deletedAt"`
		LastLogin *time.Time `json:"lastLogin"`
	}
	Users []User

	ResponseData struct {
		Data any `json:"data"`
	}
	Page struct {
		Docs   Users `json:"docs"`
		Total  int   `json:"total"`
		Limit  int   `json:"limit"`
		Page   int   `json:"page"`
		Pages  int   `json:"pages"`
		Offset int   `json:"offset"`
	}
	PasswordResult struct {
		Valid bool `json:"valid"`
	}
	DeleteResult struct {
		Deleted bool `json:"deleted"`
	}
)
