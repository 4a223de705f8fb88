package user

import "time"

type (
	User struct {
		ID           string
		Email        string
		Username     string
		FirstName    string
		LastName     string
		PasswordHash string
		Role         string
		Gender       string
		Birthday     *time.Time
		Active       bool
		GroupIDs     []string

		CreatedAt time.Time
		UpdatedAt time.Time

		Deleted   bool
		DeletedAt *time.Time
		LastLogin *time.Time
	}
	Users []*User
)

func (u *User) scanTargets() []any {
	return []any{
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.Role,
		&u.Gender,
		&u.Birthday,
		&u.Active,
		&u.GroupIDs,

		&u.CreatedAt,
		&u.UpdatedAt,

		&u.Deleted,
		&u.DeletedAt,
		&u.LastLogin,
	}
}
