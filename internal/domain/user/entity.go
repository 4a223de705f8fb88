package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID   = uuid.UUID
	Role   string
	Gender string

	User struct {
		ID           UUID
		Email        string
		Username     string
		FirstName    string
		LastName     string
		PasswordHash string
		Role         Role
		Gender       Gender
		Birthday     *time.Time
		Active       bool
		Groups       []string

		CreatedAt time.Time
		UpdatedAt time.Time

		Deleted   bool
		DeletedAt *time.Time
		LastLogin *time.Time
	}
	Users []*User
)

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleParent     Role = "PARENT"
	RoleStudent    Role = "STUDENT"

	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

// Field names shared by filters, lookups and store adapters.
const (
	FieldID        = "id"
	FieldEmail     = "email"
	FieldUsername  = "username"
	FieldRole      = "role"
	FieldGender    = "gender"
	FieldBirthday  = "birthday"
	FieldActive    = "active"
	FieldGroups    = "groups"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldDeleted   = "deleted"
	FieldDeletedAt = "deletedAt"
	FieldLastLogin = "lastLogin"
)

// BirthdayFloor is the earliest accepted birthday.
var BirthdayFloor = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleManager, RoleInstructor, RoleParent, RoleStudent}
}

func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderUnknown}
}

func (r Role) Valid() bool {
	for _, v := range Roles() {
		if r == v {
			return true
		}
	}
	return false
}

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	default:
		return false
	}
}

// Value exposes fields to in-memory query evaluation.
func (u *User) Value(field string) any {
	switch field {
	case FieldID:
		return u.ID.String()
	case FieldEmail:
		return u.Email
	case FieldUsername:
		return u.Username
	case FieldRole:
		return u.Role
	case FieldGender:
		return u.Gender
	case FieldBirthday:
		return u.Birthday
	case FieldActive:
		return u.Active
	case FieldGroups:
		return u.Groups
	case FieldCreatedAt:
		return u.CreatedAt
	case FieldUpdatedAt:
		return u.UpdatedAt
	case FieldDeleted:
		return u.Deleted
	case FieldDeletedAt:
		return u.DeletedAt
	case FieldLastLogin:
		return u.LastLogin
	}
	return nil
}

// Clone returns a deep copy so that stores never hand out shared state.
func (u *User) Clone() *User {
	c := *u
	c.Groups = append([]string(nil), u.Groups...)
	if c.Groups == nil {
		c.Groups = []string{}
	}
	c.Birthday = cloneTime(u.Birthday)
	c.DeletedAt = cloneTime(u.DeletedAt)
	c.LastLogin = cloneTime(u.LastLogin)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
