package user

// Error is a named business-rule failure. Sentinels are compared with
// errors.Is; wrap them with fmt.Errorf("...: %w") to add context.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrUserNotFound       = &Error{Code: "UserNotFound", Message: "user not found"}
	ErrUserNotActive      = &Error{Code: "UserNotActive", Message: "user is not active"}
	ErrEmailAlreadyExists = &Error{Code: "EmailAlreadyExists", Message: "email already exists"}
	ErrUserNameExists     = &Error{Code: "UserNameExists", Message: "username already exists"}
	ErrParameterRequired  = &Error{Code: "ParameterRequired", Message: "exactly one of id, email or username is required"}
	ErrNothingToUpdate    = &Error{Code: "NothingToUpdate", Message: "nothing to update"}
	ErrInvalidID          = &Error{Code: "InvalidID", Message: "invalid user id"}
	ErrPasswordRequired   = &Error{Code: "PasswordRequired", Message: "password is required"}
	ErrRoleRequired       = &Error{Code: "RoleRequired", Message: "role is required"}
	ErrEmailRequired      = &Error{Code: "EmailRequired", Message: "email is required"}
	ErrFirstNameRequired  = &Error{Code: "FirstNameRequired", Message: "first name is required"}
	ErrLastNameRequired   = &Error{Code: "LastNameRequired", Message: "last name is required"}
)
