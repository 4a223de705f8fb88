package user

import (
	"github.com/google/uuid"

	domain "user-account-api/internal/domain/user"
)

func fromDBModel(model *User) (*domain.User, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, err
	}

	groups := model.GroupIDs
	if groups == nil {
		groups = []string{}
	}

	var u = &domain.User{
		ID:           id,
		Email:        model.Email,
		Username:     model.Username,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		PasswordHash: model.PasswordHash,
		Role:         domain.Role(model.Role),
		Gender:       domain.Gender(model.Gender),
		Birthday:     model.Birthday,
		Active:       model.Active,
		Groups:       groups,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,

		Deleted:   model.Deleted,
		DeletedAt: model.DeletedAt,
		LastLogin: model.LastLogin,
	}

	return u, nil
}

func fromDBModels(models Users) (domain.Users, error) {
	us := make(domain.Users, len(models))
	for idx, m := range models {
		u, err := fromDBModel(m)
		if err != nil {
			return nil, err
		}
		us[idx] = u
	}

	return us, nil
}

func insertArgs(u domain.User) []any {
	groups := u.Groups
	if groups == nil {
		groups = []string{}
	}

	return []any{
		u.ID.String(),
		u.Email,
		u.Username,
		u.FirstName,
		u.LastName,
		u.PasswordHash,
		string(u.Role),
		string(u.Gender),
		u.Birthday,
		u.Active,
		groups,
		u.CreatedAt,
		u.UpdatedAt,
		u.Deleted,
		u.DeletedAt,
		u.LastLogin,
	}
}
