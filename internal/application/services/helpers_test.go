package services

import (
	domain "user-account-api/internal/domain/user"
	"user-account-api/pkg/nullable"
)

func boolPtr(b bool) *bool { return &b }

// nullableBool maps nil to an explicit null.
func nullableBool(b *bool) nullable.Value[bool] {
	if b == nil {
		return nullable.Null[bool]()
	}
	return nullable.Of(*b)
}

func nullableGender() nullable.Value[domain.Gender] {
	return nullable.Null[domain.Gender]()
}
