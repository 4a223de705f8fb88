package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-account-api/internal/application/ports"
	"user-account-api/internal/domain/query"
	domain "user-account-api/internal/domain/user"
	"user-account-api/internal/infrastructure/mq"
	"user-account-api/internal/interface/api/rest/dto/user"
	"user-account-api/pkg/nullable"
)

type UserService struct {
	userRepository domain.Repository
	hasher         ports.PasswordHasher
	events         ports.EventPublisher
	log            *zap.Logger
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewUserService(
	userRepository domain.Repository,
	hasher ports.PasswordHasher,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		events:         events,
		log:            logger,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

func (us *UserService) Create(ctx context.Context, in domain.CreateInput) (*domain.User, error) {
	switch {
	case in.Password == "":
		return nil, domain.ErrPasswordRequired
	case in.Role == "":
		return nil, domain.ErrRoleRequired
	case in.Email == "":
		return nil, domain.ErrEmailRequired
	case in.FirstName == "":
		return nil, domain.ErrFirstNameRequired
	case in.LastName == "":
		return nil, domain.ErrLastNameRequired
	}

	username := domain.NormalizeUsername(in.Username)
	if in.Username == "" {
		username = domain.DefaultUsername(in.FirstName, in.LastName)
	}

	hash, err := us.hasher.Hash(in.Password)
	if err != nil {
		us.log.Error("create user: hash password", zap.Error(err))
		return nil, err
	}

	now := us.now().UTC()
	u := domain.User{
		ID:           uuid.New(),
		Email:        normalizeEmail(in.Email),
		Username:     username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         in.Role,
		Gender:       domain.GenderUnknown,
		Birthday:     in.Birthday,
		Active:       true,
		Groups:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Gender != nil && *in.Gender != "" {
		u.Gender = *in.Gender
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.Groups != nil {
		u.Groups = append(u.Groups, in.Groups...)
	}

	uRet, err := us.userRepository.Create(ctx, u)
	if err != nil {
		return nil, us.collaboratorError("create user", err, zap.String("email", u.Email))
	}

	us.publish(mq.ActionCreated, uRet.ID, uRet)
	us.mCounter.WithLabelValues("user_created_total").Inc()

	return uRet, nil
}

// Update writes the fields present in the input and returns the stored user.
func (us *UserService) Update(ctx context.Context, id domain.UUID, in domain.UpdateInput) (*domain.User, error) {
	patch, err := us.patch(in)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, domain.ErrNothingToUpdate
	}
	now := us.now().UTC()
	patch.UpdatedAt = &now

	if err = us.userRepository.Update(ctx, id, patch); err != nil {
		return nil, us.collaboratorError("update user", err, zap.Stringer("user_id", id))
	}

	uRet, err := us.userRepository.FindOne(ctx, query.Where(domain.FieldID, query.OpEq, id.String()))
	if err != nil {
		return nil, us.collaboratorError("reload user", err, zap.Stringer("user_id", id))
	}
	if uRet == nil {
		return nil, domain.ErrUserNotFound
	}

	us.publish(mq.ActionUpdated, id, uRet)
	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

func (us *UserService) patch(in domain.UpdateInput) (domain.Patch, error) {
	var p domain.Patch

	if in.Email != "" {
		email := normalizeEmail(in.Email)
		p.Email = &email
	}
	if in.Username != "" {
		username := domain.NormalizeUsername(in.Username)
		p.Username = &username
	}
	if in.FirstName != "" {
		p.FirstName = &in.FirstName
	}
	if in.LastName != "" {
		p.LastName = &in.LastName
	}
	if in.Role != "" {
		p.Role = &in.Role
	}
	if in.Password != "" {
		hash, err := us.hasher.Hash(in.Password)
		if err != nil {
			us.log.Error("update user: hash password", zap.Error(err))
			return p, err
		}
		p.PasswordHash = &hash
	}

	if in.Gender.IsSet() {
		gender := domain.GenderUnknown
		if g, ok := in.Gender.Get(); ok && g != "" {
			gender = g
		}
		p.Gender = &gender
	}
	p.Birthday = in.Birthday
	if in.Active != nil {
		p.Active = in.Active
	}
	if in.Groups.IsSet() {
		groups := []string{}
		if gs, ok := in.Groups.Get(); ok {
			groups = append(groups, gs...)
		}
		p.Groups = &groups
	}
	if in.UpdateLastLogin {
		now := us.now().UTC()
		p.LastLogin = &now
	}

	return p, nil
}

// Delete marks the user deleted, or removes the row when hard is set.
func (us *UserService) Delete(ctx context.Context, id domain.UUID, hard bool) error {
	var err error
	if hard {
		err = us.userRepository.Delete(ctx, id)
	} else {
		now := us.now().UTC()
		deleted := true
		err = us.userRepository.Update(ctx, id, domain.Patch{
			Deleted:   &deleted,
			DeletedAt: nullable.Of(now),
			UpdatedAt: &now,
		})
	}
	if err != nil {
		return us.collaboratorError("delete user", err, zap.Stringer("user_id", id), zap.Bool("hard", hard))
	}

	us.publish(mq.ActionDeleted, id, nil)
	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}

func (us *UserService) All(ctx context.Context, c domain.Criteria, p query.Pagination) (query.Page[*domain.User], error) {
	page, err := us.userRepository.All(ctx, c.Query(), p)
	if err != nil {
		if errors.Is(err, query.ErrOffsetOutOfRange) {
			return page, err
		}
		return page, us.collaboratorError("list users", err)
	}

	return page, nil
}

// GetBy needs exactly one of id, email or username. Deleted users are
// excluded unless the lookup sets Deleted explicitly; null disables the
// filter.
func (us *UserService) GetBy(ctx context.Context, l domain.Lookup) (*domain.User, error) {
	var keys int
	for _, k := range []string{l.ID, l.Email, l.Username} {
		if k != "" {
			keys++
		}
	}
	if keys != 1 {
		return nil, domain.ErrParameterRequired
	}

	var q query.Query
	switch {
	case l.ID != "":
		id, err := uuid.Parse(l.ID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		q = query.Where(domain.FieldID, query.OpEq, id.String())
	case l.Email != "":
		q = query.Where(domain.FieldEmail, query.OpEq, normalizeEmail(l.Email))
	default:
		q = query.Where(domain.FieldUsername, query.OpEq, domain.NormalizeUsername(l.Username))
	}

	switch {
	case !l.Deleted.IsSet():
		q = q.Where(domain.FieldDeleted, query.OpEq, false)
	case !l.Deleted.IsNull():
		deleted, _ := l.Deleted.Get()
		q = q.Where(domain.FieldDeleted, query.OpEq, deleted)
	}

	u, err := us.userRepository.FindOne(ctx, q)
	if err != nil {
		return nil, us.collaboratorError("get user", err)
	}

	return u, nil
}

// IsUsernameExists checks the normalized name against every user, deleted
// ones included.
func (us *UserService) IsUsernameExists(ctx context.Context, username string) (bool, error) {
	if domain.NormalizeUsername(username) == "" {
		return false, nil
	}
	u, err := us.GetBy(ctx, domain.Lookup{Username: username, Deleted: nullable.Null[bool]()})
	if err != nil {
		return false, err
	}

	return u != nil, nil
}

func (us *UserService) VerifyPassword(plain, hash string) (bool, error) {
	ok, err := us.hasher.Verify(plain, hash)
	if err != nil {
		us.log.Error("verify password", zap.Error(err))
		return false, err
	}

	return ok, nil
}

func (us *UserService) publish(action string, id domain.UUID, u *domain.User) {
	var payload *user.User
	if u != nil {
		p := user.ToResponseUser(*u)
		payload = &p
	}
	us.events.Publish(mq.NewEvent(action, id.String(), payload))
}

// collaboratorError logs store failures and passes domain errors through
// untouched.
func (us *UserService) collaboratorError(op string, err error, fields ...zap.Field) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}

	us.log.Error(op, append(fields, zap.Error(err))...)
	us.mCounter.WithLabelValues("store_error_total").Inc()

	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
