package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-account-api/internal/application/ports"
	domain "user-account-api/internal/domain/user"
	"user-account-api/internal/infrastructure/jwt"
	"user-account-api/internal/interface/api/rest/dto/user"
	"user-account-api/internal/interface/api/rest/middleware"
	"user-account-api/internal/interface/api/rest/validator"
	"user-account-api/pkg/validation"
)

type UserController struct {
	accountService ports.AccountService
	logger         *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	accountService ports.AccountService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	passwordLimit middleware.RateLimit,
) *UserController {
	uc := &UserController{
		accountService: accountService,
		logger:         logger,
	}

	r.POST(RouteUsersFind, uc.FindUsersHandler)
	r.GET(RouteUsersLookup, uc.LookupUserHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsersPassword, middleware.RateLimitByIP(passwordLimit, logger), uc.PasswordHandler)
	r.POST(RouteUsers, middleware.AuthMiddleware(jwtService), uc.CreateUserHandler)
	r.PATCH(RouteUser, middleware.AuthMiddleware(jwtService), uc.UpdateUserHandler)
	r.DELETE(RouteUser, middleware.AuthMiddleware(jwtService), uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) FindUsersHandler(c *gin.Context) {
	req, ok := bindBody[user.FindRequest](c, uc.logger, validator.Find)
	if !ok {
		return
	}

	criteria, err := user.ToDomainCriteria(req.Filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	page, err := uc.accountService.Find(c.Request.Context(), criteria, user.ToDomainPagination(req))
	if err != nil {
		respondError(c, uc.logger, "Find", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: user.ToResponsePage(page)})
}

// LookupUserHandler resolves one user by exactly one of the id, email or
// username query parameters.
func (uc *UserController) LookupUserHandler(c *gin.Context) {
	obj := validation.Object{}
	for _, key := range []string{"id", "email", "username"} {
		if v, ok := c.GetQuery(key); ok {
			obj[key] = v
		}
	}

	req, err := validator.BindObject[user.LookupRequest](c.Request.Context(), obj, validator.Lookup)
	if err != nil {
		respondError(c, uc.logger, "Lookup", err)
		return
	}

	uc.respondUser(c, user.ToDomainLookup(req))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, _ := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	uc.respondUser(c, domain.Lookup{ID: c.Param("user_id")})
}

func (uc *UserController) respondUser(c *gin.Context, l domain.Lookup) {
	u, err := uc.accountService.Get(c.Request.Context(), l)
	if err != nil {
		respondError(c, uc.logger, "Get", err)
		return
	}

	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "user not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: user.ToResponseUser(*u)})
}

func (uc *UserController) PasswordHandler(c *gin.Context) {
	req, ok := bindBody[user.CredentialsRequest](c, uc.logger, validator.Credentials)
	if !ok {
		return
	}

	valid, err := uc.accountService.Password(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, uc.logger, "Password", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: user.PasswordResult{Valid: valid}})
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	req, ok := bindBody[user.CreateRequest](c, uc.logger, validator.Create)
	if !ok {
		return
	}

	in, err := user.ToDomainCreate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := uc.accountService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, uc.logger, "Create", err)
		return
	}
	uc.logger.Info("user created", actorFields(c, zap.Stringer("user_id", u.ID))...)

	c.JSON(http.StatusCreated, user.ResponseData{Data: user.ToResponseUser(*u)})
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	req, ok := bindBody[user.UpdateRequest](c, uc.logger, validator.Update)
	if !ok {
		return
	}

	in, err := user.ToDomainUpdate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := uc.accountService.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, uc.logger, "Update", err)
		return
	}
	uc.logger.Info("user updated", actorFields(c, zap.Stringer("user_id", id))...)

	c.JSON(http.StatusOK, user.ResponseData{Data: user.ToResponseUser(*u)})
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	hard := c.Query("hard") == "true"
	if hard && !middleware.HasRole(c, domain.RoleSuperAdmin, domain.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return
	}

	deleted, err := uc.accountService.Delete(c.Request.Context(), id, hard)
	if err != nil {
		respondError(c, uc.logger, "Delete", err)
		return
	}
	uc.logger.Info("user deleted", actorFields(c, zap.Stringer("user_id", id), zap.Bool("hard", hard))...)

	c.JSON(http.StatusOK, user.ResponseData{Data: user.DeleteResult{Deleted: deleted}})
}

// actorFields prefixes fields with the authenticated caller.
func actorFields(c *gin.Context, fields ...zap.Field) []zap.Field {
	a, _ := middleware.ActorFrom(c)
	return append([]zap.Field{zap.String("actor_id", a.UserID), zap.String("actor_role", string(a.Role))}, fields...)
}

// bindBody reads the request body and binds it through schema. On failure
// the error response has already been written.
func bindBody[T any](c *gin.Context, logger *zap.Logger, schema *validation.Schema) (T, bool) {
	var out T

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return out, false
	}

	out, err = validator.Bind[T](c.Request.Context(), raw, schema)
	if err != nil {
		respondError(c, logger, "Bind", err)
		return out, false
	}

	return out, true
}
