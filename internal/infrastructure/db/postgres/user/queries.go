package user

const (
	userColumns = `id, email, username, first_name, last_name, password_hash, role, gender, birthday, active, group_ids, created_at, updated_at, deleted, deleted_at, last_login`

	InsertUser = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + userColumns

	SelectUsersWhere = `SELECT ` + userColumns + ` FROM users WHERE %s ORDER BY created_at, id LIMIT %d OFFSET %d`
	SelectUserWhere  = `SELECT ` + userColumns + ` FROM users WHERE %s LIMIT 1`
	CountUsersWhere  = `SELECT count(*) FROM users WHERE %s`
	UpdateUserByID   = `UPDATE users SET %s WHERE id = $%d`
	DeleteUserByID   = `DELETE FROM users WHERE id = $1`

	emailUniqueKey    = "users_email_key"
	usernameUniqueKey = "users_username_key"
)

// columns whitelists the filterable fields.
var columns = map[string]string{
	"id":        "id",
	"email":     "email",
	"username":  "username",
	"role":      "role",
	"gender":    "gender",
	"birthday":  "birthday",
	"active":    "active",
	"groups":    "group_ids",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"deleted":   "deleted",
	"deletedAt": "deleted_at",
	"lastLogin": "last_login",
}
