package ports

import "context"

type Auth interface {
	Login(ctx context.Context, email, password string) (string, error)
}
