package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"user-account-api/internal"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "useraccountapi:", err)
		os.Exit(1)
	}
}

// run keeps os.Exit out of the way of the deferred Close.
func run(ctx context.Context) error {
	app, err := internal.NewApp(ctx)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer app.Close()

	app.InitControllers()

	if err = app.Run(ctx); err != nil {
		app.Logger().Error("useraccountapi stopped", zap.Error(err))
		return err
	}
	return nil
}
