package cli

import (
	"context"
	"fmt"

	"github.com/avelichko/petbook/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {
	if !a.requireNoSession() {
		return nil
	}

	name, err := GetSimpleText(a.reader, "Enter display name:", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email:", a.out)
	if err != nil {
		return err
	}
	city, err := GetSimpleText(a.reader, "Enter city (optional):", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	req := api.RegisterRequest{
		DisplayName: name,
		Email:       email,
		Password:    password,
		City:        city,
	}
	if err := a.api.Register(ctx, req); err != nil {
		a.log.Error(ctx, "registration failed", "error", err)
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Registered. Check your inbox for a verification email, then run 'verify'.")
	return nil
}
