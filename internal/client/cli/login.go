package cli

import (
	"context"
	"fmt"

	"github.com/avelichko/petbook/internal/client/guard"
)

// requireSession checks that a session exists before a command runs. When
// it does not, the redirect target is reported to the user and false is
// returned.
func (a *App) requireSession() bool {
	d := guard.RequireSession(a.session.Status(), guard.RouteHome)
	if d.Pending {
		fmt.Fprintln(a.out, "Session is still loading, try again.")
		return false
	}
	if !d.Allowed {
		fmt.Fprintln(a.out, "Please log in first.")
		return false
	}
	return true
}

func (a *App) requireNoSession() bool {
	d := guard.RequireNoSession(a.session.Status())
	if d.Pending {
		fmt.Fprintln(a.out, "Session is still loading, try again.")
		return false
	}
	if !d.Allowed {
		fmt.Fprintln(a.out, "You are already logged in.")
		return false
	}
	return true
}

func (a *App) Login(ctx context.Context) error {
	if !a.requireNoSession() {
		return nil
	}

	email, err := GetSimpleText(a.reader, "Enter email:", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	if err := a.session.Login(ctx, resp); err != nil {
		a.log.Error(ctx, "error saving session", "error", err)
		return err
	}

	if err := a.pets.LoadOwnedPets(ctx); err != nil {
		a.log.Warn(ctx, "could not load pets after login", "error", err)
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", resp.User.DisplayName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}
	a.session.Logout(ctx)
	a.myReactions = make(map[int64]int64)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) RecoverPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter the email of your account:", a.out)
	if err != nil {
		return err
	}
	if err := a.api.RequestPasswordReset(ctx, email); err != nil {
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "If the address is registered, a reset link is on its way.")
	return nil
}

func (a *App) ResetPassword(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "Enter the reset token from the email:", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.api.ResetPassword(ctx, token, password); err != nil {
		fmt.Fprintf(a.out, "Reset failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Password updated, you can log in now.")
	return nil
}

func (a *App) VerifyEmail(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "Enter the verification token from the email:", a.out)
	if err != nil {
		return err
	}
	if err := a.api.VerifyEmail(ctx, token); err != nil {
		fmt.Fprintf(a.out, "Verification failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Email verified.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>, city %s\n", snap.DisplayName, snap.Email, snap.City)
	if snap.IsAdmin() {
		fmt.Fprintln(a.out, "Role: admin")
	}
	if pet := a.pets.ActivePet(); pet != nil {
		fmt.Fprintf(a.out, "Acting as pet: %s (id %d)\n", pet.Name, pet.ID)
	}
	return nil
}
