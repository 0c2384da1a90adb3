package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mcom-mall/mallcli/internal/client/api"
	"github.com/mcom-mall/mallcli/internal/client/auth"
	"github.com/mcom-mall/mallcli/internal/client/models"
	"github.com/mcom-mall/mallcli/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignUp walks the user through registration. Validation problems and API
// rejections are printed with their user-facing message; a pending email
// verification is reported as guidance rather than a failure.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone number", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}

	req := models.SignUpRequest{
		Name:            name,
		Email:           email,
		PhoneNumber:     phone,
		Password:        password,
		ConfirmPassword: confirm,
		Role:            "customer",
	}

	user, err := a.authService.SignUp(ctx, req)
	if err != nil {
		printAuthError(err)
		return err
	}

	a.setSignedIn(displayName(email, user))
	printlnFn("Account created. You are signed in.")
	return nil
}

// SignIn prompts for credentials and authenticates.
func (a *App) SignIn(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.authService.SignIn(ctx, email, password)
	if err != nil {
		printAuthError(err)
		return err
	}

	a.setSignedIn(displayName(email, user))
	printlnFn("Signed in.")
	return nil
}

// WhoAmI prints the persisted session: profile fields when a user record is
// present, and the token expiry when the token is a readable JWT.
func (a *App) WhoAmI(ctx context.Context) error {
	token, user, err := a.authService.Current(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if token == "" {
		printlnFn("Not signed in.")
		return nil
	}

	if user != nil {
		printlnFn(fmt.Sprintf("Signed in as %s <%s> (role %s)", user.Name, user.Email, user.Role))
	} else {
		printlnFn("Signed in (no profile on record).")
	}
	if exp, ok := session.TokenExpiry(token); ok {
		printlnFn("Session expires at", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Logout clears the persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	a.setSignedOut()
	printlnFn("Signed out.")
	return nil
}

// printAuthError picks the right tone for an auth failure. Every branch
// prints a message that is safe to show as-is.
func printAuthError(err error) {
	switch {
	case errors.Is(err, auth.ErrVerificationPending):
		printlnFn("Almost there: " + err.Error())
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Cannot reach the server. Please try again.")
	default:
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			printlnFn(apiErr.Message)
			return
		}
		printlnFn("error:", err.Error())
	}
}

func displayName(email string, user *models.User) string {
	if user != nil && user.Email != "" {
		return user.Email
	}
	return email
}
