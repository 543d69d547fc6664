package cli

import (
	"context"
)

// Login signs in with an access token read without echo and reloads the
// user's bookmarks.
func (a *App) Login(ctx context.Context) error {
	token, err := GetSecret("Access token", a.out)
	if err != nil {
		a.log.Error(ctx, "error reading token", "error", err)
		return err
	}
	return a.signIn(ctx, token)
}

func (a *App) signIn(ctx context.Context, token string) error {
	user, err := a.auth.SignIn(token)
	if err != nil {
		a.log.Warn(ctx, "login unsuccessful", "error", err)
		a.println("Login unsuccessful.")
		return err
	}

	a.log.Info(ctx, "login successful", "user", user.ID)
	a.printf("Signed in as %s.\n", user.ID)
	if err := a.bookmarks.Load(ctx); err != nil {
		a.println("Could not load bookmarks.")
	}
	return nil
}

// SignInWithToken is used at startup when a token was configured.
func (a *App) SignInWithToken(ctx context.Context, token string) error {
	return a.signIn(ctx, token)
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.SignOut()
	a.draft = nil
	a.println("Signed out.")
	return a.bookmarks.Load(ctx)
}
