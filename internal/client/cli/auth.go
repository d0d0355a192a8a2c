package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shopkart-io/shopkart/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates the account. A validation
// failure (taken username, bad email, weak password) is reported with the
// backend's first field-level message.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, username, email, password); err != nil {
		a.reportErr(err)
		return err
	}

	fmt.Println("Registration successful! You can log in now.")
	return nil
}

// Login performs the token handshake and establishes the session. On success
// the cart is refreshed as a follow-up, matching the post-login flow of the
// storefront.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	pair, err := a.client.Login(ctx, username, password)
	if err != nil {
		// A 401 here is a wrong password on an unauthenticated handshake,
		// not an expired session: report it without the forced-logout policy
		// so a live session survives a mistyped re-login.
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			log.Printf("%s", apiErr.Message)
		} else {
			log.Printf("%v", err)
		}
		return err
	}

	s, err := a.session.Login(pair.Access, pair.Refresh)
	if err != nil {
		// The server issued a token the client cannot decode. The session is
		// already torn down; surface the oddity instead of a silent logout.
		log.Printf("login failed: %v", err)
		return err
	}

	fmt.Printf("Welcome, %s!\n", s.Username)
	a.refreshCart(ctx)
	return nil
}

// Logout clears the persisted credential, the session, and the cached cart.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(); err != nil {
		log.Printf("logout error: %v", err)
		return err
	}
	a.cart = nil
	fmt.Println("Logged out.")
	return nil
}
