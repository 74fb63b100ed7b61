// Package services contains the application services of the MarketFeed
// client. This file defines the authentication service: signup, password
// login, federated login, logout and resolution of the current user.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/client/federated"
	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/client/session"
	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/dmitrijs2005/marketfeed/internal/cryptox"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
)

// SignupRequest carries the fields of the signup form.
type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: create a password account and open a durable session.
//   - Login: check a password and open a session, durable if rememberMe.
//   - LoginWithFederatedToken: open a durable session from a provider token,
//     provisioning the account on first use.
//   - LoginWithProvider: wait for a provider, then log in with its token.
//   - Logout: end the session. Safe to call when anonymous.
//   - DeleteAccount: remove the signed-in user's record and end the session.
//     Their posts stay and fall back to the raw email.
//   - CurrentUser: the record behind the session.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*models.User, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, error)
	LoginWithFederatedToken(ctx context.Context, token string) (*models.User, error)
	LoginWithProvider(ctx context.Context, p federated.Provider) (*models.User, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	users   users.Repository
	session *session.Manager
	policy  federated.Policy
	log     logging.Logger
}

// NewAuthService constructs an AuthService over the given user store and
// session. policy bounds the wait in LoginWithProvider.
func NewAuthService(repo users.Repository, sess *session.Manager, policy federated.Policy, log logging.Logger) AuthService {
	return &authService{users: repo, session: sess, policy: policy, log: log.With("service", "auth")}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Signup validates the form, stores a new user with a password digest and
// opens a durable session for it.
func (a *authService) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	if blank(req.Name) || blank(req.Email) || blank(req.Password) || blank(req.Confirm) {
		return nil, common.ErrValidation
	}
	if req.Password != req.Confirm {
		return nil, common.ErrPasswordMismatch
	}

	email := users.Normalize(req.Email)
	digest := cryptox.HashPassword([]byte(req.Password))
	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: &digest,
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := a.session.Establish(ctx, email, true); err != nil {
		return nil, err
	}

	a.log.Info(ctx, "user signed up", "email", email)
	return user.Clone(), nil
}

// Login checks password against the stored digest. Unknown users,
// federated-only accounts and wrong passwords all fail the same way.
func (a *authService) Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, error) {
	if blank(email) || blank(password) {
		return nil, common.ErrValidation
	}

	user, err := a.users.Find(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == nil {
		return nil, common.ErrInvalidCredentials
	}

	ok, err := cryptox.VerifyPassword(*user.Password, []byte(password))
	if err != nil {
		a.log.Warn(ctx, "stored password digest is unreadable", "email", user.Email, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	if err := a.session.Establish(ctx, user.Email, rememberMe); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "user logged in", "email", user.Email, "remember", rememberMe)
	return user, nil
}

// LoginWithFederatedToken reads the identity claims of token and opens a
// durable session for them. The token signature is not checked; see
// federated.ParseClaims.
func (a *authService) LoginWithFederatedToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := federated.ParseClaims(token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.Find(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{Name: claims.Name, Email: claims.Email, Federated: true}
		switch err := a.users.Create(ctx, user); {
		case errors.Is(err, common.ErrDuplicateUser):
			if user, err = a.users.Find(ctx, claims.Email); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		default:
			a.log.Info(ctx, "federated user provisioned", "email", claims.Email)
		}
	}

	if err := a.session.Establish(ctx, claims.Email, true); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "user logged in with federated token", "email", claims.Email)
	return user, nil
}

// LoginWithProvider waits for p within the configured policy, then logs in
// with the credential it hands out.
func (a *authService) LoginWithProvider(ctx context.Context, p federated.Provider) (*models.User, error) {
	if err := federated.Await(ctx, p, a.policy); err != nil {
		a.log.Warn(ctx, "identity provider not ready", "error", err)
		return nil, err
	}
	token, err := p.Credential(ctx)
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return a.LoginWithFederatedToken(ctx, token)
}

func (a *authService) Logout(ctx context.Context) error {
	email, _ := a.session.Current()
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	if email != "" {
		a.log.Info(ctx, "user logged out", "email", email)
	}
	return nil
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	user, err := a.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if err := a.users.Delete(ctx, user.Email); err != nil {
		return err
	}
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "account deleted", "email", user.Email)
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return currentUser(ctx, a.users, a.session)
}

// currentUser resolves the session through the user store. A session whose
// record is gone counts as no session.
func currentUser(ctx context.Context, repo users.Repository, sess *session.Manager) (*models.User, error) {
	email, ok := sess.Current()
	if !ok {
		return nil, common.ErrNotAuthenticated
	}
	user, err := repo.Find(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrNotAuthenticated
	}
	return user, nil
}
