package client

import (
	"context"
	"errors"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/dto/request"
)

var ErrNotAdmin = errors.New("access denied: admin credentials required")

// Auth pairs the API with the session so a successful login is remembered.
type Auth struct {
	api     *Client
	session *Session
}

func NewAuth(api *Client, session *Session) *Auth {
	return &Auth{api: api, session: session}
}

func (a *Auth) Register(ctx context.Context, name, email, phone, password string) (Identity, error) {
	resp, err := a.api.Register(ctx, request.RegisterRequest{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		return Identity{}, err
	}
	if err := a.session.Login(resp); err != nil {
		return Identity{}, err
	}
	identity, _ := a.session.Identity()
	return identity, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (Identity, error) {
	resp, err := a.api.Login(ctx, request.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Identity{}, err
	}
	if err := a.session.Login(resp); err != nil {
		return Identity{}, err
	}
	identity, _ := a.session.Identity()
	return identity, nil
}

// AdminLogin behaves like Login but refuses, without saving anything, when
// the account is not an admin.
func (a *Auth) AdminLogin(ctx context.Context, email, password string) (Identity, error) {
	resp, err := a.api.Login(ctx, request.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Identity{}, err
	}
	if resp.User.Role != entity.RoleAdmin {
		return Identity{}, ErrNotAdmin
	}
	if err := a.session.Login(resp); err != nil {
		return Identity{}, err
	}
	identity, _ := a.session.Identity()
	return identity, nil
}

func (a *Auth) Logout() error {
	return a.session.Clear()
}
