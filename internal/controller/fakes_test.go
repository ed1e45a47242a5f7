// ABOUTME: Test doubles for the auth and game APIs
// ABOUTME: Function fields let each test script responses and block on demand

package controller

import (
	"context"
	"sync/atomic"

	"github.com/markalston/realm-client/internal/client"
)

type fakeAuth struct {
	loginFn    func(ctx context.Context, creds client.Credentials) (*client.AuthResult, error)
	registerFn func(ctx context.Context, creds client.Credentials) (*client.RegisterResult, error)

	loginCalls    atomic.Int32
	registerCalls atomic.Int32
	lastCreds     atomic.Pointer[client.Credentials]
}

func (f *fakeAuth) Login(ctx context.Context, creds client.Credentials) (*client.AuthResult, error) {
	f.loginCalls.Add(1)
	f.lastCreds.Store(&creds)
	return f.loginFn(ctx, creds)
}

func (f *fakeAuth) Register(ctx context.Context, creds client.Credentials) (*client.RegisterResult, error) {
	f.registerCalls.Add(1)
	f.lastCreds.Store(&creds)
	return f.registerFn(ctx, creds)
}

type fakeGame struct {
	resourcesFn func(ctx context.Context, token string) (*client.ResourceState, error)
	collectFn   func(ctx context.Context, token string) (*client.CollectResult, error)
	upgradeFn   func(ctx context.Context, token, building string) (*client.BuildResult, error)

	resourceCalls atomic.Int32
	collectCalls  atomic.Int32
	lastToken     atomic.Value
}

func (f *fakeGame) Resources(ctx context.Context, token string) (*client.ResourceState, error) {
	f.resourceCalls.Add(1)
	f.lastToken.Store(token)
	return f.resourcesFn(ctx, token)
}

func (f *fakeGame) CollectResources(ctx context.Context, token string) (*client.CollectResult, error) {
	f.collectCalls.Add(1)
	f.lastToken.Store(token)
	return f.collectFn(ctx, token)
}

func (f *fakeGame) UpgradeBuilding(ctx context.Context, token, building string) (*client.BuildResult, error) {
	f.lastToken.Store(token)
	return f.upgradeFn(ctx, token, building)
}

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

func transportErr() error {
	return &client.TransportError{Op: "POST /x", Err: context.DeadlineExceeded}
}
