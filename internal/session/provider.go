package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned by an Authenticator that rejects a sign-in.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNoSession is returned when an action requires a signed-in identity.
var ErrNoSession = errors.New("not signed in")

// Authenticator verifies credentials. The mechanism behind it is opaque to the provider.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Identity, error)
}

const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

// DemoAuthenticator accepts the single demo account.
type DemoAuthenticator struct{}

func (DemoAuthenticator) Authenticate(_ context.Context, email, password string) (Identity, error) {
	if email == DemoEmail && password == DemoPassword {
		return Identity{ID: "user-1", Name: "Demo User", Email: DemoEmail, Role: RoleJobSeeker}, nil
	}
	return Identity{}, ErrInvalidCredentials
}

// Provider owns the current identity. It is passed explicitly to whatever needs it.
type Provider struct {
	store  Store
	auth   Authenticator
	logger *zap.Logger

	mu      sync.RWMutex
	current *Identity
}

func NewProvider(store Store, auth Authenticator, logger *zap.Logger) *Provider {
	if auth == nil {
		auth = DemoAuthenticator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{store: store, auth: auth, logger: logger}
}

// Restore loads a previously persisted identity, if any.
func (p *Provider) Restore(ctx context.Context) error {
	id, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	p.mu.Lock()
	p.current = id
	p.mu.Unlock()

	if id != nil {
		p.logger.Debug("session restored", zap.String("user_id", id.ID), zap.Stringer("role", id.Role))
	}
	return nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Identity{}, errs.Validation("sign in", "email and password are required")
	}

	id, err := p.auth.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return Identity{}, &errs.Error{Kind: errs.KindValidation, Op: "sign in", Message: "authentication failed", Err: err}
		}
		return Identity{}, fmt.Errorf("sign in: %w", err)
	}

	if err := p.persist(ctx, id); err != nil {
		return Identity{}, err
	}
	p.logger.Info("signed in", zap.String("user_id", id.ID), zap.Stringer("role", id.Role))
	return id, nil
}

// SignUp creates a new local identity with the chosen role.
func (p *Provider) SignUp(ctx context.Context, name, email, password string, role Role) (Identity, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	switch {
	case name == "" || email == "" || password == "":
		return Identity{}, errs.Validation("sign up", "name, email and password are required")
	case !role.Valid():
		return Identity{}, errs.Validation("sign up", "unknown role %s", role)
	}

	id := Identity{
		ID:    "user-" + uuid.NewString(),
		Name:  name,
		Email: email,
		Role:  role,
	}

	if err := p.persist(ctx, id); err != nil {
		return Identity{}, err
	}
	p.logger.Info("signed up", zap.String("user_id", id.ID), zap.Stringer("role", id.Role))
	return id, nil
}

// SignOut removes the persisted identity.
func (p *Provider) SignOut(ctx context.Context) error {
	if err := p.store.Delete(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.logger.Info("signed out")
	return nil
}

// Current returns the signed-in identity.
func (p *Provider) Current() (Identity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.current == nil {
		return Identity{}, false
	}
	return *p.current, true
}

// Active reports whether someone is signed in.
func (p *Provider) Active() bool {
	_, ok := p.Current()
	return ok
}

// RequireRole returns the current identity when it has the given role.
func (p *Provider) RequireRole(role Role) (Identity, error) {
	id, ok := p.Current()
	if !ok {
		return Identity{}, ErrNoSession
	}
	if id.Role != role {
		return Identity{}, fmt.Errorf("this action requires the %s role, signed in as %s", role, id.Role)
	}
	return id, nil
}

func (p *Provider) persist(ctx context.Context, id Identity) error {
	if err := p.store.Save(ctx, id); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	p.mu.Lock()
	p.current = &id
	p.mu.Unlock()
	return nil
}
