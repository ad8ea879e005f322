package authorize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	casbin "github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrInvalidArgs = errors.New("invalid authorization arguments")
)

// IAuthorization is the only thing services/middleware should depend on.
type IAuthorization interface {
	// Enforce answers: "may role act on object?"
	Enforce(ctx context.Context, role Role, object Resource, action Action) (bool, error)

	// MustEnforce returns ErrForbidden if not allowed.
	MustEnforce(ctx context.Context, role Role, object Resource, action Action) error
}

// Authorization is a thin typed wrapper around casbin.Enforcer.
type Authorization struct {
	enforcer *casbin.Enforcer
}

// New builds an enforcer from cfg and wraps it, with audit logging when
// enabled.
func New(cfg Config) (IAuthorization, error) {
	m, err := loadModel(cfg.ModelPath)
	if err != nil {
		return nil, err
	}

	var e *casbin.Enforcer
	if cfg.PolicyPath != "" {
		e, err = casbin.NewEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		e, err = casbin.NewEnforcer(m)
	}
	if err != nil {
		return nil, fmt.Errorf("authorize: create enforcer: %w", err)
	}
	e.EnableAutoSave(false)

	a, err := NewAuthorization(e)
	if err != nil {
		return nil, err
	}
	if len(e.GetPolicy()) == 0 {
		if err := a.Seed(DefaultPolicies(), DefaultInheritance()); err != nil {
			return nil, err
		}
	}

	if cfg.EnableAudit {
		return NewAuditedAuthorization(a, slog.Default()), nil
	}
	return a, nil
}

func loadModel(path string) (model.Model, error) {
	if path == "" {
		return model.NewModelFromString(DefaultModel)
	}
	m, err := model.NewModelFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("authorize: load model %s: %w", path, err)
	}
	return m, nil
}

// NewAuthorization wraps an already-configured Enforcer
func NewAuthorization(e *casbin.Enforcer) (*Authorization, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: enforcer is nil", ErrInvalidArgs)
	}
	return &Authorization{enforcer: e}, nil
}

func (a *Authorization) Enforce(ctx context.Context, role Role, object Resource, action Action) (bool, error) {
	_ = ctx

	if role == "" {
		return false, fmt.Errorf("%w: role is empty", ErrInvalidArgs)
	}
	if _, ok := KnownResources[object]; !ok {
		return false, fmt.Errorf("%w: unknown resource: %q", ErrInvalidArgs, object)
	}
	if _, ok := KnownActions[action]; !ok {
		return false, fmt.Errorf("%w: unknown action: %q", ErrInvalidArgs, action)
	}

	return a.enforcer.Enforce(string(role), string(object), string(action))
}

func (a *Authorization) MustEnforce(ctx context.Context, role Role, object Resource, action Action) error {
	ok, err := a.Enforce(ctx, role, object, action)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// Seed loads policies and role inheritance into the in-memory enforcer.
func (a *Authorization) Seed(policies []PermissionPolicy, inherit map[Role]Role) error {
	for _, p := range policies {
		if _, err := a.enforcer.AddPolicy(string(p.Role), string(p.Resource), string(p.Action), string(p.Effect)); err != nil {
			return fmt.Errorf("authorize: add policy %v: %w", p, err)
		}
	}
	for child, parent := range inherit {
		if _, err := a.enforcer.AddGroupingPolicy(string(child), string(parent)); err != nil {
			return fmt.Errorf("authorize: add role %s: %w", child, err)
		}
	}
	return nil
}
