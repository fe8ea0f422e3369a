// Package authz evaluates role permissions with a casbin enforcer whose
// policy is built from the persisted role documents.
package authz

import (
	"context"
	_ "embed"
	"log/slog"
	"sync"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/infra/metrics"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/fx"
)

//go:embed model.conf
var embeddedModel string

// fallbackRole is evaluated for role names that have no document.
const fallbackRole = entity.RoleViewer

// Params defines the dependencies of the authorizer.
type Params struct {
	fx.In

	Roles  repository.RoleRepository
	Logger *slog.Logger
}

type casbinAuthorizer struct {
	roles  repository.RoleRepository
	logger *slog.Logger

	mu       sync.RWMutex
	enforcer *casbin.SyncedEnforcer
	known    map[string]struct{}
}

// New creates the authorizer and loads the current roles.
func New(params Params) (service.Authorizer, error) {
	a := &casbinAuthorizer{
		roles:  params.Roles,
		logger: params.Logger,
	}

	if err := a.Reload(context.Background()); err != nil {
		return nil, err
	}

	return a, nil
}

// Reload rebuilds the enforcer from the role store and swaps it in.
func (a *casbinAuthorizer) Reload(ctx context.Context) error {
	roles, err := a.roles.ListAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list roles for policy")
	}

	enforcer, known, err := buildEnforcer(roles)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.enforcer = enforcer
	a.known = known
	a.mu.Unlock()

	a.logger.Debug("Authorization policy loaded", slog.Int("roles", len(known)))

	return nil
}

func (a *casbinAuthorizer) HasRole(role string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.known[role]

	return ok
}

func (a *casbinAuthorizer) Can(ctx context.Context, role string, resource entity.Resource, action entity.Action) bool {
	a.mu.RLock()
	enforcer := a.enforcer
	_, known := a.known[role]
	a.mu.RUnlock()

	subject := role
	if !known {
		a.logger.WarnContext(ctx, "Unknown role evaluated as viewer", slog.String("role", role))
		subject = fallbackRole
	}

	allowed, err := enforcer.Enforce(subject, string(resource), string(action))
	if err != nil {
		a.logger.ErrorContext(ctx, "Authorization check failed", slog.Any("error", err))
		allowed = false
	}

	metrics.RecordAuthzDecision(subject, string(resource), string(action), allowed)

	return allowed
}

func buildEnforcer(roles []*entity.Role) (*casbin.SyncedEnforcer, map[string]struct{}, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load casbin model")
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create casbin enforcer")
	}

	known := make(map[string]struct{}, len(roles))
	var rules [][]string
	for _, role := range roles {
		known[role.Name] = struct{}{}
		rules = append(rules, policyRules(role)...)
	}

	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return nil, nil, errors.Wrap(err, "failed to add role policies")
		}
	}

	return enforcer, known, nil
}

// policyRules flattens one role document into (role, resource, action) rules.
func policyRules(role *entity.Role) [][]string {
	var rules [][]string
	for resource, grant := range role.Permissions {
		for _, action := range entity.Actions() {
			if grant.Allows(action) {
				rules = append(rules, []string{role.Name, string(resource), string(action)})
			}
		}
	}

	return rules
}
