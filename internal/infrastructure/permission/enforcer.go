// Package permission mirrors the role level grants of the access policy into
// casbin so that routes can be gated before any ticket is loaded.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// ResourceTicket is the casbin object for every ticket operation.
const ResourceTicket = "ticket"

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	persist  bool
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer keeps policies in casbin_rule through the gorm adapter.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		persist:  true,
		logger:   log,
	}, nil
}

// NewMemoryEnforcer holds policies in memory only.
func NewMemoryEnforcer(log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Sync replaces every stored ticket policy with the given grants. Changes
// are written row by row through auto-save.
func (e *Enforcer) Sync(grants []access.Grant) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemoveFilteredPolicy(1, ResourceTicket); err != nil {
		e.logger.Errorw("failed to remove stale policies", "error", err)
		return fmt.Errorf("failed to remove stale policies: %w", err)
	}
	for _, g := range grants {
		if _, err := e.enforcer.AddPolicy(string(g.Role), ResourceTicket, string(g.Operation)); err != nil {
			e.logger.Errorw("failed to add policy", "role", g.Role, "operation", g.Operation, "error", err)
			return fmt.Errorf("failed to add policy [%s, %s]: %w", g.Role, g.Operation, err)
		}
	}

	e.logger.Infow("ticket permissions synchronised", "policies", len(grants))
	return nil
}

// Enforce reports whether role may perform op on tickets.
func (e *Enforcer) Enforce(role string, op access.Operation) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, ResourceTicket, string(op))
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "operation", op)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// LoadPolicy reloads policies from storage.
func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.persist {
		return nil
	}
	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}
	return nil
}
