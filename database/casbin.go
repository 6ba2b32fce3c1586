package database

import (
	"fmt"

	"community-service/config"
	"community-service/model"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// RESTful RBAC: subjects are user ids grouped into roles, objects are URL
// paths, actions are HTTP methods.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Casbin builds the enforcer over the same store as everything else and
// installs the admin policy for the skill-mutation routes.
func Casbin(db *gorm.DB) (*casbin.Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize casbin adapter: %w", err)
	}

	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	e, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if hasPolicy, _ := e.HasPolicy(model.RoleAdmin, "/api/skills*", "(POST)|(PUT)|(DELETE)"); !hasPolicy {
		if _, err := e.AddPolicy(model.RoleAdmin, "/api/skills*", "(POST)|(PUT)|(DELETE)"); err != nil {
			return nil, err
		}
	}

	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return e, nil
}

// SeedAdmin promotes the configured admin account if it already registered.
// Accounts registering later with ADMIN_EMAIL are promoted at signup.
func SeedAdmin(db *gorm.DB, e *casbin.Enforcer) error {
	email := config.Config("ADMIN_EMAIL")
	if email == "" {
		return nil
	}

	user := new(model.User)
	if count := db.Where(&model.User{Email: email}).First(user).RowsAffected; count == 0 {
		return nil
	}

	if user.Role != model.RoleAdmin {
		user.Role = model.RoleAdmin
		if err := db.Save(user).Error; err != nil {
			return err
		}
	}

	_, err := e.AddGroupingPolicy(fmt.Sprint(user.ID), model.RoleAdmin)
	return err
}
