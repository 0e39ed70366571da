package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	staffSubjectFmt = "staff:%d"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Policy an authorization rule
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service wraps the casbin enforcer for staff role checks
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService creates the authorization service backed by the database
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforce runs an authorization check
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), normalizeObject(obj), normalizeAction(act))
}

// EnforceStaff checks whether a staff member may perform an action
func (s *Service) EnforceStaff(staffID uint, obj, act string) (bool, error) {
	return s.Enforce(SubjectForStaff(staffID), obj, act)
}

// AssignStaffRole replaces a staff member's role binding
func (s *Service) AssignStaffRole(staffID uint, role string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	subject := SubjectForStaff(staffID)
	if _, err := s.enforcer.DeleteRolesForUser(subject); err != nil {
		return fmt.Errorf("clear staff roles failed: %w", err)
	}
	if _, err := s.enforcer.AddGroupingPolicy(subject, RoleSubject(role)); err != nil {
		return fmt.Errorf("assign staff role failed: %w", err)
	}
	return s.saveAndReload()
}

// RemoveStaff drops all bindings for a removed staff member
func (s *Service) RemoveStaff(staffID uint) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if _, err := s.enforcer.DeleteRolesForUser(SubjectForStaff(staffID)); err != nil {
		return fmt.Errorf("remove staff bindings failed: %w", err)
	}
	return s.saveAndReload()
}

func (s *Service) saveAndReload() error {
	if err := s.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("save authz policy failed: %w", err)
	}
	if err := s.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("reload authz policy failed: %w", err)
	}
	return nil
}

// SubjectForStaff builds the enforcement subject for a staff member
func SubjectForStaff(staffID uint) string {
	return fmt.Sprintf(staffSubjectFmt, staffID)
}

// RoleSubject builds the enforcement subject for a role name
func RoleSubject(role string) string {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if strings.HasPrefix(normalized, rolePrefix) {
		return normalized
	}
	return rolePrefix + normalized
}

func normalizeObject(object string) string {
	trimmed := strings.TrimSpace(object)
	if trimmed == "" {
		return "/"
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return trimmed
}

func normalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
