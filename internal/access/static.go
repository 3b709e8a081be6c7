// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

// Package access provides permission checks for draw-point operations.
package access

import (
	"sync"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// Permission names gating draw-point operations.
const (
	PermissionCreate = "gacha.create"
	PermissionList   = "gacha.list"
	PermissionModify = "gacha.modify"
	PermissionDelete = "gacha.delete"
	PermissionOp     = "gacha.op"
)

// AccessControl is the authorization contract consumed by the coordinator
// and the command dispatcher.
type AccessControl interface {
	Check(subject, permission string) bool
}

// compiledPermission holds a permission pattern and its compiled glob.
type compiledPermission struct {
	pattern string
	glob    glob.Glob
}

// StaticAccessControl implements AccessControl with static role
// definitions. Permission patterns are globs with '.' as separator, so
// "gacha.*" grants every draw-point permission.
//
// Thread-safety: roles is immutable after construction; only subjects is
// mutable and protected by mu.
type StaticAccessControl struct {
	roles    map[string][]compiledPermission
	subjects map[string]string // subjectID → roleName
	mu       sync.RWMutex      // protects subjects only
}

// DefaultRoles returns the built-in role → permission-pattern table.
func DefaultRoles() map[string][]string {
	return map[string][]string{
		"player":   {PermissionList},
		"builder":  {PermissionCreate, PermissionList, PermissionModify, PermissionDelete},
		"operator": {"gacha.*"},
	}
}

// NewStaticAccessControl creates an access controller with the default
// roles. Panics if a default pattern fails to compile (a code bug).
func NewStaticAccessControl() *StaticAccessControl {
	ac, err := NewStaticAccessControlWithRoles(DefaultRoles())
	if err != nil {
		panic("invalid permission pattern in DefaultRoles: " + err.Error())
	}
	return ac
}

// NewStaticAccessControlWithRoles creates an access controller with custom
// roles. Returns an error when a permission pattern is invalid glob syntax.
func NewStaticAccessControlWithRoles(roles map[string][]string) (*StaticAccessControl, error) {
	compiled := make(map[string][]compiledPermission, len(roles))
	for role, patterns := range roles {
		perms := make([]compiledPermission, 0, len(patterns))
		for _, p := range patterns {
			g, err := glob.Compile(p, '.')
			if err != nil {
				return nil, oops.With("role", role).With("pattern", p).Wrap(err)
			}
			perms = append(perms, compiledPermission{pattern: p, glob: g})
		}
		compiled[role] = perms
	}
	return &StaticAccessControl{
		roles:    compiled,
		subjects: make(map[string]string),
	}, nil
}

// AssignRole maps a subject to a role. An empty role removes the mapping.
func (ac *StaticAccessControl) AssignRole(subject, role string) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if role == "" {
		delete(ac.subjects, subject)
		return
	}
	ac.subjects[subject] = role
}

// Check reports whether the subject's role grants the permission.
// Unknown subjects are denied.
func (ac *StaticAccessControl) Check(subject, permission string) bool {
	ac.mu.RLock()
	role, ok := ac.subjects[subject]
	ac.mu.RUnlock()
	if !ok {
		return false
	}
	for _, perm := range ac.roles[role] {
		if perm.glob.Match(permission) {
			return true
		}
	}
	return false
}

// Compile-time interface check.
var _ AccessControl = (*StaticAccessControl)(nil)
