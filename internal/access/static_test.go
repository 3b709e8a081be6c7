// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GachaPoint Contributors

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAccessControl_DefaultRoles(t *testing.T) {
	ac := NewStaticAccessControl()
	ac.AssignRole("actor:player1", "player")
	ac.AssignRole("actor:builder1", "builder")
	ac.AssignRole("actor:op1", "operator")

	tests := []struct {
		subject    string
		permission string
		want       bool
	}{
		{"actor:player1", PermissionList, true},
		{"actor:player1", PermissionCreate, false},
		{"actor:player1", PermissionDelete, false},
		{"actor:builder1", PermissionCreate, true},
		{"actor:builder1", PermissionModify, true},
		{"actor:builder1", PermissionDelete, true},
		{"actor:builder1", PermissionOp, false},
		{"actor:op1", PermissionCreate, true},
		{"actor:op1", PermissionOp, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ac.Check(tt.subject, tt.permission),
			"subject=%s permission=%s", tt.subject, tt.permission)
	}
}

func TestStaticAccessControl_UnknownSubjectDenied(t *testing.T) {
	ac := NewStaticAccessControl()
	assert.False(t, ac.Check("actor:stranger", PermissionList))
}

func TestStaticAccessControl_WildcardUsesDotSeparator(t *testing.T) {
	ac, err := NewStaticAccessControlWithRoles(map[string][]string{
		"admin": {"gacha.*"},
	})
	require.NoError(t, err)
	ac.AssignRole("a", "admin")

	assert.True(t, ac.Check("a", "gacha.create"))
	assert.False(t, ac.Check("a", "gacha.admin.nested"),
		"single wildcard must not cross a separator")
	assert.False(t, ac.Check("a", "other.create"))
}

func TestStaticAccessControl_AssignRole(t *testing.T) {
	ac := NewStaticAccessControl()
	ac.AssignRole("a", "player")
	require.True(t, ac.Check("a", PermissionList))

	// Reassignment replaces the role.
	ac.AssignRole("a", "builder")
	assert.True(t, ac.Check("a", PermissionCreate))

	// Empty role revokes.
	ac.AssignRole("a", "")
	assert.False(t, ac.Check("a", PermissionList))
}

func TestStaticAccessControl_UnknownRoleDenied(t *testing.T) {
	ac := NewStaticAccessControl()
	ac.AssignRole("a", "no-such-role")
	assert.False(t, ac.Check("a", PermissionList))
}

func TestNewStaticAccessControlWithRoles_InvalidPattern(t *testing.T) {
	_, err := NewStaticAccessControlWithRoles(map[string][]string{
		"broken": {"gacha.["},
	})
	assert.Error(t, err)
}
