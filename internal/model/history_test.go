package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEvent(t *testing.T) {
	t.Run("known tags normalize to themselves", func(t *testing.T) {
		for _, tag := range []string{
			"created", "manufactured", "quality_check",
			"shipped_to_distributor", "received_by_distributor",
			"shipped_to_retailer", "received_by_retailer",
			"purchased", "verified",
		} {
			event, label := NormalizeEvent(tag)
			assert.Equal(t, EventType(tag), event)
			assert.Empty(t, label)
		}
	})

	t.Run("unknown tags become custom with label", func(t *testing.T) {
		event, label := NormalizeEvent("shipped")
		assert.Equal(t, EventCustom, event)
		assert.Equal(t, "shipped", label)
	})
}

func TestDefaultPermissions(t *testing.T) {
	t.Run("admin gets everything", func(t *testing.T) {
		assert.ElementsMatch(t, AllPermissions, DefaultPermissions(RoleAdmin))
	})

	t.Run("guest gets view and verify only", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]Permission{PermViewProduct, PermVerifyProduct},
			DefaultPermissions(RoleGuest))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		perms := DefaultPermissions(RoleGuest)
		perms[0] = Permission("mutated")
		assert.Equal(t, PermViewProduct, RolePermissions[RoleGuest][0])
	})
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole(Role("wizard")))

	assert.True(t, SelfAssignable(RoleConsumer))
	assert.False(t, SelfAssignable(RoleAdmin))
	assert.False(t, SelfAssignable(RoleGuest))

	assert.True(t, TradeRole(RoleManufacturer))
	assert.True(t, TradeRole(RoleDistributor))
	assert.True(t, TradeRole(RoleRetailer))
	assert.False(t, TradeRole(RoleConsumer))
}
