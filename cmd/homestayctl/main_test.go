package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlans_Default(t *testing.T) {
	plans, err := parsePlans(defaultPlans)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, "Basic", plans[0].Name)
	assert.Equal(t, 2500.0, plans[0].PriceMonthly)
	assert.Equal(t, 1, plans[0].MaxProperties)
	assert.Equal(t, "Enterprise", plans[2].Name)
	assert.Equal(t, 999, plans[2].MaxProperties)
	for _, p := range plans {
		assert.True(t, p.IsActive)
		assert.Equal(t, "LKR", p.Currency)
		assert.NotEmpty(t, p.Features)
	}
}

func TestParsePlans_ActiveDefaultsTrue(t *testing.T) {
	plans, err := parsePlans([]byte("- name: Solo\n  max_properties: 1\n- name: Old\n  max_properties: 2\n  is_active: false\n"))
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.True(t, plans[0].IsActive)
	assert.False(t, plans[1].IsActive)
}

func TestParsePlans_Invalid(t *testing.T) {
	_, err := parsePlans([]byte("name: [unterminated"))
	assert.Error(t, err)

	_, err = parsePlans([]byte("[]"))
	assert.Error(t, err)
}
