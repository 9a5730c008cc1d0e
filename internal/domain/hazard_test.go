package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-intel-service/internal/domain"
)

func TestHazard_OperatingThresholdIsMediumTier(t *testing.T) {
	heat := domain.Hazards["extreme_heat"]
	assert.Equal(t, 35.0, heat.OperatingThreshold())

	cold := domain.Hazards["extreme_cold"]
	assert.Equal(t, -10.0, cold.OperatingThreshold())
}

func TestHazard_SatisfiesDirection(t *testing.T) {
	heat := domain.Hazards["extreme_heat"]
	assert.True(t, heat.Satisfies(36, 35))
	assert.False(t, heat.Satisfies(35, 35)) // strict comparison
	assert.False(t, heat.Satisfies(30, 35))

	cold := domain.Hazards["extreme_cold"]
	assert.True(t, cold.Satisfies(-15, -10))
	assert.False(t, cold.Satisfies(-10, -10))
	assert.False(t, cold.Satisfies(0, -10))
}

func TestHazard_OnlyExtremeColdIsBelow(t *testing.T) {
	for id, hazard := range domain.Hazards {
		if id == "extreme_cold" {
			assert.Equal(t, domain.DirectionBelow, hazard.Direction)
			continue
		}
		assert.Equal(t, domain.DirectionAbove, hazard.Direction, "hazard %s", id)
	}
}

func TestHazard_TiersComplete(t *testing.T) {
	for id, hazard := range domain.Hazards {
		for _, tier := range domain.SeverityTiers {
			_, ok := hazard.Tiers[tier]
			assert.True(t, ok, "hazard %s missing tier %s", id, tier)
		}
	}
}

func TestActivities_ReferenceKnownHazards(t *testing.T) {
	require.NotEmpty(t, domain.Activities)
	for id, profile := range domain.Activities {
		assert.NotEmpty(t, profile.Hazards, "activity %s", id)
		for _, hazardID := range profile.Hazards {
			_, ok := domain.Hazards[hazardID]
			assert.True(t, ok, "activity %s references unknown hazard %s", id, hazardID)
		}
	}
}

func TestActivities_SkiingTracksWinterHazards(t *testing.T) {
	skiing, ok := domain.Activities["skiing"]
	require.True(t, ok)
	assert.Contains(t, skiing.Hazards, "extreme_cold")
	assert.Contains(t, skiing.Hazards, "strong_winds")
	assert.Contains(t, skiing.Hazards, "poor_visibility")
}
