package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/flood-allocator/backend/internal/allocator"
)

func ptr[T any](v T) *T {
	return &v
}

func TestOverrideApply(t *testing.T) {
	defaults := testDefaults()

	t.Run("nil keeps defaults", func(t *testing.T) {
		var swarm *SwarmOverride
		var firefly *FireflyOverride
		var weights *WeightsOverride
		var lambdas *LambdasOverride

		assert.Equal(t, defaults.Swarm, swarm.apply(defaults.Swarm))
		assert.Equal(t, defaults.Firefly, firefly.apply(defaults.Firefly))
		assert.Equal(t, defaults.Weights, weights.apply(defaults.Weights))
		assert.Equal(t, defaults.Lambdas, lambdas.apply(defaults.Lambdas))
		assert.Nil(t, weights.Values())
	})

	t.Run("swarm", func(t *testing.T) {
		got := (&SwarmOverride{Particles: ptr(40), Social: ptr(2.0)}).apply(defaults.Swarm)
		assert.Equal(t, allocator.SwarmParameters{
			Particles:   40,
			Iterations:  20,
			Inertia:     0.5,
			Cognitive:   1.5,
			Social:      2,
			LogInterval: 10,
		}, got)
	})

	t.Run("firefly", func(t *testing.T) {
		got := (&FireflyOverride{Gamma: ptr(0.0), LogInterval: ptr(3)}).apply(defaults.Firefly)
		assert.Equal(t, allocator.FireflyParameters{
			Fireflies:   6,
			Iterations:  12,
			Alpha:       0.5,
			Beta0:       1,
			Gamma:       0,
			LogInterval: 3,
		}, got)
	})

	t.Run("weights", func(t *testing.T) {
		got := (&WeightsOverride{W4: ptr(0.6)}).apply(defaults.Weights)
		assert.Equal(t, allocator.Weights{W1: 0.2, W2: 0.2, W3: 0.2, W4: 0.6, W5: 0.2}, got)
	})

	t.Run("lambdas", func(t *testing.T) {
		got := (&LambdasOverride{Health: ptr(1.0)}).apply(defaults.Lambdas)
		assert.Equal(t, allocator.Lambdas{SRR: 0.5, Health: 1, Log: 0.2}, got)
	})
}
