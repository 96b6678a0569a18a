package searcher

import (
	"math"
	"testing"

	"mcts/game"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(1.0, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCB1 value", func(t *testing.T) {
		policy := newUCT(0.7, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + 0.7*math.Sqrt(2.0*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute score/n + bias*sqrt(2*ln(N)/n)")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(1.0, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("zero bias only exploits", func(t *testing.T) {
		policy := newUCT(0, 100)

		require.Equal(t, 0.25, policy.evaluate(1, 4), "Should equal the win ratio")
	})

	t.Run("single parent visit has no exploration term", func(t *testing.T) {
		policy := newUCT(1.0, 1)

		require.Equal(t, 1.0, policy.evaluate(1, 1), "ln(1) should cancel exploration")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newUCT(1.0, 100)
		policy2 := newUCT(1.0, 1000)

		require.Greater(t, policy2.evaluate(5, 10), policy1.evaluate(5, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(1.0, 100)

		require.Greater(t, policy.evaluate(5, 10), policy.evaluate(10, 20),
			"More child visits at the same ratio should decrease exploration term")
	})

	t.Run("exploitation term increases with score", func(t *testing.T) {
		policy := newUCT(1.0, 100)

		require.Greater(t, policy.evaluate(10, 10), policy.evaluate(5, 10),
			"More score should increase exploitation term")
	})
}

func TestReward(t *testing.T) {
	require.Equal(t, WIN, reward(game.White, true, game.White))
	require.Equal(t, LOSS, reward(game.White, true, game.Black))
	require.Equal(t, DRAW, reward(game.White, false, game.White))
	require.Equal(t, DRAW, reward(game.Black, false, game.White))
}
