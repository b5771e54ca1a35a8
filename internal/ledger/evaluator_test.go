package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBonusEvents(s *Store, description string) int {
	count := 0
	for _, e := range s.LoyaltyEvents() {
		if e.Type == LoyaltyBonus && e.Description == description {
			count++
		}
	}
	return count
}

func progressFor(s *Store, challengeID string) ChallengeProgress {
	for _, p := range s.ChallengeProgress() {
		if p.ChallengeID == challengeID {
			return p
		}
	}
	return ChallengeProgress{}
}

func completeTrip(t *testing.T, s *Store) {
	t.Helper()
	open, err := s.StartTrip(ProviderReaVaya, "Thokoza Park")
	require.NoError(t, err)
	_, err = s.EndTrip(open, "Library Gardens")
	require.NoError(t, err)
}

func TestChallengeCompletesExactlyOnce(t *testing.T) {
	// every fare draw is R5 so six trips cost R30 total
	s := freshUserStore(t, 0)

	const bonusDescription = "Challenge Complete: Weekly Wanderer"

	for i := 0; i < 4; i++ {
		completeTrip(t, s)
	}
	p := progressFor(s, "ch-weekly-wanderer")
	assert.Equal(t, int64(4), p.Current)
	assert.False(t, p.Completed)
	assert.Zero(t, countBonusEvents(s, bonusDescription))

	pointsBefore := s.User().LoyaltyPoints

	// fifth successful trip completes the challenge
	completeTrip(t, s)
	p = progressFor(s, "ch-weekly-wanderer")
	assert.Equal(t, int64(5), p.Current)
	assert.True(t, p.Completed)
	assert.Equal(t, 1, countBonusEvents(s, bonusDescription))
	// +5 trip points +150 challenge bonus
	assert.Equal(t, pointsBefore+5+150, s.User().LoyaltyPoints)

	// a sixth trip must not re-award
	completeTrip(t, s)
	assert.Equal(t, 1, countBonusEvents(s, bonusDescription))
}

func TestTopUpChallengeTracksAmount(t *testing.T) {
	s := freshUserStore(t)

	_, err := s.AddFunds(15000, "")
	require.NoError(t, err)

	p := progressFor(s, "ch-big-spender")
	assert.Equal(t, int64(15000), p.Current)
	assert.False(t, p.Completed)

	_, err = s.AddFunds(5000, "")
	require.NoError(t, err)

	p = progressFor(s, "ch-big-spender")
	assert.Equal(t, int64(20000), p.Current)
	assert.True(t, p.Completed)
	assert.Equal(t, 1, countBonusEvents(s, "Challenge Complete: Big Spender"))
}

func TestCompletedChallengeStopsCounting(t *testing.T) {
	s := freshUserStore(t)

	_, err := s.AddFunds(25000, "")
	require.NoError(t, err)
	p := progressFor(s, "ch-big-spender")
	require.True(t, p.Completed)
	require.Equal(t, int64(25000), p.Current)

	_, err = s.AddFunds(10000, "")
	require.NoError(t, err)

	// counter is frozen once completed
	p = progressFor(s, "ch-big-spender")
	assert.Equal(t, int64(25000), p.Current)
	assert.Equal(t, 1, countBonusEvents(s, "Challenge Complete: Big Spender"))
}

func TestEvaluatorIsIdempotent(t *testing.T) {
	s := freshUserStore(t)

	_, err := s.AddFunds(20000, "")
	require.NoError(t, err)
	require.True(t, progressFor(s, "ch-big-spender").Completed)

	pointsAfter := s.User().LoyaltyPoints
	eventsAfter := len(s.LoyaltyEvents())

	s.EvaluateChallenges()
	s.EvaluateChallenges()

	assert.Equal(t, pointsAfter, s.User().LoyaltyPoints)
	assert.Len(t, s.LoyaltyEvents(), eventsAfter)
}

func TestSimultaneousCompletionSettlesInCatalogOrder(t *testing.T) {
	s := freshUserStore(t, 0)

	// five trips complete Weekly Wanderer; meanwhile push the top-up
	// counter over its goal without triggering evaluation order issues
	_, err := s.AddFunds(20000, "")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		completeTrip(t, s)
	}

	assert.True(t, progressFor(s, "ch-weekly-wanderer").Completed)
	assert.True(t, progressFor(s, "ch-big-spender").Completed)
	assert.Equal(t, 1, countBonusEvents(s, "Challenge Complete: Weekly Wanderer"))
	assert.Equal(t, 1, countBonusEvents(s, "Challenge Complete: Big Spender"))
}
