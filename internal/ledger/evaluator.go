package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

// evaluateChallenges scans incomplete challenge progress after a
// counter update and settles every challenge whose goal is reached:
// mark completed, award the challenge points and append one bonus
// LoyaltyEvent. Completion happens at most once per challenge, so
// re-running with no intervening change is a no-op. Multiple
// challenges completing together settle in catalog order.
//
// Caller must hold s.mu.
func (s *Store) evaluateChallenges() {
	for i := range s.progress {
		p := &s.progress[i]
		if p.Completed {
			continue
		}

		challenge := s.challengeByID(p.ChallengeID)
		if challenge.ID == "" || p.Current < challenge.Goal {
			continue
		}

		p.Completed = true
		event := LoyaltyEvent{
			ID:          uuid.NewString(),
			Type:        LoyaltyBonus,
			Description: fmt.Sprintf("Challenge Complete: %s", challenge.Title),
			Date:        s.now(),
			Points:      challenge.Points,
		}
		s.loyaltyEvents = append([]LoyaltyEvent{event}, s.loyaltyEvents...)
		s.user.LoyaltyPoints += challenge.Points
		metrics.RecordChallengeCompleted()
		metrics.RecordPoints(string(LoyaltyBonus), challenge.Points)
	}
}

// EvaluateChallenges re-runs the challenge evaluator against the
// current counters. Exposed for recovery flows; normal commands run it
// themselves.
func (s *Store) EvaluateChallenges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluateChallenges()
}
