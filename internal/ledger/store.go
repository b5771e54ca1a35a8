package ledger

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shoxx1211/Mzansipass/internal/auth"
	"github.com/Shoxx1211/Mzansipass/internal/metrics"
)

// Rand is the source of the demo's randomized business values: trip
// fares and linked-card starting balances. Tests substitute a fixed
// sequence.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a math/rand source. A zero seed gives a
// time-seeded source; any other seed is deterministic.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Store holds the canonical in-memory snapshot of one commuter session:
// profile, cards, history, tickets and the loyalty ledger. Commands are
// serialized by a single mutex and never perform I/O while holding it,
// so no two commands interleave their effects.
type Store struct {
	mu  sync.Mutex
	rng Rand
	now func() time.Time

	user          User
	virtualCard   VirtualCard
	physicalCards []PhysicalCard
	trips         []Trip
	transactions  []Transaction
	loyaltyEvents []LoyaltyEvent
	prasaTickets  []PrasaTicket
	challenges    []Challenge
	rewards       []Reward
	progress      []ChallengeProgress
	alerts        []TransitAlert
}

// New creates a store seeded with the demo session.
func New(rng Rand) *Store {
	s := &Store{
		rng: rng,
		now: time.Now,
	}
	s.seedDemo()
	return s
}

// ---------------------------------------------------------------------
// Wallet commands
// ---------------------------------------------------------------------

// AddFunds tops up a card (the virtual card when cardID is empty),
// appends the Transaction and top-up LoyaltyEvent audit records, awards
// one point per R10 and advances top_up_amount challenges.
func (s *Store) AddFunds(amountCents int64, cardID string) (Transaction, error) {
	if amountCents <= 0 {
		return Transaction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cardID != "" && cardID != VirtualCardID {
		idx := s.findCard(cardID)
		if idx < 0 {
			return Transaction{}, ErrCardNotFound
		}
		s.physicalCards[idx].BalanceCents += amountCents
	} else {
		s.virtualCard.BalanceCents += amountCents
	}

	tx := Transaction{
		ID:          uuid.NewString(),
		Date:        s.now(),
		AmountCents: amountCents,
		Status:      TxCompleted,
	}
	s.transactions = append([]Transaction{tx}, s.transactions...)

	points := int(amountCents / 1000) // one point per R10
	s.awardPoints(LoyaltyTopUp, fmt.Sprintf("Top-up R%.2f", rands(amountCents)), points)

	for i := range s.progress {
		if s.progress[i].Completed {
			continue
		}
		if s.challengeByID(s.progress[i].ChallengeID).Type == ChallengeTopUpAmount {
			s.progress[i].Current += amountCents
		}
	}
	s.evaluateChallenges()

	return tx, nil
}

// LinkCard validates and links a physical provider card. The starting
// balance is a randomized demo value in [0, R200).
func (s *Store) LinkCard(provider Provider, cardNumber, nickname string) (PhysicalCard, error) {
	if !ValidProvider(provider) {
		return PhysicalCard{}, ErrInvalidProvider
	}
	if !isFourDigits(cardNumber) {
		return PhysicalCard{}, ErrInvalidCardNumber
	}
	if strings.TrimSpace(nickname) == "" {
		return PhysicalCard{}, ErrEmptyNickname
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card := PhysicalCard{
		ID:           uuid.NewString(),
		Provider:     provider,
		CardNumber:   cardNumber,
		Nickname:     nickname,
		BalanceCents: int64(s.rng.Intn(200)) * 100,
	}
	s.physicalCards = append(s.physicalCards, card)
	return card, nil
}

// UnlinkCard removes a linked card. There is no balance-zero
// requirement: any remaining balance is forfeited with the card.
func (s *Store) UnlinkCard(cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findCard(cardID)
	if idx < 0 {
		return ErrCardNotFound
	}
	s.physicalCards = append(s.physicalCards[:idx], s.physicalCards[idx+1:]...)
	return nil
}

// ---------------------------------------------------------------------
// Trip commands
// ---------------------------------------------------------------------

// StartTrip opens a trip. The open trip is advisory state held by the
// caller; it joins trip history only when EndTrip closes it.
func (s *Store) StartTrip(provider Provider, from string) (Trip, error) {
	if !ValidProvider(provider) {
		return Trip{}, ErrInvalidProvider
	}
	if strings.TrimSpace(from) == "" {
		return Trip{}, ErrEmptyLocation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return Trip{
		ID:       uuid.NewString(),
		Provider: provider,
		From:     from,
		To:       "Destination",
		Date:     s.now(),
	}, nil
}

// EndTrip draws the fare, charges the virtual card first and falls back
// to the first physical card that can cover it, then closes the trip
// into history, awards one point per rand of fare and advances
// trip_count challenges. Returns ErrPaymentUnavailable, with no state
// change, when no card can pay.
func (s *Store) EndTrip(open Trip, to string) (Trip, error) {
	if !open.Open() || !ValidProvider(open.Provider) || strings.TrimSpace(open.From) == "" {
		return Trip{}, ErrTripNotOpen
	}
	if strings.TrimSpace(to) == "" {
		return Trip{}, ErrEmptyLocation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fareRands := s.rng.Intn(30) + 5 // [R5, R35)
	fareCents := int64(fareRands) * 100

	closed := open
	closed.To = to
	closed.FareCents = fareCents

	switch {
	case s.virtualCard.BalanceCents >= fareCents:
		s.virtualCard.BalanceCents -= fareCents
		closed.CardID = VirtualCardID
		closed.CardNickname = "Virtual Card"
	default:
		idx := -1
		for i := range s.physicalCards {
			if s.physicalCards[i].BalanceCents >= fareCents {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Trip{}, ErrPaymentUnavailable
		}
		s.physicalCards[idx].BalanceCents -= fareCents
		closed.CardID = s.physicalCards[idx].ID
		closed.CardNickname = s.physicalCards[idx].Nickname
	}

	s.trips = append([]Trip{closed}, s.trips...)
	s.awardPoints(LoyaltyTrip, fmt.Sprintf("Trip from %s", open.From), fareRands)

	for i := range s.progress {
		if s.progress[i].Completed {
			continue
		}
		if s.challengeByID(s.progress[i].ChallengeID).Type == ChallengeTripCount {
			s.progress[i].Current++
		}
	}
	s.evaluateChallenges()

	return closed, nil
}

// ---------------------------------------------------------------------
// PRASA ticket commands
// ---------------------------------------------------------------------

// PurchaseTicket sells a PRASA fare product against the virtual card.
// It fails before any mutation when the balance cannot cover the fare.
func (s *Store) PurchaseTicket(ticketType TicketType, from, to string, fareCents int64, source TicketSource) (PrasaTicket, error) {
	if !ValidTicketType(ticketType) {
		return PrasaTicket{}, ErrInvalidTicketType
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return PrasaTicket{}, ErrEmptyLocation
	}
	if fareCents <= 0 {
		return PrasaTicket{}, ErrInvalidAmount
	}
	if source == "" {
		source = SourceApp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.virtualCard.BalanceCents < fareCents {
		return PrasaTicket{}, ErrInsufficientBalance
	}
	s.virtualCard.BalanceCents -= fareCents

	tx := Transaction{
		ID:          uuid.NewString(),
		Date:        s.now(),
		AmountCents: -fareCents,
		Status:      TxCompleted,
		Provider:    ProviderPRASA,
	}
	s.transactions = append([]Transaction{tx}, s.transactions...)

	s.awardPoints(LoyaltyTrip, "PRASA Ticket Purchase", int(fareCents/200))

	purchased := s.now()
	ticket := PrasaTicket{
		ID:           uuid.NewString(),
		TicketType:   ticketType,
		From:         from,
		To:           to,
		PurchaseDate: purchased,
		ValidUntil:   TicketValidUntil(ticketType, purchased),
		QRCodeURL:    fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=MzansiPass-PRASA-%d", purchased.UnixNano()),
		FareCents:    fareCents,
		Status:       TicketActive,
		Source:       source,
	}
	s.prasaTickets = append([]PrasaTicket{ticket}, s.prasaTickets...)
	return ticket, nil
}

// ---------------------------------------------------------------------
// Loyalty commands
// ---------------------------------------------------------------------

// RedeemReward spends points on a catalog reward. Top-up vouchers
// credit the virtual card.
func (s *Store) RedeemReward(rewardID string) (Reward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reward *Reward
	for i := range s.rewards {
		if s.rewards[i].ID == rewardID {
			reward = &s.rewards[i]
			break
		}
	}
	if reward == nil {
		return Reward{}, ErrRewardNotFound
	}
	if s.user.LoyaltyPoints < reward.Cost {
		return Reward{}, ErrInsufficientPoints
	}

	s.user.LoyaltyPoints -= reward.Cost
	if reward.Type == RewardTopUpVoucher {
		s.virtualCard.BalanceCents += reward.ValueCents
	}

	event := LoyaltyEvent{
		ID:          uuid.NewString(),
		Type:        LoyaltyRedeem,
		Description: fmt.Sprintf("Redeemed: %s", reward.Title),
		Date:        s.now(),
		Points:      -reward.Cost,
	}
	s.loyaltyEvents = append([]LoyaltyEvent{event}, s.loyaltyEvents...)

	return *reward, nil
}

// NotifyContact records the fixed Bonsella bonus for letting a contact
// know about a delay. This is the one point-grant path that bypasses
// the challenge evaluator.
func (s *Store) NotifyContact() LoyaltyEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	const contactBonus = 10
	s.awardPoints(LoyaltyContact, "Notified contact about delay", contactBonus)
	return s.loyaltyEvents[0]
}

// ---------------------------------------------------------------------
// Profile commands
// ---------------------------------------------------------------------

// SetPin stores a bcrypt hash of the 4-digit wallet PIN.
func (s *Store) SetPin(pin string) error {
	hash, err := auth.HashPin(pin)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.PinHash = hash
	return nil
}

// VerifyPin checks a candidate PIN against the stored hash.
func (s *Store) VerifyPin(pin string) (bool, error) {
	s.mu.Lock()
	hash := s.user.PinHash
	s.mu.Unlock()

	if hash == "" {
		return false, ErrPinNotSet
	}
	return auth.CheckPin(hash, pin), nil
}

// UpdateCardTheme changes the virtual card's cosmetic theme.
func (s *Store) UpdateCardTheme(theme CardTheme) error {
	if !ValidTheme(theme) {
		return ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.virtualCard.Theme = theme
	return nil
}

// UpdateCardHolderName renames both the embossed card name and the
// user profile.
func (s *Store) UpdateCardHolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.virtualCard.CardHolderName = name
	s.user.FullName = name
	return nil
}

// CreateNewUser resets the whole session to a fresh seeded state: new
// card number, R50 starting balance, 100-point welcome bonus and
// zeroed challenge progress. The alert feed is left as is.
func (s *Store) CreateNewUser(fullName string) (User, error) {
	if strings.TrimSpace(fullName) == "" {
		return User{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	first := strings.ToLower(strings.Fields(fullName)[0])

	s.user = User{
		ID:            uuid.NewString(),
		FullName:      fullName,
		Email:         first + "@mzansipass.co.za",
		LoyaltyPoints: 100,
		Role:          RoleCommuter,
	}
	s.virtualCard = VirtualCard{
		CardNumber:     s.generateCardNumber(),
		CardHolderName: fullName,
		ValidThru:      now.AddDate(4, 0, 0).Format("01/06"),
		BalanceCents:   5000,
		Theme:          ThemeMzansi,
	}
	s.physicalCards = nil
	s.trips = nil
	s.transactions = nil
	s.prasaTickets = nil
	s.loyaltyEvents = []LoyaltyEvent{{
		ID:          uuid.NewString(),
		Type:        LoyaltyBonus,
		Description: "Welcome Bonus",
		Date:        now,
		Points:      100,
	}}
	s.progress = freshProgress(s.challenges)

	return s.user, nil
}

// ---------------------------------------------------------------------
// Transit alert commands
// ---------------------------------------------------------------------

// AddAlert appends an alert to the live transit feed.
func (s *Store) AddAlert(alertType AlertType, provider Provider, category ReportCategory, title, description string) (TransitAlert, error) {
	if provider != "" && !ValidProvider(provider) {
		return TransitAlert{}, ErrInvalidProvider
	}
	if !ValidCategory(category) {
		return TransitAlert{}, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	alert := TransitAlert{
		ID:          uuid.NewString(),
		Type:        alertType,
		Provider:    provider,
		Category:    category,
		Title:       title,
		Description: description,
		Timestamp:   s.now(),
	}
	s.alerts = append([]TransitAlert{alert}, s.alerts...)
	return alert, nil
}

// ---------------------------------------------------------------------
// Snapshot reads
// ---------------------------------------------------------------------

func (s *Store) User() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) VirtualCard() VirtualCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.virtualCard
}

func (s *Store) PhysicalCards() []PhysicalCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PhysicalCard(nil), s.physicalCards...)
}

func (s *Store) Trips() []Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Trip(nil), s.trips...)
}

func (s *Store) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Transaction(nil), s.transactions...)
}

func (s *Store) LoyaltyEvents() []LoyaltyEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LoyaltyEvent(nil), s.loyaltyEvents...)
}

// Tickets returns the ticket inventory with expiry applied: tickets
// whose validity window has passed read as expired.
func (s *Store) Tickets() []PrasaTicket {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tickets := append([]PrasaTicket(nil), s.prasaTickets...)
	for i := range tickets {
		if tickets[i].Status == TicketActive && now.After(tickets[i].ValidUntil) {
			tickets[i].Status = TicketExpired
			s.prasaTickets[i].Status = TicketExpired
		}
	}
	return tickets
}

func (s *Store) Challenges() []Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Challenge(nil), s.challenges...)
}

func (s *Store) Rewards() []Reward {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Reward(nil), s.rewards...)
}

func (s *Store) ChallengeProgress() []ChallengeProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChallengeProgress(nil), s.progress...)
}

func (s *Store) Alerts() []TransitAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TransitAlert(nil), s.alerts...)
}

// ---------------------------------------------------------------------
// internals (caller must hold s.mu)
// ---------------------------------------------------------------------

// awardPoints credits the user and appends the loyalty audit record in
// the same step, keeping the one-operation-one-record invariant.
func (s *Store) awardPoints(eventType LoyaltyEventType, description string, points int) {
	event := LoyaltyEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Description: description,
		Date:        s.now(),
		Points:      points,
	}
	s.loyaltyEvents = append([]LoyaltyEvent{event}, s.loyaltyEvents...)
	s.user.LoyaltyPoints += points
	metrics.RecordPoints(string(eventType), points)
}

func (s *Store) findCard(cardID string) int {
	for i := range s.physicalCards {
		if s.physicalCards[i].ID == cardID {
			return i
		}
	}
	return -1
}

func (s *Store) challengeByID(id string) Challenge {
	for _, c := range s.challenges {
		if c.ID == id {
			return c
		}
	}
	return Challenge{}
}

func (s *Store) generateCardNumber() string {
	part := func() int { return 1000 + s.rng.Intn(9000) }
	return fmt.Sprintf("5018 %04d %04d %04d", part(), part(), part())
}

func freshProgress(challenges []Challenge) []ChallengeProgress {
	progress := make([]ChallengeProgress, len(challenges))
	for i, c := range challenges {
		progress[i] = ChallengeProgress{ChallengeID: c.ID}
	}
	return progress
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func rands(cents int64) float64 {
	return float64(cents) / 100
}
