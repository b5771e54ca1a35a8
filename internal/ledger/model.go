package ledger

import "time"

// Provider is a supported public transport operator. Minibus taxis and
// e-hailing are deliberately absent.
type Provider string

const (
	ProviderReaVaya    Provider = "Rea Vaya"
	ProviderMetrobus   Provider = "Metrobus"
	ProviderGautrain   Provider = "Gautrain"
	ProviderMyCiTi     Provider = "MyCiTi"
	ProviderAreyeng    Provider = "Areyeng"
	ProviderTshwaneBus Provider = "Tshwane Bus Service"
	ProviderPRASA      Provider = "PRASA"
)

// Providers lists every supported operator in catalog order.
var Providers = []Provider{
	ProviderReaVaya,
	ProviderMetrobus,
	ProviderGautrain,
	ProviderMyCiTi,
	ProviderAreyeng,
	ProviderTshwaneBus,
	ProviderPRASA,
}

// ValidProvider reports whether p names a supported operator.
func ValidProvider(p Provider) bool {
	for _, known := range Providers {
		if p == known {
			return true
		}
	}
	return false
}

type CardTheme string

const (
	ThemeMzansi   CardTheme = "mzansi"
	ThemeOcean    CardTheme = "ocean"
	ThemeForest   CardTheme = "forest"
	ThemeSunset   CardTheme = "sunset"
	ThemeCharcoal CardTheme = "charcoal"
)

func ValidTheme(t CardTheme) bool {
	switch t {
	case ThemeMzansi, ThemeOcean, ThemeForest, ThemeSunset, ThemeCharcoal:
		return true
	}
	return false
}

type Role string

const (
	RoleCommuter Role = "commuter"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyalty_points"`
	PinHash       string `json:"-"`
	Role          Role   `json:"role,omitempty"`
}

// PinSet reports whether the user has configured a wallet PIN.
func (u User) PinSet() bool {
	return u.PinHash != ""
}

type VirtualCard struct {
	CardNumber     string    `json:"card_number"`
	CardHolderName string    `json:"card_holder_name"`
	ValidThru      string    `json:"valid_thru"`
	BalanceCents   int64     `json:"balance_cents"`
	Theme          CardTheme `json:"theme"`
}

type PhysicalCard struct {
	ID           string   `json:"id"`
	Provider     Provider `json:"provider"`
	CardNumber   string   `json:"card_number"`
	Nickname     string   `json:"nickname"`
	BalanceCents int64    `json:"balance_cents"`
}

// VirtualCardID is the card id recorded on trips paid with the virtual card.
const VirtualCardID = "virtual-card"

// Trip records a tap-in/tap-out journey. A trip returned by StartTrip is
// "open": no destination, no fare, and not yet part of history. EndTrip
// closes it, after which it is immutable.
type Trip struct {
	ID           string    `json:"id"`
	Provider     Provider  `json:"provider"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Date         time.Time `json:"date"`
	FareCents    int64     `json:"fare_cents"`
	CardID       string    `json:"card_id,omitempty"`
	CardNickname string    `json:"card_nickname,omitempty"`
}

// Open reports whether the trip is still awaiting its end tap.
func (t Trip) Open() bool {
	return t.FareCents == 0 && t.CardID == ""
}

type TransactionStatus string

const (
	TxCompleted TransactionStatus = "Completed"
	TxPending   TransactionStatus = "Pending"
	TxFailed    TransactionStatus = "Failed"
)

// Transaction is an append-only audit record of a money movement.
// Positive amounts are credits, negative are debits.
type Transaction struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	AmountCents int64             `json:"amount_cents"`
	Status      TransactionStatus `json:"status"`
	Provider    Provider          `json:"provider,omitempty"`
}

type LoyaltyEventType string

const (
	LoyaltyTrip    LoyaltyEventType = "trip"
	LoyaltyTopUp   LoyaltyEventType = "top-up"
	LoyaltyBonus   LoyaltyEventType = "bonus"
	LoyaltyRedeem  LoyaltyEventType = "redeem"
	LoyaltyContact LoyaltyEventType = "contact"
)

// LoyaltyEvent is an append-only audit record of a Bonsella point
// movement. Points is signed: redemptions are negative.
type LoyaltyEvent struct {
	ID          string           `json:"id"`
	Type        LoyaltyEventType `json:"type"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Points      int              `json:"points"`
}

type TicketType string

const (
	TicketSingle  TicketType = "single"
	TicketReturn  TicketType = "return"
	TicketWeekly  TicketType = "weekly"
	TicketMonthly TicketType = "monthly"
)

func ValidTicketType(t TicketType) bool {
	switch t {
	case TicketSingle, TicketReturn, TicketWeekly, TicketMonthly:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketActive  TicketStatus = "active"
	TicketExpired TicketStatus = "expired"
)

// TicketSource records the sale channel. Counter sales come from the
// provider portal's ticket desk.
type TicketSource string

const (
	SourceApp     TicketSource = "App"
	SourceCounter TicketSource = "Counter"
)

type PrasaTicket struct {
	ID           string       `json:"id"`
	TicketType   TicketType   `json:"ticket_type"`
	From         string       `json:"from"`
	To           string       `json:"to"`
	PurchaseDate time.Time    `json:"purchase_date"`
	ValidUntil   time.Time    `json:"valid_until"`
	QRCodeURL    string       `json:"qr_code_url"`
	FareCents    int64        `json:"fare_cents"`
	Status       TicketStatus `json:"status"`
	Source       TicketSource `json:"source"`
}

// TicketValidUntil computes the validity window for a ticket type
// bought at the given time.
func TicketValidUntil(t TicketType, purchased time.Time) time.Time {
	switch t {
	case TicketWeekly:
		return purchased.AddDate(0, 0, 7)
	case TicketMonthly:
		return purchased.AddDate(0, 1, 0)
	default: // single and return are valid for one day
		return purchased.AddDate(0, 0, 1)
	}
}

type ChallengeType string

const (
	ChallengeTripCount   ChallengeType = "trip_count"
	ChallengeTopUpAmount ChallengeType = "top_up_amount"
)

// Challenge is a static catalog entry. Goal is a trip count for
// trip_count challenges and a cents amount for top_up_amount ones.
type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Points      int           `json:"points"`
	Goal        int64         `json:"goal"`
	Type        ChallengeType `json:"type"`
}

// ChallengeProgress tracks one user's running counter for a challenge.
// Current only ever increases, and Completed flips false to true at
// most once.
type ChallengeProgress struct {
	ChallengeID string `json:"challenge_id"`
	Current     int64  `json:"current"`
	Completed   bool   `json:"completed"`
}

type RewardType string

const (
	RewardTopUpVoucher RewardType = "top_up_voucher"
)

type Reward struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	Type        RewardType `json:"type"`
	ValueCents  int64      `json:"value_cents"`
}

type AlertType string

const (
	AlertOfficial   AlertType = "official"
	AlertUserReport AlertType = "user_report"
)

type ReportCategory string

const (
	CategoryCrowded ReportCategory = "crowded"
	CategoryDelay   ReportCategory = "delay"
	CategoryHazard  ReportCategory = "hazard"
	CategoryInfo    ReportCategory = "info"
	CategoryOther   ReportCategory = "other"
)

func ValidCategory(c ReportCategory) bool {
	switch c {
	case CategoryCrowded, CategoryDelay, CategoryHazard, CategoryInfo, CategoryOther:
		return true
	}
	return false
}

type TransitAlert struct {
	ID          string         `json:"id"`
	Type        AlertType      `json:"type"`
	Provider    Provider       `json:"provider,omitempty"`
	Category    ReportCategory `json:"category"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Timestamp   time.Time      `json:"timestamp"`
}
