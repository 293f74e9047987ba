package timebank

import "time"

type RecordType string

const (
	RecordTypeEntrada RecordType = "entrada"
	RecordTypeSaida   RecordType = "saida"
)

const DefaultExpectedMinutes = 480

// Event is a raw clock event. Its type is never stored; it is derived from the
// event's position within the user's day.
type Event struct {
	ID        string
	UserID    string
	UserName  string
	DeviceID  string
	Timestamp time.Time
}

type ClassifiedEvent struct {
	Event
	Type RecordType
}

type PairedRecord struct {
	Time time.Time  `json:"time"`
	Type RecordType `json:"type"`
}

type DailyWorkSummary struct {
	Date               string         `json:"date"`
	UserID             string         `json:"user_id"`
	UserName           string         `json:"user_name"`
	Records            []PairedRecord `json:"records"`
	TotalWorkedMinutes int            `json:"total_worked_minutes"`
	ExpectedMinutes    int            `json:"expected_minutes"`
	BalanceMinutes     int            `json:"balance_minutes"`
	Pending            bool           `json:"pending"`
}

type BankOfHoursTotal struct {
	UserID              string `json:"user_id"`
	UserName            string `json:"user_name"`
	TotalBalanceMinutes int    `json:"total_balance_minutes"`
	Days                int    `json:"days"`
}

type NegativePairPolicy string

const (
	// NegativePairsAllow keeps a negative pair duration in the day total.
	NegativePairsAllow NegativePairPolicy = "allow"
	// NegativePairsClamp counts a negative pair as zero minutes.
	NegativePairsClamp NegativePairPolicy = "clamp"
)

type TrailingEntradaPolicy string

const (
	// TrailingEntradaUnpaired counts a lone final entrada as zero minutes.
	TrailingEntradaUnpaired TrailingEntradaPolicy = "unpaired"
	// TrailingEntradaPending flags the day as pending and keeps it out of the bank total.
	TrailingEntradaPending TrailingEntradaPolicy = "pending"
)

type Policy struct {
	// Location decides which calendar day an event belongs to. Nil means UTC.
	Location *time.Location

	// ExpectedMinutes is the daily quota. Zero or less falls back to DefaultExpectedMinutes.
	ExpectedMinutes int

	// ExpectedByUser overrides ExpectedMinutes per user id.
	ExpectedByUser map[string]int

	NegativePairs   NegativePairPolicy
	TrailingEntrada TrailingEntradaPolicy
}

func DefaultPolicy(loc *time.Location) Policy {
	return Policy{
		Location:        loc,
		ExpectedMinutes: DefaultExpectedMinutes,
		NegativePairs:   NegativePairsAllow,
		TrailingEntrada: TrailingEntradaUnpaired,
	}
}

func ParseNegativePairPolicy(s string) (NegativePairPolicy, bool) {
	switch NegativePairPolicy(s) {
	case NegativePairsAllow, NegativePairsClamp:
		return NegativePairPolicy(s), true
	}
	return "", false
}

func ParseTrailingEntradaPolicy(s string) (TrailingEntradaPolicy, bool) {
	switch TrailingEntradaPolicy(s) {
	case TrailingEntradaUnpaired, TrailingEntradaPending:
		return TrailingEntradaPolicy(s), true
	}
	return "", false
}
