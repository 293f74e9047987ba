package timebank

import (
	"math"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Calculator classifies raw clock events and computes daily balances.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	if policy.Location == nil {
		policy.Location = time.UTC
	}
	if policy.ExpectedMinutes <= 0 {
		policy.ExpectedMinutes = DefaultExpectedMinutes
	}
	if policy.NegativePairs == "" {
		policy.NegativePairs = NegativePairsAllow
	}
	if policy.TrailingEntrada == "" {
		policy.TrailingEntrada = TrailingEntradaUnpaired
	}
	return &Calculator{policy: policy}
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

type dayKey struct {
	userID string
	date   string
}

type dayGroup struct {
	key    dayKey
	events []Event
}

// groupByDay buckets events by user and local calendar date. Each bucket is
// sorted chronologically, so the result does not depend on input order.
func (c *Calculator) groupByDay(events []Event) []dayGroup {
	index := make(map[dayKey]int)
	var groups []dayGroup

	for _, e := range events {
		key := dayKey{userID: e.UserID, date: e.Timestamp.In(c.policy.Location).Format(dateLayout)}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, dayGroup{key: key})
		}
		groups[i].events = append(groups[i].events, e)
	}

	for i := range groups {
		sortEvents(groups[i].events)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].key.userID != groups[j].key.userID {
			return groups[i].key.userID < groups[j].key.userID
		}
		return groups[i].key.date < groups[j].key.date
	})

	return groups
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.DeviceID < b.DeviceID
	})
}

func typeAt(i int) RecordType {
	if i%2 == 0 {
		return RecordTypeEntrada
	}
	return RecordTypeSaida
}

// Classify labels each event entrada or saida by alternating over the user's
// day in chronological order. Output is ordered by user, then time.
func (c *Calculator) Classify(events []Event) []ClassifiedEvent {
	groups := c.groupByDay(events)

	classified := make([]ClassifiedEvent, 0, len(events))
	for _, g := range groups {
		for i, e := range g.events {
			classified = append(classified, ClassifiedEvent{Event: e, Type: typeAt(i)})
		}
	}

	return classified
}

// DailySummaries builds one summary per user per day, newest day first.
func (c *Calculator) DailySummaries(events []Event) []DailyWorkSummary {
	groups := c.groupByDay(events)

	summaries := make([]DailyWorkSummary, 0, len(groups))
	for _, g := range groups {
		summaries = append(summaries, c.summarize(g))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.UserName != b.UserName {
			return a.UserName < b.UserName
		}
		return a.UserID < b.UserID
	})

	return summaries
}

func (c *Calculator) summarize(g dayGroup) DailyWorkSummary {
	records := make([]PairedRecord, len(g.events))
	for i, e := range g.events {
		records[i] = PairedRecord{Time: e.Timestamp, Type: typeAt(i)}
	}

	worked := 0
	for i := 0; i+1 < len(g.events); i += 2 {
		worked += c.pairMinutes(g.events[i].Timestamp, g.events[i+1].Timestamp)
	}

	expected := c.expectedFor(g.key.userID)

	var userName string
	for _, e := range g.events {
		if e.UserName != "" {
			userName = e.UserName
			break
		}
	}

	return DailyWorkSummary{
		Date:               g.key.date,
		UserID:             g.key.userID,
		UserName:           userName,
		Records:            records,
		TotalWorkedMinutes: worked,
		ExpectedMinutes:    expected,
		BalanceMinutes:     worked - expected,
		Pending:            c.policy.TrailingEntrada == TrailingEntradaPending && len(g.events)%2 == 1,
	}
}

// pairMinutes returns whole minutes between entrada and saida, rounded down.
func (c *Calculator) pairMinutes(entrada, saida time.Time) int {
	minutes := int(math.Floor(saida.Sub(entrada).Minutes()))
	if minutes < 0 && c.policy.NegativePairs == NegativePairsClamp {
		return 0
	}
	return minutes
}

func (c *Calculator) expectedFor(userID string) int {
	if m, ok := c.policy.ExpectedByUser[userID]; ok && m > 0 {
		return m
	}
	return c.policy.ExpectedMinutes
}

// BankOfHours sums daily balances per user. Pending days are skipped.
// Users are keyed by id; two users sharing a name stay separate.
func (c *Calculator) BankOfHours(summaries []DailyWorkSummary) []BankOfHoursTotal {
	index := make(map[string]int)
	var totals []BankOfHoursTotal

	for _, s := range summaries {
		if s.Pending {
			continue
		}
		i, ok := index[s.UserID]
		if !ok {
			i = len(totals)
			index[s.UserID] = i
			totals = append(totals, BankOfHoursTotal{UserID: s.UserID, UserName: s.UserName})
		}
		totals[i].TotalBalanceMinutes += s.BalanceMinutes
		totals[i].Days++
		if totals[i].UserName == "" {
			totals[i].UserName = s.UserName
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].UserName != totals[j].UserName {
			return totals[i].UserName < totals[j].UserName
		}
		return totals[i].UserID < totals[j].UserID
	})

	return totals
}
