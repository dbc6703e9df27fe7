package services

import (
	"sort"
	"strings"
	"time"

	"bankroll/models"

	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortLastUpdated SortKey = "last_updated"
	SortDate        SortKey = "date"
	SortBuyIn       SortKey = "buy_in_bb"
	SortEnding      SortKey = "ending_bb"
	SortDelta       SortKey = "delta"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ToggleSort implements the header-click rule: clicking the active key
// flips its direction, picking a new key resets to ascending.
func ToggleSort(curKey SortKey, curDir SortDir, clicked SortKey) (SortKey, SortDir) {
	if curKey != clicked {
		return clicked, SortAsc
	}
	if curDir == SortAsc {
		return curKey, SortDesc
	}
	return curKey, SortAsc
}

// BalanceFilter is a flat set of optional predicates over ledger rows. All
// fields are raw strings straight from the client; an empty or unparseable
// field imposes no constraint. Set predicates are conjunctive.
type BalanceFilter struct {
	UpdatedStart string
	UpdatedEnd   string
	PlayerUID    string
	DateStart    string
	DateEnd      string
	Stakes       string
	BuyInMin     string
	BuyInMax     string
	EndingMin    string
	EndingMax    string
	DeltaMin     string
	DeltaMax     string
	Memo         string
	BalanceCode  string
}

// entryView is the row shape the predicates run against, shared between
// live ledger rows and reconstructed history rows.
type entryView struct {
	LastUpdated time.Time
	PlayerUID   string
	Date        string
	DateTS      time.Time
	Stakes      string
	BuyIn       decimal.Decimal
	Ending      decimal.Decimal
	Delta       decimal.Decimal
	Memo        string
	BalanceCode string
}

func entryToView(b models.BalanceEntry) entryView {
	return entryView{
		LastUpdated: b.LastUpdated,
		PlayerUID:   b.PlayerUID,
		Date:        b.Date,
		DateTS:      b.DateTS,
		Stakes:      b.Stakes,
		BuyIn:       b.BuyInBB,
		Ending:      b.EndingBB,
		Delta:       b.Delta(),
		Memo:        b.Memo,
		BalanceCode: b.BalanceCode,
	}
}

type compiledFilter struct {
	uStart, uEnd *time.Time
	dStart, dEnd *time.Time
	playerUID    string
	stakes       string
	buyInMin     *decimal.Decimal
	buyInMax     *decimal.Decimal
	endingMin    *decimal.Decimal
	endingMax    *decimal.Decimal
	deltaMin     *decimal.Decimal
	deltaMax     *decimal.Decimal
	memo         string
	balanceCode  string
}

// parseTimeBound accepts the datetime-local and date-only forms clients
// send. A date-only end bound is pushed to the end of that day so the
// range stays inclusive.
func parseTimeBound(s string, endOfDay bool) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t
}

func parseAmountBound(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func (f BalanceFilter) compile() compiledFilter {
	return compiledFilter{
		uStart:      parseTimeBound(f.UpdatedStart, false),
		uEnd:        parseTimeBound(f.UpdatedEnd, true),
		dStart:      parseTimeBound(f.DateStart, false),
		dEnd:        parseTimeBound(f.DateEnd, true),
		playerUID:   f.PlayerUID,
		stakes:      strings.ToLower(strings.TrimSpace(f.Stakes)),
		buyInMin:    parseAmountBound(f.BuyInMin),
		buyInMax:    parseAmountBound(f.BuyInMax),
		endingMin:   parseAmountBound(f.EndingMin),
		endingMax:   parseAmountBound(f.EndingMax),
		deltaMin:    parseAmountBound(f.DeltaMin),
		deltaMax:    parseAmountBound(f.DeltaMax),
		memo:        strings.ToLower(strings.TrimSpace(f.Memo)),
		balanceCode: strings.TrimSpace(f.BalanceCode),
	}
}

func (c compiledFilter) match(v entryView) bool {
	if c.uStart != nil && v.LastUpdated.Before(*c.uStart) {
		return false
	}
	if c.uEnd != nil && v.LastUpdated.After(*c.uEnd) {
		return false
	}
	if c.playerUID != "" && v.PlayerUID != c.playerUID {
		return false
	}
	if c.dStart != nil || c.dEnd != nil {
		if v.DateTS.IsZero() {
			return false
		}
		if c.dStart != nil && v.DateTS.Before(*c.dStart) {
			return false
		}
		if c.dEnd != nil && v.DateTS.After(*c.dEnd) {
			return false
		}
	}
	if c.stakes != "" && !strings.Contains(strings.ToLower(v.Stakes), c.stakes) {
		return false
	}
	if c.buyInMin != nil && v.BuyIn.LessThan(*c.buyInMin) {
		return false
	}
	if c.buyInMax != nil && v.BuyIn.GreaterThan(*c.buyInMax) {
		return false
	}
	if c.endingMin != nil && v.Ending.LessThan(*c.endingMin) {
		return false
	}
	if c.endingMax != nil && v.Ending.GreaterThan(*c.endingMax) {
		return false
	}
	if c.deltaMin != nil && v.Delta.LessThan(*c.deltaMin) {
		return false
	}
	if c.deltaMax != nil && v.Delta.GreaterThan(*c.deltaMax) {
		return false
	}
	if c.memo != "" && !strings.Contains(strings.ToLower(v.Memo), c.memo) {
		return false
	}
	if c.balanceCode != "" && v.BalanceCode != c.balanceCode {
		return false
	}
	return true
}

// Apply keeps the entries matching every set predicate, in input order.
func (f BalanceFilter) Apply(entries []models.BalanceEntry) []models.BalanceEntry {
	c := f.compile()
	out := make([]models.BalanceEntry, 0, len(entries))
	for _, e := range entries {
		if c.match(entryToView(e)) {
			out = append(out, e)
		}
	}
	return out
}

func sortValueCompare(a, b entryView, key SortKey) int {
	switch key {
	case SortDate:
		return compareTimes(a.DateTS, b.DateTS)
	case SortBuyIn:
		return a.BuyIn.Cmp(b.BuyIn)
	case SortEnding:
		return a.Ending.Cmp(b.Ending)
	case SortDelta:
		return a.Delta.Cmp(b.Delta)
	default:
		return compareTimes(a.LastUpdated, b.LastUpdated)
	}
}

func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

// SortEntries orders entries by the given key. Ties keep the input's prior
// relative order.
func SortEntries(entries []models.BalanceEntry, key SortKey, dir SortDir) []models.BalanceEntry {
	out := make([]models.BalanceEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := sortValueCompare(entryToView(out[i]), entryToView(out[j]), key)
		if dir == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// TotalDelta sums the deltas of the given rows, typically a filtered set.
func TotalDelta(entries []models.BalanceEntry) decimal.Decimal {
	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].Delta())
	}
	return total
}
