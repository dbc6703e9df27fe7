package services

import (
	"sort"
	"strings"

	"bankroll/models"

	"github.com/shopspring/decimal"
)

// DayTotal is one calendar day's aggregate for the monthly view.
type DayTotal struct {
	Date     string          `json:"date"`
	Total    decimal.Decimal `json:"total"`
	Sessions int             `json:"sessions"`
}

// DailyTotals sums deltas per calendar day for entries in the given
// "YYYY-MM" month, skipping deleted rows, ascending by day. Days without
// sessions are omitted.
func DailyTotals(entries []models.BalanceEntry, month string) []DayTotal {
	byDay := make(map[string]*DayTotal)
	for i := range entries {
		e := &entries[i]
		if e.IsDeleted || !strings.HasPrefix(e.Date, month+"-") {
			continue
		}
		d, ok := byDay[e.Date]
		if !ok {
			d = &DayTotal{Date: e.Date, Total: decimal.Zero}
			byDay[e.Date] = d
		}
		d.Total = d.Total.Add(e.Delta())
		d.Sessions++
	}

	out := make([]DayTotal, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
