package services

import (
	"sort"

	"bankroll/models"

	"github.com/shopspring/decimal"
)

type RankRow struct {
	PlayerUID string          `json:"player_uid"`
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total"`
	Rank      int             `json:"rank"`
	// Outsider marks the self row appended below a truncated ranking.
	Outsider bool `json:"outsider,omitempty"`
}

// Rank sums deltas over non-deleted entries grouped by owner and orders
// the result descending by total. Ties keep first-appearance order of the
// player in the entry list; no secondary key is defined.
func Rank(entries []models.BalanceEntry, players map[string]models.Player) []RankRow {
	sums := make(map[string]decimal.Decimal)
	var order []string
	for i := range entries {
		e := &entries[i]
		if e.IsDeleted {
			continue
		}
		if _, seen := sums[e.PlayerUID]; !seen {
			order = append(order, e.PlayerUID)
		}
		sums[e.PlayerUID] = sums[e.PlayerUID].Add(e.Delta())
	}

	rows := make([]RankRow, 0, len(order))
	for _, uid := range order {
		name := "(unknown)"
		if p, ok := players[uid]; ok && p.DisplayName != "" {
			name = p.DisplayName
		}
		rows = append(rows, RankRow{PlayerUID: uid, Name: name, Total: sums[uid]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// TopNWithSelf truncates a ranking to its top n rows. When selfUID ranks
// outside the window its row is appended anyway, flagged as an outsider
// and keeping its true position.
func TopNWithSelf(ranking []RankRow, n int, selfUID string) []RankRow {
	if n <= 0 || n >= len(ranking) {
		return ranking
	}
	top := make([]RankRow, n)
	copy(top, ranking[:n])

	if selfUID == "" {
		return top
	}
	for _, r := range top {
		if r.PlayerUID == selfUID {
			return top
		}
	}
	for _, r := range ranking[n:] {
		if r.PlayerUID == selfUID {
			r.Outsider = true
			return append(top, r)
		}
	}
	return top
}
