package services

import (
	"sort"
	"time"

	"bankroll/models"
)

type RowTag string

const (
	TagRecord RowTag = "Record"
	TagBefore RowTag = "Before"
	TagAfter  RowTag = "After"
)

// HistoryRow is one display row reconstructed from an audit record.
type HistoryRow struct {
	Tag         RowTag                 `json:"tag"`
	Category    models.ChangeCategory  `json:"change_category"`
	HistoryCode string                 `json:"history_code"`
	BalanceCode string                 `json:"balance_code"`
	ChangedAt   time.Time              `json:"changed_at"`
	ChangerUID  string                 `json:"changer_uid"`
	Snapshot    models.BalanceSnapshot `json:"snapshot"`
}

// ExpandHistory turns a stored audit record into display rows: one
// "Record" row for create (from the after snapshot) and delete (from the
// before snapshot), a fixed [Before, After] pair for update. A record
// missing a snapshot its category requires yields no rows; a malformed
// payload is skipped the same way rather than surfaced as an error.
func ExpandHistory(h models.BalanceHistory) []HistoryRow {
	details, err := h.Details()
	if err != nil {
		return nil
	}

	row := func(tag RowTag, snap models.BalanceSnapshot) HistoryRow {
		return HistoryRow{
			Tag:         tag,
			Category:    h.ChangeCategory,
			HistoryCode: h.HistoryCode,
			BalanceCode: h.BalanceCode,
			ChangedAt:   h.ChangedAt,
			ChangerUID:  h.ChangerUID,
			Snapshot:    snap,
		}
	}

	switch h.ChangeCategory {
	case models.ChangeCreate:
		if details.After == nil {
			return nil
		}
		return []HistoryRow{row(TagRecord, *details.After)}
	case models.ChangeDelete:
		if details.Before == nil {
			return nil
		}
		return []HistoryRow{row(TagRecord, *details.Before)}
	case models.ChangeUpdate:
		if details.Before == nil || details.After == nil {
			return nil
		}
		return []HistoryRow{row(TagBefore, *details.Before), row(TagAfter, *details.After)}
	default:
		return nil
	}
}

// ExpandHistories flattens a record list, keeping record order and the
// fixed Before/After pairing within each record.
func ExpandHistories(hs []models.BalanceHistory) []HistoryRow {
	var rows []HistoryRow
	for _, h := range hs {
		rows = append(rows, ExpandHistory(h)...)
	}
	return rows
}

func historyRowView(r HistoryRow) entryView {
	dateTS, _ := time.Parse("2006-01-02", r.Snapshot.Date)
	return entryView{
		LastUpdated: r.ChangedAt,
		PlayerUID:   r.ChangerUID,
		Date:        r.Snapshot.Date,
		DateTS:      dateTS,
		Stakes:      r.Snapshot.Stakes,
		BuyIn:       r.Snapshot.BuyInBB,
		Ending:      r.Snapshot.EndingBB,
		Delta:       r.Snapshot.Delta(),
		Memo:        r.Snapshot.Memo,
		BalanceCode: r.Snapshot.BalanceCode,
	}
}

// ApplyHistory runs the same predicate set over reconstructed rows, with
// changed-at standing in for last-updated and the changer for the player.
func (f BalanceFilter) ApplyHistory(rows []HistoryRow) []HistoryRow {
	c := f.compile()
	out := make([]HistoryRow, 0, len(rows))
	for _, r := range rows {
		if c.match(historyRowView(r)) {
			out = append(out, r)
		}
	}
	return out
}

// SortHistoryRows orders reconstructed rows with the same keys as ledger
// rows. Stable, so an update's Before/After pair never flips.
func SortHistoryRows(rows []HistoryRow, key SortKey, dir SortDir) []HistoryRow {
	out := make([]HistoryRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := sortValueCompare(historyRowView(out[i]), historyRowView(out[j]), key)
		if dir == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}
