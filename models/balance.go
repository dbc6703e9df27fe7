package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BalanceEntry struct {
	gorm.Model

	// BalanceCode is a 9-digit display label. The row's primary key is the
	// identity; the code is only used for lookups and audit grouping.
	BalanceCode string `gorm:"size:9;index" json:"balance_code"`

	GroupID   uint   `gorm:"index" json:"group_id"`
	PlayerID  uint   `gorm:"index" json:"player_id"`
	PlayerUID string `gorm:"size:128;index" json:"player_uid"`

	Date   string    `gorm:"size:10" json:"date"`
	DateTS time.Time `gorm:"index" json:"date_ts"`

	Stakes   string          `gorm:"size:32" json:"stakes"`
	BuyInBB  decimal.Decimal `gorm:"type:numeric(14,2)" json:"buy_in_bb"`
	EndingBB decimal.Decimal `gorm:"type:numeric(14,2)" json:"ending_bb"`
	Memo     string          `gorm:"size:255" json:"memo"`

	LastUpdated time.Time `gorm:"index" json:"last_updated"`
	IsDeleted   bool      `gorm:"default:false;index" json:"is_deleted"`
}

// Delta is always recomputed from the stored fields, never persisted.
func (b *BalanceEntry) Delta() decimal.Decimal {
	return b.EndingBB.Sub(b.BuyInBB)
}

// BalanceSnapshot is a value copy of an entry's user-visible fields, taken
// at mutation time for the audit trail. Mutating the live entry afterwards
// does not touch a snapshot already written.
type BalanceSnapshot struct {
	BalanceCode string          `json:"balance_code"`
	Date        string          `json:"date"`
	Stakes      string          `json:"stakes"`
	BuyInBB     decimal.Decimal `json:"buy_in_bb"`
	EndingBB    decimal.Decimal `json:"ending_bb"`
	Memo        string          `json:"memo"`
}

func (b *BalanceEntry) Snapshot() BalanceSnapshot {
	return BalanceSnapshot{
		BalanceCode: b.BalanceCode,
		Date:        b.Date,
		Stakes:      b.Stakes,
		BuyInBB:     b.BuyInBB,
		EndingBB:    b.EndingBB,
		Memo:        b.Memo,
	}
}

// Delta of the snapshot's session, same rule as the live entry.
func (s BalanceSnapshot) Delta() decimal.Decimal {
	return s.EndingBB.Sub(s.BuyInBB)
}
