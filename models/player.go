package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Player struct {
	gorm.Model

	PlayerCode  string `gorm:"size:6;index" json:"player_code"`
	GroupID     uint   `gorm:"index;uniqueIndex:idx_group_uid" json:"group_id"`
	UID         string `gorm:"size:128;uniqueIndex:idx_group_uid" json:"uid"`
	DisplayName string `gorm:"size:64" json:"display_name"`
	Email       string `gorm:"size:255" json:"email"`

	// TotalBalance is the running sum, in big blinds, of every non-deleted
	// entry's delta for this player. Corrected by difference on each ledger
	// mutation, inside the same transaction as the entry write.
	TotalBalance decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"total_balance"`

	Entries []BalanceEntry `gorm:"foreignKey:PlayerID"`
}
