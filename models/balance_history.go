package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChangeCategory string

const (
	ChangeCreate ChangeCategory = "create"
	ChangeUpdate ChangeCategory = "update"
	ChangeDelete ChangeCategory = "delete"
)

// ChangeDetails is the variant payload of a history record. Exactly one
// shape per category: create carries After only, delete carries Before
// only, update carries both.
type ChangeDetails struct {
	Before *BalanceSnapshot `json:"before,omitempty"`
	After  *BalanceSnapshot `json:"after,omitempty"`
}

// BalanceHistory is an append-only audit row, written in the same
// transaction as the ledger mutation it documents. Never updated or
// deleted afterwards.
type BalanceHistory struct {
	gorm.Model

	HistoryCode string `gorm:"size:9;index" json:"history_code"`
	GroupID     uint   `gorm:"index" json:"group_id"`

	// BalanceCode is a weak reference: the same code appears in several
	// history rows over the entry's lifetime.
	BalanceCode string `gorm:"size:9;index" json:"balance_code"`

	ChangedAt      time.Time      `gorm:"index" json:"changed_at"`
	ChangeCategory ChangeCategory `gorm:"size:8;index" json:"change_category"`
	ChangeDetails  datatypes.JSON `gorm:"type:jsonb" json:"change_details"`

	ChangerUID        string `gorm:"size:128;index" json:"changer_uid"`
	ChangerPlayerCode string `gorm:"size:6" json:"changer_player_code"`

	// RefID ties the history row to the mutation that produced it.
	RefID string `gorm:"size:64;index" json:"ref_id"`
}

func (h *BalanceHistory) Details() (ChangeDetails, error) {
	var d ChangeDetails
	if len(h.ChangeDetails) == 0 {
		return d, nil
	}
	err := json.Unmarshal(h.ChangeDetails, &d)
	return d, err
}

func (h *BalanceHistory) SetDetails(d ChangeDetails) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	h.ChangeDetails = datatypes.JSON(raw)
	return nil
}
