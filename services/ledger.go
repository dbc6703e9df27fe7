package services

import (
	"errors"
	"time"

	"bankroll/helpers"
	"bankroll/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrEntryDeleted = errors.New("ENTRY_ALREADY_DELETED")

// EntryInput is the raw field set of a session report or edit. SB and BB
// are ignored when the group fixes its stakes.
type EntryInput struct {
	Date   string
	SB     string
	BB     string
	BuyIn  string
	Ending string
	Memo   string
}

// resolveAndValidate substitutes admin-fixed blinds for the user-supplied
// ones before validation, so a group with fixed stakes never rejects on
// stakes input.
func resolveAndValidate(group *models.Group, in EntryInput) (*EntryValues, error) {
	sb, bb := in.SB, in.BB
	if fixed := group.FixedStakes(); fixed != nil {
		sb = fixed.SB.String()
		bb = fixed.BB.String()
	}
	return ValidateEntry(in.Date, sb, bb, in.BuyIn, in.Ending)
}

func writeHistory(tx *gorm.DB, group *models.Group, player *models.Player,
	category models.ChangeCategory, balanceCode, refID string, details models.ChangeDetails) error {
	h := models.BalanceHistory{
		HistoryCode:       helpers.GenerateHistoryCode(),
		GroupID:           group.ID,
		BalanceCode:       balanceCode,
		ChangedAt:         time.Now(),
		ChangeCategory:    category,
		ChangerUID:        player.UID,
		ChangerPlayerCode: player.PlayerCode,
		RefID:             refID,
	}
	if err := h.SetDetails(details); err != nil {
		return err
	}
	return tx.Create(&h).Error
}

// adjustTotal corrects the player's running total by a delta difference.
// The correction is applied in SQL so concurrent mutations of the same
// player compose instead of losing updates.
func adjustTotal(tx *gorm.DB, playerID uint, diff decimal.Decimal) error {
	return tx.Model(&models.Player{}).
		Where("id = ?", playerID).
		Update("total_balance", gorm.Expr("total_balance + ?", diff)).Error
}

func touchGroup(tx *gorm.DB, groupID uint, now time.Time) error {
	return tx.Model(&models.Group{}).
		Where("id = ?", groupID).
		Update("last_updated", now).Error
}

// CreateEntry validates and persists a new session report. The entry row,
// the player's running total, the group touch and the audit record are all
// written in one transaction: either the ledger and its history advance
// together or nothing changes.
func CreateEntry(db *gorm.DB, group *models.Group, player *models.Player, in EntryInput) (*models.BalanceEntry, error) {
	vals, err := resolveAndValidate(group, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := models.BalanceEntry{
		BalanceCode: helpers.GenerateBalanceCode(),
		GroupID:     group.ID,
		PlayerID:    player.ID,
		PlayerUID:   player.UID,
		Date:        vals.Date,
		DateTS:      vals.DateTS,
		Stakes:      models.StakesPair{SB: vals.SB, BB: vals.BB}.Label(),
		BuyInBB:     vals.BuyIn,
		EndingBB:    vals.Ending,
		Memo:        in.Memo,
		LastUpdated: now,
		IsDeleted:   false,
	}

	delta := entry.Delta()
	refID := uuid.New().String()

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if err := adjustTotal(tx, player.ID, delta); err != nil {
			return err
		}
		if err := touchGroup(tx, group.ID, now); err != nil {
			return err
		}
		after := entry.Snapshot()
		return writeHistory(tx, group, player, models.ChangeCreate, entry.BalanceCode, refID,
			models.ChangeDetails{After: &after})
	})
	if err != nil {
		return nil, err
	}

	if err := db.First(player, player.ID).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEntry overwrites an entry's fields and corrects the running total
// by the delta difference, never by recomputing from scratch. The audit
// record carries both the pre-mutation snapshot and the new values.
func UpdateEntry(db *gorm.DB, group *models.Group, player *models.Player, entry *models.BalanceEntry, in EntryInput) error {
	if entry.IsDeleted {
		return ErrEntryDeleted
	}

	vals, err := resolveAndValidate(group, in)
	if err != nil {
		return err
	}

	before := entry.Snapshot()
	deltaBefore := entry.Delta()

	now := time.Now()
	entry.Date = vals.Date
	entry.DateTS = vals.DateTS
	entry.Stakes = models.StakesPair{SB: vals.SB, BB: vals.BB}.Label()
	entry.BuyInBB = vals.BuyIn
	entry.EndingBB = vals.Ending
	entry.Memo = in.Memo
	entry.LastUpdated = now

	deltaAfter := entry.Delta()
	diff := deltaAfter.Sub(deltaBefore)
	refID := uuid.New().String()

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		if err := adjustTotal(tx, player.ID, diff); err != nil {
			return err
		}
		if err := touchGroup(tx, group.ID, now); err != nil {
			return err
		}
		after := entry.Snapshot()
		return writeHistory(tx, group, player, models.ChangeUpdate, entry.BalanceCode, refID,
			models.ChangeDetails{Before: &before, After: &after})
	})
	if err != nil {
		return err
	}

	return db.First(player, player.ID).Error
}

// SoftDeleteEntry flags the entry deleted and reverses its delta from the
// running total. The row stays in place for the audit trail; every
// aggregation filters on is_deleted = false.
func SoftDeleteEntry(db *gorm.DB, group *models.Group, player *models.Player, entry *models.BalanceEntry) error {
	if entry.IsDeleted {
		return ErrEntryDeleted
	}

	before := entry.Snapshot()
	delta := entry.Delta()
	now := time.Now()
	refID := uuid.New().String()

	entry.IsDeleted = true
	entry.LastUpdated = now

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		if err := adjustTotal(tx, player.ID, delta.Neg()); err != nil {
			return err
		}
		if err := touchGroup(tx, group.ID, now); err != nil {
			return err
		}
		return writeHistory(tx, group, player, models.ChangeDelete, entry.BalanceCode, refID,
			models.ChangeDetails{Before: &before})
	})
	if err != nil {
		return err
	}

	return db.First(player, player.ID).Error
}
