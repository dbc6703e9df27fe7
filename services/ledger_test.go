package services

import (
	"path/filepath"
	"testing"

	"bankroll/database"
	"bankroll/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedGroupAndPlayer(t *testing.T, db *gorm.DB) (*models.Group, *models.Player) {
	t.Helper()
	group := models.Group{
		GroupCode:    "123456",
		Name:         "Friday Game",
		PlayerSecret: "111111",
		AdminSecret:  "adminsec",
		Settings:     models.GroupSettings{RankingTopN: 10},
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	player := models.Player{
		PlayerCode:  "654321",
		GroupID:     group.ID,
		UID:         "uid-a",
		DisplayName: "Alice",
	}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("failed to seed player: %v", err)
	}
	return &group, &player
}

func mustTotal(t *testing.T, db *gorm.DB, playerID uint) decimal.Decimal {
	t.Helper()
	var p models.Player
	if err := db.First(&p, playerID).Error; err != nil {
		t.Fatalf("failed to reload player: %v", err)
	}
	return p.TotalBalance
}

func TestLedgerMutations(t *testing.T) {
	db := openTestDB(t)
	group, player := seedGroupAndPlayer(t, db)

	input := EntryInput{
		Date: "2025-01-01", SB: "1", BB: "2",
		BuyIn: "100", Ending: "150", Memo: "cash game",
	}

	var entry *models.BalanceEntry

	t.Run("create adds delta to running total", func(t *testing.T) {
		var err error
		entry, err = CreateEntry(db, group, player, input)
		if err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		if entry.Stakes != "1/2" {
			t.Errorf("expected stakes 1/2, got %s", entry.Stakes)
		}
		if !entry.Delta().Equal(dec(t, "50")) {
			t.Errorf("expected delta 50, got %s", entry.Delta())
		}
		if !player.TotalBalance.Equal(dec(t, "50")) {
			t.Errorf("expected total 50, got %s", player.TotalBalance)
		}
		if len(entry.BalanceCode) != 9 {
			t.Errorf("expected 9-digit balance code, got %q", entry.BalanceCode)
		}
	})

	t.Run("create writes an after-only history record", func(t *testing.T) {
		var hs []models.BalanceHistory
		if err := db.Where("balance_code = ?", entry.BalanceCode).Find(&hs).Error; err != nil {
			t.Fatalf("history fetch failed: %v", err)
		}
		if len(hs) != 1 {
			t.Fatalf("expected 1 history record, got %d", len(hs))
		}
		h := hs[0]
		if h.ChangeCategory != models.ChangeCreate {
			t.Errorf("expected category create, got %s", h.ChangeCategory)
		}
		details, err := h.Details()
		if err != nil {
			t.Fatalf("details decode failed: %v", err)
		}
		if details.Before != nil {
			t.Error("create record must not carry a before snapshot")
		}
		if details.After == nil {
			t.Fatal("create record must carry an after snapshot")
		}
		if !details.After.EndingBB.Equal(dec(t, "150")) {
			t.Errorf("expected snapshot ending 150, got %s", details.After.EndingBB)
		}
		if h.RefID == "" {
			t.Error("expected a ref id on the history record")
		}
	})

	t.Run("update corrects total by the delta difference", func(t *testing.T) {
		edited := input
		edited.Ending = "120"
		if err := UpdateEntry(db, group, player, entry, edited); err != nil {
			t.Fatalf("UpdateEntry failed: %v", err)
		}
		// +50 became +20, so the total drops by exactly 30.
		if !player.TotalBalance.Equal(dec(t, "20")) {
			t.Errorf("expected total 20, got %s", player.TotalBalance)
		}
		if !entry.Delta().Equal(dec(t, "20")) {
			t.Errorf("expected delta 20, got %s", entry.Delta())
		}
	})

	t.Run("update writes a before-and-after history record", func(t *testing.T) {
		var h models.BalanceHistory
		if err := db.Where("balance_code = ? AND change_category = ?",
			entry.BalanceCode, models.ChangeUpdate).First(&h).Error; err != nil {
			t.Fatalf("history fetch failed: %v", err)
		}
		details, err := h.Details()
		if err != nil {
			t.Fatalf("details decode failed: %v", err)
		}
		if details.Before == nil || details.After == nil {
			t.Fatal("update record must carry both snapshots")
		}
		if !details.Before.EndingBB.Equal(dec(t, "150")) {
			t.Errorf("expected before ending 150, got %s", details.Before.EndingBB)
		}
		if !details.After.EndingBB.Equal(dec(t, "120")) {
			t.Errorf("expected after ending 120, got %s", details.After.EndingBB)
		}
	})

	t.Run("earlier snapshots are not altered by later edits", func(t *testing.T) {
		var h models.BalanceHistory
		if err := db.Where("balance_code = ? AND change_category = ?",
			entry.BalanceCode, models.ChangeCreate).First(&h).Error; err != nil {
			t.Fatalf("history fetch failed: %v", err)
		}
		details, err := h.Details()
		if err != nil {
			t.Fatalf("details decode failed: %v", err)
		}
		if !details.After.EndingBB.Equal(dec(t, "150")) {
			t.Errorf("create snapshot changed after edit: got %s", details.After.EndingBB)
		}
	})

	t.Run("delete reverses the current delta and excludes the entry", func(t *testing.T) {
		if err := SoftDeleteEntry(db, group, player, entry); err != nil {
			t.Fatalf("SoftDeleteEntry failed: %v", err)
		}
		if !player.TotalBalance.Equal(dec(t, "0")) {
			t.Errorf("expected total 0, got %s", player.TotalBalance)
		}

		var active []models.BalanceEntry
		if err := db.Where("group_id = ? AND is_deleted = ?", group.ID, false).
			Find(&active).Error; err != nil {
			t.Fatalf("active fetch failed: %v", err)
		}
		if len(active) != 0 {
			t.Errorf("expected no active entries, got %d", len(active))
		}

		var all []models.BalanceEntry
		if err := db.Where("group_id = ?", group.ID).Find(&all).Error; err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("soft delete must keep the row, got %d rows", len(all))
		}
	})

	t.Run("delete writes a before-only history record", func(t *testing.T) {
		var h models.BalanceHistory
		if err := db.Where("balance_code = ? AND change_category = ?",
			entry.BalanceCode, models.ChangeDelete).First(&h).Error; err != nil {
			t.Fatalf("history fetch failed: %v", err)
		}
		details, err := h.Details()
		if err != nil {
			t.Fatalf("details decode failed: %v", err)
		}
		if details.Before == nil {
			t.Fatal("delete record must carry a before snapshot")
		}
		if details.After != nil {
			t.Error("delete record must not carry an after snapshot")
		}
		if !details.Before.EndingBB.Equal(dec(t, "120")) {
			t.Errorf("expected before ending 120, got %s", details.Before.EndingBB)
		}
	})

	t.Run("double delete is rejected", func(t *testing.T) {
		if err := SoftDeleteEntry(db, group, player, entry); err != ErrEntryDeleted {
			t.Errorf("expected ErrEntryDeleted, got %v", err)
		}
	})

	t.Run("exactly one history record per mutation", func(t *testing.T) {
		var count int64
		if err := db.Model(&models.BalanceHistory{}).
			Where("group_id = ?", group.ID).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 history records after create+update+delete, got %d", count)
		}
	})
}

func TestLedgerTotalConsistency(t *testing.T) {
	db := openTestDB(t)
	group, player := seedGroupAndPlayer(t, db)

	// A sequence of mutations; the running total must always equal the sum
	// of active deltas.
	e1, err := CreateEntry(db, group, player, EntryInput{
		Date: "2025-02-01", SB: "1", BB: "2", BuyIn: "100", Ending: "180"})
	if err != nil {
		t.Fatalf("create e1: %v", err)
	}
	e2, err := CreateEntry(db, group, player, EntryInput{
		Date: "2025-02-02", SB: "1", BB: "2", BuyIn: "200", Ending: "140"})
	if err != nil {
		t.Fatalf("create e2: %v", err)
	}
	if err := UpdateEntry(db, group, player, e1, EntryInput{
		Date: "2025-02-01", SB: "1", BB: "2", BuyIn: "100", Ending: "90"}); err != nil {
		t.Fatalf("update e1: %v", err)
	}
	if err := SoftDeleteEntry(db, group, player, e2); err != nil {
		t.Fatalf("delete e2: %v", err)
	}

	var active []models.BalanceEntry
	if err := db.Where("player_uid = ? AND is_deleted = ?", player.UID, false).
		Find(&active).Error; err != nil {
		t.Fatalf("active fetch failed: %v", err)
	}
	sum := TotalDelta(active)
	total := mustTotal(t, db, player.ID)
	if !total.Equal(sum) {
		t.Errorf("total %s diverged from active delta sum %s", total, sum)
	}
	if !total.Equal(dec(t, "-10")) {
		t.Errorf("expected total -10, got %s", total)
	}
}

func TestLedgerValidation(t *testing.T) {
	db := openTestDB(t)
	group, player := seedGroupAndPlayer(t, db)

	cases := []struct {
		name string
		in   EntryInput
		want error
	}{
		{"missing date", EntryInput{SB: "1", BB: "2", BuyIn: "100", Ending: "150"}, ErrInvalidDateOrStakes},
		{"unparseable stakes", EntryInput{Date: "2025-01-01", SB: "x", BB: "2", BuyIn: "100", Ending: "150"}, ErrInvalidDateOrStakes},
		{"zero small blind", EntryInput{Date: "2025-01-01", SB: "0", BB: "2", BuyIn: "100", Ending: "150"}, ErrStakesNotPositive},
		{"negative big blind", EntryInput{Date: "2025-01-01", SB: "1", BB: "-2", BuyIn: "100", Ending: "150"}, ErrStakesNotPositive},
		{"unparseable buy-in", EntryInput{Date: "2025-01-01", SB: "1", BB: "2", BuyIn: "x", Ending: "150"}, ErrInvalidBuyInOrEnding},
		// stakes rule is checked before the buy-in rule
		{"bad stakes and bad buy-in", EntryInput{Date: "2025-01-01", SB: "0", BB: "2", BuyIn: "x", Ending: "150"}, ErrStakesNotPositive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CreateEntry(db, group, player, tc.in); err != tc.want {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("rejected input leaves no side effects", func(t *testing.T) {
		var entries, histories int64
		db.Model(&models.BalanceEntry{}).Where("group_id = ?", group.ID).Count(&entries)
		db.Model(&models.BalanceHistory{}).Where("group_id = ?", group.ID).Count(&histories)
		if entries != 0 || histories != 0 {
			t.Errorf("expected no rows after rejected inputs, got %d entries, %d histories", entries, histories)
		}
		if !mustTotal(t, db, player.ID).IsZero() {
			t.Error("expected total to stay zero")
		}
	})

	t.Run("negative buy-in and ending are accepted", func(t *testing.T) {
		e, err := CreateEntry(db, group, player, EntryInput{
			Date: "2025-01-02", SB: "1", BB: "2", BuyIn: "-50", Ending: "-20"})
		if err != nil {
			t.Fatalf("expected permissive accept, got %v", err)
		}
		if !e.Delta().Equal(dec(t, "30")) {
			t.Errorf("expected delta 30, got %s", e.Delta())
		}
	})
}

func TestLedgerFixedStakesOverride(t *testing.T) {
	db := openTestDB(t)
	group, player := seedGroupAndPlayer(t, db)

	sb, bb := dec(t, "2"), dec(t, "5")
	group.Settings.StakesFixed = true
	group.Settings.StakesSB = &sb
	group.Settings.StakesBB = &bb
	if err := db.Save(group).Error; err != nil {
		t.Fatalf("failed to fix stakes: %v", err)
	}

	t.Run("fixed stakes override user input", func(t *testing.T) {
		e, err := CreateEntry(db, group, player, EntryInput{
			Date: "2025-03-01", SB: "9", BB: "18", BuyIn: "100", Ending: "150"})
		if err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		if e.Stakes != "2/5" {
			t.Errorf("expected stakes 2/5, got %s", e.Stakes)
		}
	})

	t.Run("fixed stakes tolerate empty user input", func(t *testing.T) {
		e, err := CreateEntry(db, group, player, EntryInput{
			Date: "2025-03-02", BuyIn: "80", Ending: "60"})
		if err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		if e.Stakes != "2/5" {
			t.Errorf("expected stakes 2/5, got %s", e.Stakes)
		}
	})
}
