package services

import (
	"testing"
	"time"

	"bankroll/models"
)

func TestRank(t *testing.T) {
	now := time.Now()
	entries := []models.BalanceEntry{
		testEntry(t, "400000001", "uid-a", "2025-04-01", "1/2", "100", "150", "", now),
		testEntry(t, "400000002", "uid-b", "2025-04-01", "1/2", "100", "120", "", now),
		testEntry(t, "400000003", "uid-a", "2025-04-02", "1/2", "100", "80", "", now),
		testEntry(t, "400000004", "uid-c", "2025-04-02", "1/2", "100", "90", "", now),
	}
	players := map[string]models.Player{
		"uid-a": {UID: "uid-a", DisplayName: "Alice"},
		"uid-b": {UID: "uid-b", DisplayName: "Bob"},
	}

	t.Run("sums per player and orders descending", func(t *testing.T) {
		rows := Rank(entries, players)
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		// Alice +30, Bob +20, uid-c -10.
		if rows[0].Name != "Alice" || !rows[0].Total.Equal(dec(t, "30")) || rows[0].Rank != 1 {
			t.Errorf("unexpected first row: %+v", rows[0])
		}
		if rows[1].Name != "Bob" || rows[1].Rank != 2 {
			t.Errorf("unexpected second row: %+v", rows[1])
		}
		if rows[2].Name != "(unknown)" || !rows[2].Total.Equal(dec(t, "-10")) {
			t.Errorf("player without a profile must show a placeholder: %+v", rows[2])
		}
	})

	t.Run("deleted entries are ignored", func(t *testing.T) {
		withDeleted := append([]models.BalanceEntry{}, entries...)
		big := testEntry(t, "400000005", "uid-b", "2025-04-03", "1/2", "0", "1000", "", now)
		big.IsDeleted = true
		withDeleted = append(withDeleted, big)

		rows := Rank(withDeleted, players)
		if rows[0].PlayerUID != "uid-a" {
			t.Errorf("deleted entry changed the ranking: %+v", rows[0])
		}
	})

	t.Run("ties keep first-appearance order", func(t *testing.T) {
		tied := []models.BalanceEntry{
			testEntry(t, "400000006", "uid-b", "2025-04-01", "1/2", "100", "150", "", now),
			testEntry(t, "400000007", "uid-a", "2025-04-01", "1/2", "100", "150", "", now),
		}
		rows := Rank(tied, players)
		if rows[0].PlayerUID != "uid-b" || rows[1].PlayerUID != "uid-a" {
			t.Errorf("unexpected tie order: %+v", rows)
		}
	})

	t.Run("empty input yields an empty ranking", func(t *testing.T) {
		if rows := Rank(nil, players); len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}

func TestTopNWithSelf(t *testing.T) {
	ranking := []RankRow{
		{PlayerUID: "uid-1", Total: dec(t, "100"), Rank: 1},
		{PlayerUID: "uid-2", Total: dec(t, "80"), Rank: 2},
		{PlayerUID: "uid-3", Total: dec(t, "60"), Rank: 3},
		{PlayerUID: "uid-4", Total: dec(t, "40"), Rank: 4},
		{PlayerUID: "uid-5", Total: dec(t, "20"), Rank: 5},
	}

	t.Run("self inside the window is not duplicated", func(t *testing.T) {
		rows := TopNWithSelf(ranking, 3, "uid-2")
		if len(rows) != 3 || rows[2].PlayerUID != "uid-3" {
			t.Errorf("unexpected rows: %+v", rows)
		}
	})

	t.Run("self outside the window is appended with its true rank", func(t *testing.T) {
		rows := TopNWithSelf(ranking, 3, "uid-5")
		if len(rows) != 4 {
			t.Fatalf("expected 4 rows, got %d", len(rows))
		}
		self := rows[3]
		if self.PlayerUID != "uid-5" || self.Rank != 5 || !self.Outsider {
			t.Errorf("unexpected self row: %+v", self)
		}
	})

	t.Run("window covering everyone returns the full ranking", func(t *testing.T) {
		if rows := TopNWithSelf(ranking, 10, "uid-5"); len(rows) != 5 {
			t.Errorf("expected full ranking, got %d rows", len(rows))
		}
		if rows := TopNWithSelf(ranking, 0, "uid-5"); len(rows) != 5 {
			t.Errorf("non-positive window must not truncate, got %d rows", len(rows))
		}
	})

	t.Run("self without any entries is simply absent", func(t *testing.T) {
		rows := TopNWithSelf(ranking, 3, "uid-9")
		if len(rows) != 3 {
			t.Errorf("expected plain top 3, got %d rows", len(rows))
		}
	})
}
