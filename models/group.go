package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Group struct {
	gorm.Model

	GroupCode    string `gorm:"uniqueIndex;size:6" json:"group_code"`
	Name         string `gorm:"size:64" json:"name"`
	Creator      string `gorm:"size:255" json:"creator"`
	PlayerSecret string `gorm:"size:16" json:"-"`
	AdminSecret  string `gorm:"size:16" json:"-"`

	Settings GroupSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`

	LastUpdated time.Time `json:"last_updated"`

	Players []Player `gorm:"foreignKey:GroupID"`
}

type GroupSettings struct {
	StakesFixed bool             `json:"stakes_fixed"`
	StakesSB    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"stakes_sb"`
	StakesBB    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"stakes_bb"`
	// LegacyStakes holds the old combined "SB/BB" string. Read-only: kept
	// for groups saved before the split fields existed, cleared on the next
	// settings save.
	LegacyStakes *string `gorm:"size:32" json:"stakes_value"`
	RankingTopN  int     `gorm:"default:10" json:"ranking_top_n"`
}

type StakesPair struct {
	SB decimal.Decimal `json:"sb"`
	BB decimal.Decimal `json:"bb"`
}

// Label renders the pair the way entries store it, e.g. "1/3".
func (s StakesPair) Label() string {
	return s.SB.String() + "/" + s.BB.String()
}

// FixedStakes returns the admin-fixed blinds, or nil when players enter
// their own. Prefers the structured fields; falls back to parsing the
// legacy combined string. Malformed legacy values degrade to nil rather
// than failing the lookup.
func (g *Group) FixedStakes() *StakesPair {
	if g == nil || !g.Settings.StakesFixed {
		return nil
	}
	if g.Settings.StakesSB != nil && g.Settings.StakesBB != nil {
		return &StakesPair{SB: *g.Settings.StakesSB, BB: *g.Settings.StakesBB}
	}
	if g.Settings.LegacyStakes != nil {
		parts := strings.SplitN(*g.Settings.LegacyStakes, "/", 2)
		if len(parts) == 2 {
			sb, errSB := decimal.NewFromString(strings.TrimSpace(parts[0]))
			bb, errBB := decimal.NewFromString(strings.TrimSpace(parts[1]))
			if errSB == nil && errBB == nil {
				return &StakesPair{SB: sb, BB: bb}
			}
		}
	}
	return nil
}
