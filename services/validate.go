package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Validation failures double as response codes, first failing rule wins so
// the client message is deterministic.
var (
	ErrInvalidDateOrStakes  = errors.New("INVALID_DATE_OR_STAKES")
	ErrStakesNotPositive    = errors.New("STAKES_MUST_BE_POSITIVE")
	ErrInvalidBuyInOrEnding = errors.New("INVALID_BUYIN_OR_ENDING")
)

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDateOrStakes) ||
		errors.Is(err, ErrStakesNotPositive) ||
		errors.Is(err, ErrInvalidBuyInOrEnding)
}

// EntryValues holds a validated session report ready for the ledger.
type EntryValues struct {
	Date   string
	DateTS time.Time
	SB     decimal.Decimal
	BB     decimal.Decimal
	BuyIn  decimal.Decimal
	Ending decimal.Decimal
}

// ValidateEntry checks a raw session report. Rules, in order: the date must
// be a present YYYY-MM-DD day and both blinds must parse; blinds must be
// strictly positive; buy-in and ending stack must parse. No upper bound on
// any amount, and negative buy-in/ending values are accepted as reported.
func ValidateEntry(date, sb, bb, buyIn, ending string) (*EntryValues, error) {
	if date == "" {
		return nil, ErrInvalidDateOrStakes
	}
	dateTS, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateOrStakes
	}

	sbVal, errSB := decimal.NewFromString(sb)
	bbVal, errBB := decimal.NewFromString(bb)
	if errSB != nil || errBB != nil {
		return nil, ErrInvalidDateOrStakes
	}

	if !sbVal.IsPositive() || !bbVal.IsPositive() {
		return nil, ErrStakesNotPositive
	}

	buyInVal, errBI := decimal.NewFromString(buyIn)
	endingVal, errEN := decimal.NewFromString(ending)
	if errBI != nil || errEN != nil {
		return nil, ErrInvalidBuyInOrEnding
	}

	return &EntryValues{
		Date:   date,
		DateTS: dateTS,
		SB:     sbVal,
		BB:     bbVal,
		BuyIn:  buyInVal,
		Ending: endingVal,
	}, nil
}
