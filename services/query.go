package services

// FilterFromQueries maps the request's query parameters onto a filter.
// Parameter names match the client filter form fields.
func FilterFromQueries(q map[string]string) BalanceFilter {
	return BalanceFilter{
		UpdatedStart: q["updated_start"],
		UpdatedEnd:   q["updated_end"],
		PlayerUID:    q["player_uid"],
		DateStart:    q["date_start"],
		DateEnd:      q["date_end"],
		Stakes:       q["stakes"],
		BuyInMin:     q["buy_in_min"],
		BuyInMax:     q["buy_in_max"],
		EndingMin:    q["ending_min"],
		EndingMax:    q["ending_max"],
		DeltaMin:     q["delta_min"],
		DeltaMax:     q["delta_max"],
		Memo:         q["memo"],
		BalanceCode:  q["balance_code"],
	}
}

// ParseSortParams validates sort query parameters, falling back to the
// default last-updated descending ordering.
func ParseSortParams(key, dir string) (SortKey, SortDir) {
	k := SortLastUpdated
	switch SortKey(key) {
	case SortDate, SortBuyIn, SortEnding, SortDelta, SortLastUpdated:
		k = SortKey(key)
	}
	d := SortDesc
	if SortDir(dir) == SortAsc {
		d = SortAsc
	}
	return k, d
}
