package models

// CommissionTier is a commission-rate bracket. It is derived from an
// ambassador's lifetime attributed-enrollment count on every read and is
// never stored.
type CommissionTier struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

var (
	TierBronze = CommissionTier{Name: "Bronze", Rate: 0.10}
	TierSilver = CommissionTier{Name: "Silver", Rate: 0.20}
	TierGold   = CommissionTier{Name: "Gold", Rate: 0.33}
)

// TierFor returns the commission tier for a lifetime attributed-enrollment
// count. Brackets: 0-4 Bronze, 5-15 Silver, 16+ Gold.
func TierFor(count int64) CommissionTier {
	switch {
	case count >= 16:
		return TierGold
	case count >= 5:
		return TierSilver
	default:
		return TierBronze
	}
}
