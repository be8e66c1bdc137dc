package stats

// BonusTier is the performance-score bucket driving teacher-bonus decisions.
type BonusTier string

const (
	TierNone      BonusTier = "none"
	TierStandard  BonusTier = "standard"
	TierSuperior  BonusTier = "superior"
	TierExcellent BonusTier = "excellent"
)

// BonusForScore buckets a 0-100 score. Lower bounds are inclusive:
// 90+ excellent, 75+ superior, 60+ standard.
func BonusForScore(score int) BonusTier {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 75:
		return TierSuperior
	case score >= 60:
		return TierStandard
	}
	return TierNone
}
