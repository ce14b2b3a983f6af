package pricing

// ResolveRate walks a ladder sorted ascending by Threshold. Each row except the
// last covers [row.Threshold, next.Threshold); the last row is open-ended.
// An acd below the first threshold has no rate.
func ResolveRate(ladder []Plan, acd float64) (float64, bool) {
	if acd <= 0 || len(ladder) == 0 {
		return 0, false
	}
	for i := 0; i < len(ladder)-1; i++ {
		lo, hi := float64(ladder[i].Threshold), float64(ladder[i+1].Threshold)
		if acd >= lo && acd < hi {
			return ladder[i].Rate, true
		}
	}
	last := ladder[len(ladder)-1]
	if acd >= float64(last.Threshold) {
		return last.Rate, true
	}
	return 0, false
}

// AmountDue bills total call time per fractional minute.
func AmountDue(callSeconds, rate float64) float64 {
	return callSeconds / 60 * rate
}
