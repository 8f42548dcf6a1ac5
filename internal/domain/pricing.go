package domain

// Pricing splits the day into a day rate and a night rate at SplitAt.
type Pricing struct {
	SplitAt   Clock
	DayRate   int64
	NightRate int64
}

// PriceFor prorates each hour of the interval at the rate in force when it starts.
func (p Pricing) PriceFor(i Interval) int64 {
	var total int64
	for start := i.Start; start < i.End; start += 60 {
		end := start + 60
		if end > i.End {
			end = i.End
		}
		rate := p.DayRate
		if start >= p.SplitAt {
			rate = p.NightRate
		}
		total += rate * int64(end-start) / 60
	}
	return total
}

func (p Pricing) IsPeak(i Interval) bool {
	return i.Start >= p.SplitAt
}
