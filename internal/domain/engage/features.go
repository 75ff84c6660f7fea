package engage

// Derived snapshot features shared by every local tier. All of these are pure
// reads; the snapshot is never modified.

func (s StateSnapshot) HPRatio() float64 {
	if s.Vitals.MaxHP <= 0 {
		return 0
	}
	return float64(s.Vitals.HP) / float64(s.Vitals.MaxHP)
}

func (s StateSnapshot) SPRatio() float64 {
	if s.Vitals.MaxSP <= 0 {
		return 1
	}
	return float64(s.Vitals.SP) / float64(s.Vitals.MaxSP)
}

func (s StateSnapshot) WeightRatio() float64 {
	if s.MaxWeight <= 0 {
		return 0
	}
	return float64(s.Weight) / float64(s.MaxWeight)
}

// AggressiveWithin counts aggressive hostiles at or inside the given distance.
func (s StateSnapshot) AggressiveWithin(distance int) int {
	n := 0
	for _, h := range s.Hostiles {
		if h.Aggressive && h.Distance <= distance {
			n++
		}
	}
	return n
}

// UnderAttack reports an aggressive hostile inside contact range.
func (s StateSnapshot) UnderAttack() bool {
	return s.AggressiveWithin(ContactRange) > 0
}

// NearestHostile picks the closest hostile within maxRange, preferring
// aggressive ones regardless of distance.
func (s StateSnapshot) NearestHostile(maxRange int) (Hostile, bool) {
	var best Hostile
	found := false
	bestAggro := false
	for _, h := range s.Hostiles {
		if h.Distance > maxRange {
			continue
		}
		switch {
		case !found:
		case h.Aggressive && !bestAggro:
		case h.Aggressive == bestAggro && h.Distance < best.Distance:
		default:
			continue
		}
		best = h
		found = true
		bestAggro = h.Aggressive
	}
	return best, found
}

func (s StateSnapshot) HasDisablingStatus() (string, bool) {
	for _, effect := range s.StatusEffects {
		if DisablingStatuses[effect] {
			return effect, true
		}
	}
	return "", false
}

// BestItemOfKind returns the carried item of the given kind with the largest
// remaining amount, so repeated use drains one stack before opening another.
func (s StateSnapshot) BestItemOfKind(kind string) (CarriedItem, bool) {
	var best CarriedItem
	found := false
	for _, item := range s.Inventory {
		if item.Kind != kind || item.Amount <= 0 {
			continue
		}
		if !found || item.Amount > best.Amount {
			best = item
			found = true
		}
	}
	return best, found
}

func (s StateSnapshot) CountItem(name string) int {
	total := 0
	for _, item := range s.Inventory {
		if item.Name == name {
			total += item.Amount
		}
	}
	return total
}
