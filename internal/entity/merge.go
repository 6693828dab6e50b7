package entity

// QuantityUpdate sets an existing remote row to a new absolute quantity.
type QuantityUpdate struct {
	RowID     string
	ProductID string
	Quantity  int
}

// MergePlan is the precomputed result of reconciling a guest cart against a
// user's remote cart. Applying it needs no further reads, so a partially
// applied plan can be retried without cross-iteration state.
type MergePlan struct {
	Inserts []CartLine
	Updates []QuantityUpdate
}

// Empty reports whether the plan contains no work.
func (p MergePlan) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0
}

// BuildMergePlan reconciles guest cart lines against existing remote rows.
// A guest line whose product already has a remote row becomes an update with
// the quantities added together; guest quantity never overwrites the remote
// one. Lines without a matching row become inserts. Order follows the guest
// cart.
func BuildMergePlan(guest []CartLine, remote []CartItem) MergePlan {
	byProduct := make(map[string]CartItem, len(remote))
	for _, item := range remote {
		byProduct[item.ProductID] = item
	}

	var plan MergePlan
	for _, line := range guest {
		if line.Quantity < 1 {
			continue
		}
		if existing, ok := byProduct[line.ProductID]; ok {
			plan.Updates = append(plan.Updates, QuantityUpdate{
				RowID:     existing.ID,
				ProductID: existing.ProductID,
				Quantity:  existing.Quantity + line.Quantity,
			})
		} else {
			plan.Inserts = append(plan.Inserts, line)
		}
	}
	return plan
}
