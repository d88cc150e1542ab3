package pricing

import "github.com/bwmarrin/snowflake"

// AllocateFreight distributes the BRL and USD freight pools across lines
// proportionally to each line's volumetric weight. A zero total weight is
// the defined degenerate case: every share is zero, never a division.
// Invariant: sum(shares) == pool up to floating rounding.
func AllocateFreight(weights []float64, totalBRL, totalUSD float64) []FreightShare {
	shares := make([]FreightShare, len(weights))

	var totalWeight float64
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return shares
	}

	perWeightBRL := totalBRL / totalWeight
	perWeightUSD := totalUSD / totalWeight
	for i, w := range weights {
		shares[i] = FreightShare{
			BRL: perWeightBRL * w,
			USD: perWeightUSD * w,
		}
	}
	return shares
}

// FreightPool sums the shared BRL freight cost for one incoterm group: the
// configuration's base sub-items plus the non-ignored freight items, where
// a supplier-specific item replaces the global item of the same name and
// supplier items with new names are added alongside.
func FreightPool(incoterm Incoterm, supplierID *snowflake.ID, cfg Config, items []FreightItem) float64 {
	effective := map[string]FreightItem{}
	for _, item := range items {
		if item.Incoterm != incoterm {
			continue
		}
		switch {
		case item.SupplierID == nil:
			if prev, ok := effective[item.Name]; ok && prev.SupplierID != nil {
				continue // supplier override already seen
			}
			effective[item.Name] = item
		case supplierID != nil && *item.SupplierID == *supplierID:
			effective[item.Name] = item
		}
	}

	total := cfg.FreightBase.Total(incoterm)
	for _, item := range effective {
		if item.Ignore {
			continue
		}
		total += item.Amount
	}
	return total
}
