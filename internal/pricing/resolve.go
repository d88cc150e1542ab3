package pricing

import "github.com/bwmarrin/snowflake"

// ResolveConfig selects the effective configuration for a supplier: the
// latest supplier-specific record by EffectiveAt wins, else the latest
// global record, else ErrNoConfiguration. This is the single two-tier
// lookup; freight-item resolution reuses the same rule per component name.
func ResolveConfig(supplierID *snowflake.ID, configs []Config) (Config, error) {
	if cfg, ok := latestFor(supplierID, configs); ok {
		return cfg, nil
	}
	if supplierID != nil {
		if cfg, ok := latestFor(nil, configs); ok {
			return cfg, nil
		}
	}
	return Config{}, ErrNoConfiguration
}

func latestFor(supplierID *snowflake.ID, configs []Config) (Config, bool) {
	var (
		best  Config
		found bool
	)
	for _, cfg := range configs {
		if !sameSupplier(cfg.SupplierID, supplierID) {
			continue
		}
		if !found || cfg.EffectiveAt.After(best.EffectiveAt) {
			best = cfg
			found = true
		}
	}
	return best, found
}

func sameSupplier(a, b *snowflake.ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
