package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingDefaults are the operator-tunable defaults applied when a pricing
// configuration record leaves a field unset. They live in pricing.yml and
// hot-reload without a restart.
type PricingDefaults struct {
	// MarginBasis: "base" or "base_with_commission". The two formulas both
	// exist in the business's spreadsheets; the default is explicit, never
	// guessed per call site.
	MarginBasis string `mapstructure:"marginBasis"`
	// QuoteTTLMinutes bounds how long a cached spot quote stays fresh.
	QuoteTTLMinutes int `mapstructure:"quoteTtlMinutes"`
	// NumberTemplate formats proforma invoice numbers.
	NumberTemplate string `mapstructure:"numberTemplate"`
}

func DefaultPricingDefaults() PricingDefaults {
	return PricingDefaults{
		MarginBasis:     "base",
		QuoteTTLMinutes: 60,
		NumberTemplate:  "PI-{YYYY}{MM}-{SEQ4}",
	}
}

type PricingDefaultsHolder struct {
	current atomic.Value // holds PricingDefaults
}

func NewPricingDefaultsHolder() (*PricingDefaultsHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/proforma")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PROFORMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPricingDefaults()
		v.SetDefault("pricing.marginBasis", defaults.MarginBasis)
		v.SetDefault("pricing.quoteTtlMinutes", defaults.QuoteTTLMinutes)
		v.SetDefault("pricing.numberTemplate", defaults.NumberTemplate)
	}

	var cfg PricingDefaults
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingDefaults(cfg); err != nil {
		return nil, err
	}

	holder := &PricingDefaultsHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingDefaults
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-defaults] reload failed: %v", err)
			return
		}
		if err := validatePricingDefaults(updated); err != nil {
			log.Printf("[pricing-defaults] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-defaults] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PricingDefaultsHolder) Get() PricingDefaults {
	return h.current.Load().(PricingDefaults)
}

func validatePricingDefaults(cfg PricingDefaults) error {
	switch cfg.MarginBasis {
	case "base", "base_with_commission":
	default:
		return errors.New("pricing.marginBasis must be base or base_with_commission")
	}
	if cfg.QuoteTTLMinutes <= 0 {
		return errors.New("pricing.quoteTtlMinutes must be positive")
	}
	if strings.TrimSpace(cfg.NumberTemplate) == "" {
		return errors.New("pricing.numberTemplate cannot be empty")
	}
	return nil
}
