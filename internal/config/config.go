package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nasif952/La-valecia/internal/domain"
	"github.com/nasif952/La-valecia/internal/pricing"
	"gopkg.in/yaml.v3"
)

type Pricing struct {
	FreeShippingThresholdCents int64  `yaml:"free_shipping_threshold_cents"`
	FlatShippingFeeCents       int64  `yaml:"flat_shipping_fee_cents"`
	Currency                   string `yaml:"currency"`
}

type Config struct {
	Pricing Pricing         `yaml:"pricing"`
	Coupons []domain.Coupon `yaml:"coupons"`
}

// Default matches the storefront's shipped constants: free shipping over
// ৳500, flat ৳20 fee below it, one welcome coupon.
func Default() *Config {
	return &Config{
		Pricing: Pricing{
			FreeShippingThresholdCents: 50000,
			FlatShippingFeeCents:       2000,
			Currency:                   "BDT",
		},
		Coupons: []domain.Coupon{
			{Code: "welcome10", DiscountBps: 1000},
		},
	}
}

// Load reads a YAML config file, falling back to defaults when the file is
// absent. A present-but-unparsable file is an error; silently ignoring a bad
// config would hide operator mistakes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	for _, c := range cfg.Coupons {
		if c.DiscountBps < 0 || c.DiscountBps >= 10000 {
			return nil, fmt.Errorf("coupon %q: discount_bps must be in [0, 10000): %w", c.Code, domain.ErrValidation)
		}
	}
	return cfg, nil
}

func (c *Config) PricingConfig() pricing.Config {
	return pricing.Config{
		FreeShippingThresholdCents: c.Pricing.FreeShippingThresholdCents,
		FlatShippingFeeCents:       c.Pricing.FlatShippingFeeCents,
	}
}
