package usecase

import (
	"fmt"

	"laundry-service/internal/data/entity"
)

// DefaultRates is the per-item price of each wash category.
var DefaultRates = map[entity.ServiceType]float64{
	entity.ServiceNormalWash:   5,
	entity.ServiceHeavyWash:    8,
	entity.ServiceDelicateWash: 7,
	entity.ServiceExpressWash:  10,
}

// RateTable is an immutable price lookup built once at startup.
type RateTable struct {
	rates map[entity.ServiceType]float64
}

// NewRateTable starts from DefaultRates and applies overrides keyed by service
// type. Unknown keys and non-positive prices are rejected; zero values are
// treated as "not overridden".
func NewRateTable(overrides map[string]float64) (RateTable, error) {
	rates := make(map[entity.ServiceType]float64, len(DefaultRates))
	for st, price := range DefaultRates {
		rates[st] = price
	}

	for key, price := range overrides {
		st := entity.ServiceType(key)
		if !st.Valid() {
			return RateTable{}, fmt.Errorf("unknown service type %q in pricing", key)
		}
		if price == 0 {
			continue
		}
		if price < 0 {
			return RateTable{}, fmt.Errorf("price for %s must be positive, got %v", key, price)
		}
		rates[st] = price
	}

	return RateTable{rates: rates}, nil
}

func (t RateTable) PriceFor(st entity.ServiceType) (float64, bool) {
	price, ok := t.rates[st]
	return price, ok
}

// Rates returns a copy of the table.
func (t RateTable) Rates() map[entity.ServiceType]float64 {
	out := make(map[entity.ServiceType]float64, len(t.rates))
	for st, price := range t.rates {
		out[st] = price
	}
	return out
}
