package usecase_test

import (
	"testing"

	"laundry-service/internal/data/entity"
	"laundry-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateTable_Defaults(t *testing.T) {
	rates, err := usecase.NewRateTable(nil)
	require.NoError(t, err)

	want := map[entity.ServiceType]float64{
		entity.ServiceNormalWash:   5,
		entity.ServiceHeavyWash:    8,
		entity.ServiceDelicateWash: 7,
		entity.ServiceExpressWash:  10,
	}
	assert.Equal(t, want, rates.Rates())
}

func TestNewRateTable_Overrides(t *testing.T) {
	rates, err := usecase.NewRateTable(map[string]float64{
		"express-wash": 12.5,
		"normal-wash":  0,
	})
	require.NoError(t, err)

	price, ok := rates.PriceFor(entity.ServiceExpressWash)
	assert.True(t, ok)
	assert.Equal(t, 12.5, price)

	price, _ = rates.PriceFor(entity.ServiceNormalWash)
	assert.Equal(t, float64(5), price)
}

func TestNewRateTable_Rejects(t *testing.T) {
	_, err := usecase.NewRateTable(map[string]float64{"dry-clean": 3})
	assert.Error(t, err)

	_, err = usecase.NewRateTable(map[string]float64{"heavy-wash": -1})
	assert.Error(t, err)
}

func TestRateTable_IsImmutable(t *testing.T) {
	rates, err := usecase.NewRateTable(nil)
	require.NoError(t, err)

	snapshot := rates.Rates()
	snapshot[entity.ServiceHeavyWash] = 1000

	price, _ := rates.PriceFor(entity.ServiceHeavyWash)
	assert.Equal(t, float64(8), price)

	usecase.DefaultRates[entity.ServiceHeavyWash] = 1000
	defer func() { usecase.DefaultRates[entity.ServiceHeavyWash] = 8 }()

	price, _ = rates.PriceFor(entity.ServiceHeavyWash)
	assert.Equal(t, float64(8), price)
}

func TestPriceFor_Unknown(t *testing.T) {
	rates, err := usecase.NewRateTable(nil)
	require.NoError(t, err)

	_, ok := rates.PriceFor("dry-clean")
	assert.False(t, ok)
}
