package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/app789plates/plates-backend/config"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/db"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		key     string
		want    repository.SearchSort
		wantErr bool
	}{
		{"", repository.SearchSortPriceAsc, false},
		{"price_asc", repository.SearchSortPriceAsc, false},
		{"price_desc", repository.SearchSortPriceDesc, false},
		{"popularity", repository.SearchSortPopularity, false},
		{"random", repository.SearchSortRandom, false},
		{"cheapest", "", true},
		{"PRICE_ASC", "", true},
	}
	for _, tt := range tests {
		t.Run("key "+tt.key, func(t *testing.T) {
			got, err := ParseSort(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSort)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProvinceScope(t *testing.T) {
	tests := []struct {
		key     string
		want    repository.ProvinceScope
		wantErr bool
	}{
		{"", repository.ProvinceScopeAny, false},
		{"any", repository.ProvinceScopeAny, false},
		{"capital", repository.ProvinceScopeCapital, false},
		{"provincial", repository.ProvinceScopeProvincial, false},
		{"bangkok", repository.ProvinceScopeAny, true},
	}
	for _, tt := range tests {
		t.Run("key "+tt.key, func(t *testing.T) {
			got, err := ParseProvinceScope(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProvinceScope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchService_SearchByCategory(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	user := createServiceTestUser(t, testDB, "Store")
	plateSvc := NewPlateService(repository.NewPlateRepository(testDB))
	_, err = plateSvc.Create(user.ID, validInput(999))
	require.NoError(t, err)

	svc := NewSearchService(repository.NewSearchRepository(testDB), &config.SearchConfig{FallbackThreshold: 20})

	results, err := svc.SearchByCategory(context.Background(), "xxx", repository.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	_, err = svc.SearchByCategory(context.Background(), "no-such-category", repository.SearchFilter{})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSearchService_ThresholdFromConfig(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	user := createServiceTestUser(t, testDB, "Store")
	plateSvc := NewPlateService(repository.NewPlateRepository(testDB))
	_, err = plateSvc.Create(user.ID, validInput(55))
	require.NoError(t, err)
	_, err = plateSvc.Create(user.ID, validInput(155))
	require.NoError(t, err)

	searchRepo := repository.NewSearchRepository(testDB)
	back := 55

	// A generous threshold triggers the relaxed substring pass.
	wide := NewSearchService(searchRepo, &config.SearchConfig{FallbackThreshold: 20})
	results, err := wide.SearchByTerms(repository.SearchTerms{BackNumber: &back}, repository.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// A threshold of one is satisfied by the strict pass alone.
	narrow := NewSearchService(searchRepo, &config.SearchConfig{FallbackThreshold: 1})
	results, err = narrow.SearchByTerms(repository.SearchTerms{BackNumber: &back}, repository.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchService_GetPlateDetail(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	user := createServiceTestUser(t, testDB, "Store")
	plateSvc := NewPlateService(repository.NewPlateRepository(testDB))
	plate, err := plateSvc.Create(user.ID, validInput(42))
	require.NoError(t, err)

	svc := NewSearchService(repository.NewSearchRepository(testDB), &config.SearchConfig{FallbackThreshold: 20})

	detail, err := svc.GetPlateDetail(plate.ID)
	require.NoError(t, err)
	assert.Equal(t, 50000, detail.Price)

	_, err = svc.GetPlateDetail(9999)
	assert.ErrorIs(t, err, ErrPlateNotFound)
}
