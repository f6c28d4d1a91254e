package extract

import (
	"ShelfGuardian/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = entity.NewDate(2026, time.October, 19)

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		name     string
		expiry   string
		category entity.Category
	}{
		{"add milk expiring in 3 days", "Milk", "2026-10-22", entity.CategoryFood},
		{"Please add Paracetamol tablets expires on 12-11-2026 (user id: 5).", "Paracetamol Tablets", "2026-11-12", entity.CategoryMedicine},
		{"add shampoo tomorrow", "Shampoo", "2026-10-20", entity.CategoryMiscellaneous},
		{"add eggs day after tomorrow", "Eggs", "2026-10-21", entity.CategoryFood},
		{"insert brown bread in two days", "Brown Bread", "2026-10-21", entity.CategoryFood},
		{"cough syrup expiry 2027-01-05", "Cough Syrup", "2027-01-05", entity.CategoryMedicine},
		{"create sunscreen with expiry 5/3/27", "Sunscreen", "2027-03-05", entity.CategoryMiscellaneous},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			item, err := Parse(tt.in, today)
			require.NoError(t, err)
			assert.Equal(t, tt.name, item.Name)
			assert.Equal(t, tt.expiry, item.ExpiryDate.String())
			assert.Equal(t, tt.category, item.Category)
		})
	}
}

func TestParseWithoutExpiry(t *testing.T) {
	item, err := Parse("add vaseline", today)
	assert.ErrorIs(t, err, ErrNoExpiry)
	assert.Equal(t, "Vaseline", item.Name)
	assert.Equal(t, entity.CategoryMiscellaneous, item.Category)
}

func TestNameFallsBackToUnnamed(t *testing.T) {
	assert.Equal(t, unnamedProduct, Name("add in 3 days"))
}

func TestCategorizeChecksFoodFirst(t *testing.T) {
	assert.Equal(t, entity.CategoryFood, Categorize("Cheese Tablet"))
	assert.Equal(t, entity.CategoryMedicine, Categorize("Ibuprofen"))
	assert.Equal(t, entity.CategoryMiscellaneous, Categorize("Batteries"))
}

func TestExpiryOutOfRange(t *testing.T) {
	for _, desc := range []string{
		"add juice in 999999999 days",
		"add juice in 99999999999999999999 days",
		"add juice expiry 0000-01-01",
	} {
		_, ok := Expiry(desc, today)
		assert.False(t, ok, desc)

		_, err := Parse(desc, today)
		assert.ErrorIs(t, err, ErrNoExpiry, desc)
	}

	expiry, ok := Expiry("add wine in 2900000 days", today)
	require.True(t, ok)
	assert.True(t, expiry.InRange())
}
