package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamnura/mini-ecommerce-api/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: 1, Title: "Phone", Price: 549, Rating: 4.7, Category: "smartphones"},
		{ID: 2, Title: "Laptop", Price: 1499, Rating: 4.4, Category: "laptops"},
		{ID: 3, Title: "Soap", Price: 4.5, Rating: 3.1, Category: "beauty"},
		{ID: 4, Title: "Watch", Price: 120, Rating: 4.9, Category: "accessories"},
		{ID: 5, Title: "Cable", Price: 9, Rating: 2.5, Category: "accessories"},
	}
}

func TestApplyIdentity(t *testing.T) {
	products := sampleProducts()

	out := Apply(products, Criteria{Price: All, Category: All, Location: All})

	assert.Equal(t, products, out, "all-disabled criteria must return the input unchanged")
}

func TestApplyPriceBuckets(t *testing.T) {
	products := sampleProducts()

	t.Run("lt100", func(t *testing.T) {
		out := Apply(products, Criteria{Price: PriceLt100})
		require.Len(t, out, 2)
		// order preserved from input
		assert.Equal(t, 3, out[0].ID)
		assert.Equal(t, 5, out[1].ID)
		for _, p := range out {
			assert.Less(t, p.Price, 100.0)
		}
	})

	t.Run("100to500", func(t *testing.T) {
		out := Apply(products, Criteria{Price: Price100to500})
		require.Len(t, out, 1)
		assert.Equal(t, 4, out[0].ID)
	})

	t.Run("gt500", func(t *testing.T) {
		out := Apply(products, Criteria{Price: PriceGt500})
		require.Len(t, out, 2)
		assert.Equal(t, 1, out[0].ID)
		assert.Equal(t, 2, out[1].ID)
	})

	t.Run("boundaries", func(t *testing.T) {
		boundary := []models.Product{{ID: 10, Price: 100}, {ID: 11, Price: 500}}
		assert.Empty(t, Apply(boundary, Criteria{Price: PriceLt100}))
		assert.Len(t, Apply(boundary, Criteria{Price: Price100to500}), 2)
		assert.Empty(t, Apply(boundary, Criteria{Price: PriceGt500}))
	})
}

func TestApplyRating(t *testing.T) {
	out := Apply(sampleProducts(), Criteria{MinRating: 4})

	require.Len(t, out, 3)
	for _, p := range out {
		assert.GreaterOrEqual(t, p.Rating, 4.0)
	}
}

func TestApplyConjunction(t *testing.T) {
	out := Apply(sampleProducts(), Criteria{
		Price:     PriceLt100,
		MinRating: 3,
		Category:  "beauty",
	})

	require.Len(t, out, 1)
	assert.Equal(t, "Soap", out[0].Title)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "Jakarta", Location(0))
	assert.Equal(t, "Bandung", Location(1))
	assert.Equal(t, "Medan", Location(4))
	assert.Equal(t, "Jakarta", Location(5))
	assert.Equal(t, Location(2), Location(7), "same residue, same location")
}

func TestApplyLocation(t *testing.T) {
	products := sampleProducts()

	out := Apply(products, Criteria{Location: Location(products[0].ID)})

	require.NotEmpty(t, out)
	for _, p := range out {
		assert.Equal(t, Location(products[0].ID), Location(p.ID))
	}
}

func TestCategoriesOf(t *testing.T) {
	got := CategoriesOf(sampleProducts())

	assert.Equal(t, []string{"smartphones", "laptops", "beauty", "accessories"}, got)
	assert.Empty(t, CategoriesOf(nil))
}
