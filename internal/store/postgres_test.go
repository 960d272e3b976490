package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestBuildFilterQuery_NoPredicates(t *testing.T) {
	query, args := buildFilterQuery(ProductFilter{})

	assert.Equal(t, "SELECT id, name, category, price, instock FROM products", query)
	assert.Empty(t, args)
}

func TestBuildFilterQuery_AllPredicates(t *testing.T) {
	query, args := buildFilterQuery(ProductFilter{
		Category: strPtr("electronics"),
		InStock:  boolPtr(true),
		MinPrice: floatPtr(10),
		MaxPrice: floatPtr(20),
		Sort:     SortPriceAsc,
	})

	assert.Equal(t,
		"SELECT id, name, category, price, instock FROM products"+
			" WHERE category = $1 AND instock = $2 AND price >= $3 AND price <= $4"+
			" ORDER BY price ASC",
		query)
	assert.Equal(t, []any{"electronics", true, 10.0, 20.0}, args)
}

func TestBuildFilterQuery_SubsetKeepsPlaceholderOrder(t *testing.T) {
	query, args := buildFilterQuery(ProductFilter{
		InStock:  boolPtr(false),
		MaxPrice: floatPtr(50),
	})

	assert.Equal(t,
		"SELECT id, name, category, price, instock FROM products WHERE instock = $1 AND price <= $2",
		query)
	assert.Equal(t, []any{false, 50.0}, args)
}

func TestBuildFilterQuery_SortDesc(t *testing.T) {
	query, _ := buildFilterQuery(ProductFilter{Sort: SortPriceDesc})

	assert.Equal(t, "SELECT id, name, category, price, instock FROM products ORDER BY price DESC", query)
}

func TestBuildFilterQuery_UnknownSortIgnored(t *testing.T) {
	query, _ := buildFilterQuery(ProductFilter{Sort: "name_asc"})

	assert.NotContains(t, query, "ORDER BY")
}

func TestBuildUpdateQuery_SingleField(t *testing.T) {
	query, args := buildUpdateQuery(7, ProductPatch{Price: floatPtr(19.99)})

	assert.Equal(t,
		"UPDATE products SET price = $1 WHERE id = $2 RETURNING id, name, category, price, instock",
		query)
	assert.Equal(t, []any{19.99, int64(7)}, args)
}

func TestBuildUpdateQuery_AllFields(t *testing.T) {
	query, args := buildUpdateQuery(3, ProductPatch{
		Name:     strPtr("Hub"),
		Category: strPtr("electronics"),
		Price:    floatPtr(39),
		InStock:  boolPtr(false),
	})

	assert.Equal(t,
		"UPDATE products SET name = $1, category = $2, price = $3, instock = $4 WHERE id = $5"+
			" RETURNING id, name, category, price, instock",
		query)
	assert.Equal(t, []any{"Hub", "electronics", 39.0, false, int64(3)}, args)
}

func TestProductPatch_IsEmpty(t *testing.T) {
	assert.True(t, ProductPatch{}.IsEmpty())
	assert.False(t, ProductPatch{InStock: boolPtr(false)}.IsEmpty())
}
