package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ileke_server/structs"
)

func TestHandleize(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Adire Slide", "adire-slide"},
		{"Ilékè Beaded Mule", "il-k-beaded-mule"},
		{"  Leather   Clog 2 ", "leather-clog-2"},
		{"UPPER CASE", "upper-case"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Handleize(tt.title), tt.title)
	}
}

func TestProductSortFieldAllowList(t *testing.T) {
	// Only safe columns can be sorted on; anything else must fall through
	// to the default.
	for _, field := range []string{"created_at", "price", "title"} {
		_, ok := productSortFields[field]
		assert.True(t, ok, field)
	}

	_, ok := productSortFields["password_hash; DROP TABLE products"]
	assert.False(t, ok)
}

func TestProductUpdateSetsOnlyKnownColumns(t *testing.T) {
	// Request bodies decode into a fixed struct; keys that are not fields of
	// it never reach the update, so a crafted key cannot end up in SQL text.
	body := `{
		"title": "Aso Oke Loafer",
		"price": 2500000,
		"price = 0 WHERE true; --": 1,
		"deleted_at": null,
		"is_admin": true
	}`

	var req structs.ProductUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	sets := productUpdateSets(&req)
	assert.Equal(t, map[string]any{
		"title": "Aso Oke Loafer",
		"price": uint64(2500000),
	}, sets)

	allowed := map[string]bool{
		"title": true, "handle": true, "description": true, "price": true,
		"compare_at_price": true, "tags": true, "is_active": true,
		"featured_image": true,
	}
	for col := range sets {
		assert.True(t, allowed[col], col)
	}
}

func TestCollectionUpdateSetsOnlyKnownColumns(t *testing.T) {
	body := `{"title": "New Arrivals", "handle": "new-arrivals", "is_active = false; --": true}`

	var req structs.CollectionUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	sets := collectionUpdateSets(&req)
	assert.Equal(t, map[string]any{
		"title":  "New Arrivals",
		"handle": "new-arrivals",
	}, sets)
}

func TestProductUpdateSetsEmptyRequest(t *testing.T) {
	assert.Empty(t, productUpdateSets(&structs.ProductUpdateRequest{}))
	assert.Empty(t, collectionUpdateSets(&structs.CollectionUpdateRequest{}))
}

func TestDuplicateNames(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	title, handle := duplicateNames("Adire Slide", "adire-slide", now)
	assert.Equal(t, "Adire Slide (Copy)", title)
	assert.Regexp(t, `^adire-slide-copy-\d+$`, handle)

	// Copies of copies stay unique
	title2, handle2 := duplicateNames(title, handle, now.Add(time.Millisecond))
	assert.Equal(t, "Adire Slide (Copy) (Copy)", title2)
	assert.NotEqual(t, handle, handle2)
}

func TestCloudinaryPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/ileke/image/upload/v1725000000/products/adire-slide.jpg", "products/adire-slide"},
		{"https://res.cloudinary.com/ileke/image/upload/products/adire-slide.png", "products/adire-slide"},
		{"https://res.cloudinary.com/ileke/image/upload/v99/top.webp", "top"},
		{"https://cdn.elsewhere.example/products/adire-slide.jpg", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cloudinaryPublicID(tt.url), tt.url)
	}
}
