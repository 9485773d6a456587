//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/storefront/internal/handlers"
	pkghttp "github.com/BradenHooton/storefront/pkg/http"
)

func listProducts(t *testing.T, ts *TestServer, query string) handlers.ProductListResponse {
	t.Helper()

	resp, err := ts.Request(http.MethodGet, "/api/v1/products"+query, nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handlers.ProductListResponse
	require.NoError(t, ParseJSONResponse(resp, &body))
	return body
}

func names(items []handlers.ProductResponse) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func TestProducts_EmptyCatalog(t *testing.T) {
	ts := freshServer(t)

	body := listProducts(t, ts, "")

	assert.Empty(t, body.Items)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 20, body.PageSize)
	assert.Equal(t, int64(0), body.TotalItems)
	assert.Equal(t, 0, body.TotalPages)
}

func TestProducts_OnlyAvailableReturned(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	_, err := SeedProduct(ctx, testDB.Pool, Available("Visible", "10.00", nil))
	require.NoError(t, err)
	_, err = SeedProduct(ctx, testDB.Pool, ProductSeed{Name: "Hidden", Price: "5.00", Currency: "EUR", Available: false})
	require.NoError(t, err)

	body := listProducts(t, ts, "")

	assert.Equal(t, []string{"Visible"}, names(body.Items))
	assert.Equal(t, int64(1), body.TotalItems)
	for _, p := range body.Items {
		assert.True(t, p.IsAvailable)
	}
}

func TestProducts_SearchIsCaseInsensitiveNameSubstring(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	_, err := SeedProduct(ctx, testDB.Pool, Available("Smart Phone", "300.00", nil))
	require.NoError(t, err)
	_, err = SeedProduct(ctx, testDB.Pool, Available("Headphones", "80.00", nil))
	require.NoError(t, err)
	descOnly := Available("Case", "15.00", nil)
	descOnly.Description = ptr("Protective shell for any PHONE")
	_, err = SeedProduct(ctx, testDB.Pool, descOnly)
	require.NoError(t, err)

	body := listProducts(t, ts, "?q=%20PHONE%20")

	assert.Equal(t, []string{"Headphones", "Smart Phone"}, names(body.Items))
	assert.Equal(t, int64(2), body.TotalItems)
}

func TestProducts_BlankSearchIsNoFilter(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	_, err := SeedProduct(ctx, testDB.Pool, Available("Anything", "1.00", nil))
	require.NoError(t, err)

	body := listProducts(t, ts, "?q=%20%20%20")

	assert.Equal(t, int64(1), body.TotalItems)
}

func TestProducts_SearchTreatsWildcardsLiterally(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	_, err := SeedProduct(ctx, testDB.Pool, Available("100% Cotton Shirt", "20.00", nil))
	require.NoError(t, err)
	_, err = SeedProduct(ctx, testDB.Pool, Available("Cotton Socks", "5.00", nil))
	require.NoError(t, err)

	body := listProducts(t, ts, "?q=100%25")

	assert.Equal(t, []string{"100% Cotton Shirt"}, names(body.Items))
}

func TestProducts_CategoryFilter(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	books, err := SeedCategory(ctx, testDB.Pool, "Books")
	require.NoError(t, err)
	games, err := SeedCategory(ctx, testDB.Pool, "Games")
	require.NoError(t, err)

	_, err = SeedProduct(ctx, testDB.Pool, Available("Novel", "12.00", &books))
	require.NoError(t, err)
	_, err = SeedProduct(ctx, testDB.Pool, Available("Chess", "30.00", &games))
	require.NoError(t, err)
	_, err = SeedProduct(ctx, testDB.Pool, Available("Loose item", "1.00", nil))
	require.NoError(t, err)

	body := listProducts(t, ts, "?categoryId="+books)

	require.Len(t, body.Items, 1)
	assert.Equal(t, "Novel", body.Items[0].Name)
	require.NotNil(t, body.Items[0].Category)
	assert.Equal(t, books, body.Items[0].Category.ID)
	assert.Equal(t, "Books", body.Items[0].Category.Name)
}

func TestProducts_UnknownCategoryYieldsEmptyPage(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	_, err := SeedProduct(ctx, testDB.Pool, Available("Anything", "1.00", nil))
	require.NoError(t, err)

	body := listProducts(t, ts, "?categoryId=00000000-0000-0000-0000-000000000001")

	assert.Empty(t, body.Items)
	assert.Equal(t, int64(0), body.TotalItems)
	assert.Equal(t, 0, body.TotalPages)
}

func TestProducts_SortByPriceNullsLast(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	_, err := SeedProduct(ctx, testDB.Pool, Available("Expensive", "99.99", nil))
	require.NoError(t, err)
	_, err = SeedProduct(ctx, testDB.Pool, ProductSeed{Name: "Unpriced", Available: true})
	require.NoError(t, err)
	_, err = SeedProduct(ctx, testDB.Pool, Available("Cheap", "0.50", nil))
	require.NoError(t, err)

	byPrice := listProducts(t, ts, "?sort=price_asc")
	assert.Equal(t, []string{"Cheap", "Expensive", "Unpriced"}, names(byPrice.Items))

	byName := listProducts(t, ts, "")
	assert.Equal(t, []string{"Cheap", "Expensive", "Unpriced"}, names(byName.Items))

	assert.Nil(t, byPrice.Items[2].Price)
	require.NotNil(t, byPrice.Items[0].Price)
	assert.Equal(t, "EUR", byPrice.Items[0].Price.Currency)
	assert.Equal(t, "0.5", byPrice.Items[0].Price.Amount.String())
}

func TestProducts_SortByPriceBreaksTiesByName(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	// inserted in reverse name order
	for _, seed := range []ProductSeed{
		Available("Zebra Mug", "12.00", nil),
		Available("Mango Mug", "12.00", nil),
		Available("Apple Mug", "12.00", nil),
		Available("Budget Mug", "3.00", nil),
	} {
		_, err := SeedProduct(ctx, testDB.Pool, seed)
		require.NoError(t, err)
	}

	body := listProducts(t, ts, "?sort=price_asc")

	assert.Equal(t, []string{"Budget Mug", "Apple Mug", "Mango Mug", "Zebra Mug"}, names(body.Items))
}

func TestProducts_Pagination(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := SeedProduct(ctx, testDB.Pool, Available(name, "1.00", nil))
		require.NoError(t, err)
	}

	first := listProducts(t, ts, "?page=1&pageSize=2")
	assert.Equal(t, []string{"A", "B"}, names(first.Items))
	assert.Equal(t, int64(5), first.TotalItems)
	assert.Equal(t, 3, first.TotalPages)

	last := listProducts(t, ts, "?page=3&pageSize=2")
	assert.Equal(t, []string{"E"}, names(last.Items))

	beyond := listProducts(t, ts, "?page=10&pageSize=2")
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 10, beyond.Page)
	assert.Equal(t, int64(5), beyond.TotalItems)
	assert.Equal(t, 3, beyond.TotalPages)

	clamped := listProducts(t, ts, "?page=0&pageSize=5000")
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, 200, clamped.PageSize)
}

func TestProducts_PagesDoNotOverlap(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	// identical names exercise the id tiebreaker
	for i := 0; i < 6; i++ {
		_, err := SeedProduct(ctx, testDB.Pool, Available("Same", "1.00", nil))
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		body := listProducts(t, ts, "?pageSize=2&page="+strconv.Itoa(page))
		for _, p := range body.Items {
			assert.False(t, seen[p.ID], "product %s returned twice", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 6)
}

func TestProducts_MalformedParameter(t *testing.T) {
	ts := freshServer(t)

	resp, err := ts.Request(http.MethodGet, "/api/v1/products?categoryId=nope", nil, map[string]string{
		pkghttp.CorrelationIDHeader: "it-corr-1",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "it-corr-1", resp.Header.Get(pkghttp.CorrelationIDHeader))

	var body pkghttp.ErrorResponse
	require.NoError(t, ParseJSONResponse(resp, &body))
	assert.Equal(t, pkghttp.CodeValidation, body.Error.Code)
	require.NotNil(t, body.Error.CorrelationID)
	assert.Equal(t, "it-corr-1", *body.Error.CorrelationID)
}

func TestProducts_ResponseShape(t *testing.T) {
	ts := freshServer(t)
	ctx := context.Background()

	cat, err := SeedCategory(ctx, testDB.Pool, "Audio")
	require.NoError(t, err)
	seed := Available("Headphones", "149.9900", &cat)
	seed.ImageURL = ptr("https://img.example.com/h.png")
	_, err = SeedProduct(ctx, testDB.Pool, seed)
	require.NoError(t, err)

	resp, err := ts.Request(http.MethodGet, "/api/v1/products", nil, nil)
	require.NoError(t, err)

	var raw struct {
		Items []map[string]json.RawMessage `json:"items"`
	}
	require.NoError(t, ParseJSONResponse(resp, &raw))
	require.Len(t, raw.Items, 1)

	item := raw.Items[0]
	assert.JSONEq(t, `{"amount":149.99,"currency":"EUR"}`, string(item["price"]))
	assert.JSONEq(t, `"https://img.example.com/h.png"`, string(item["imageUrl"]))
	assert.Equal(t, "null", string(item["descriptionSummary"]))
}
