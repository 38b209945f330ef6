package listing

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
)

type mockFetcher struct {
	m     sync.Mutex
	pages map[string]*backend.CategoryPage // keyed "slug:page"
	err   error
	calls int
	// gate, when set, blocks a fetch for the given key until released;
	// entered is closed once the blocked fetch has started.
	gate    map[string]chan struct{}
	entered map[string]chan struct{}
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		pages:   map[string]*backend.CategoryPage{},
		gate:    map[string]chan struct{}{},
		entered: map[string]chan struct{}{},
	}
}

func (m *mockFetcher) setPage(slug string, page int, result *backend.CategoryPage) {
	m.m.Lock()
	defer m.m.Unlock()
	m.pages[fmt.Sprintf("%s:%d", slug, page)] = result
}

func (m *mockFetcher) GetCategoryProducts(_ context.Context, slug string, page, _ int) (*backend.CategoryPage, error) {
	key := fmt.Sprintf("%s:%d", slug, page)

	m.m.Lock()
	gate := m.gate[key]
	entered := m.entered[key]
	delete(m.entered, key)
	m.m.Unlock()
	if entered != nil {
		close(entered)
	}
	if gate != nil {
		<-gate
	}

	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	result, ok := m.pages[key]
	if !ok {
		return nil, fmt.Errorf("no page %s", key)
	}
	return result, nil
}

func (m *mockFetcher) GetProducts(_ context.Context, page, _ int) (*backend.ProductPage, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	result, ok := m.pages[fmt.Sprintf(":%d", page)]
	if !ok {
		return nil, fmt.Errorf("no catalog page %d", page)
	}
	return &backend.ProductPage{Products: result.Products, Pagination: result.Pagination}, nil
}

func knives(ids ...int64) []domain.Product {
	products := make([]domain.Product, len(ids))
	for i, id := range ids {
		products[i] = domain.Product{ID: id, Name: fmt.Sprintf("Knife %d", id), Price: 100}
	}
	return products
}

func categoryPage(page int, products []domain.Product) *backend.CategoryPage {
	return &backend.CategoryPage{
		Category:   domain.Category{ID: 1, Name: "Chef Knives", Slug: "chef-knives"},
		Products:   products,
		Pagination: domain.NewPagination(page, 10, 25),
	}
}

func TestFlow_ReplaceMode(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.setPage("chef-knives", 1, categoryPage(1, knives(1, 2)))
	fetcher.setPage("chef-knives", 2, categoryPage(2, knives(3, 4)))

	sut := NewFlow(fetcher, ModeReplace, 10, nil, nil, nil)
	ctx := context.Background()

	state := sut.LoadPage(ctx, "chef-knives", 1)
	require.True(t, state.Ready)
	assert.Equal(t, "Chef Knives", state.Category.Name)
	assert.Equal(t, []int64{1, 2}, productIDs(state.Products))
	assert.True(t, state.Pagination.HasMore)

	// Page 2 replaces, never accumulates.
	state = sut.LoadPage(ctx, "chef-knives", 2)
	assert.Equal(t, []int64{3, 4}, productIDs(state.Products))
	assert.Equal(t, 2, state.Pagination.Page)
}

func TestFlow_AppendMode(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.setPage("chef-knives", 1, categoryPage(1, knives(1, 2)))
	fetcher.setPage("chef-knives", 2, categoryPage(2, knives(3, 4)))

	sut := NewFlow(fetcher, ModeAppend, 10, nil, nil, nil)
	ctx := context.Background()

	sut.LoadPage(ctx, "chef-knives", 1)
	state := sut.LoadPage(ctx, "chef-knives", 2)
	assert.Equal(t, []int64{1, 2, 3, 4}, productIDs(state.Products))
	assert.Equal(t, 2, state.Pagination.Page)
}

func TestFlow_FetchErrorStillMarksReady(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.err = fmt.Errorf("backend down")

	sut := NewFlow(fetcher, ModeReplace, 10, nil, nil, nil)
	state := sut.LoadPage(context.Background(), "chef-knives", 1)

	// The error is absorbed: the view gets an empty-but-ready state.
	assert.True(t, state.Ready)
	assert.Empty(t, state.Products)
}

func TestFlow_CategoryChangeResetsState(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.setPage("chef-knives", 1, categoryPage(1, knives(1, 2)))

	sut := NewFlow(fetcher, ModeAppend, 10, nil, nil, nil)
	ctx := context.Background()
	sut.LoadPage(ctx, "chef-knives", 1)

	// The new category's fetch fails, so the state stays reset: no
	// products from the old category may leak under the new heading.
	fetcher.err = fmt.Errorf("backend down")
	state := sut.LoadPage(ctx, "hunting-knives", 1)
	assert.True(t, state.Ready)
	assert.Empty(t, state.Products)
	assert.Empty(t, state.Category.Name)
}

func TestFlow_StaleResponseDiscarded(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.setPage("chef-knives", 1, categoryPage(1, knives(1, 2)))
	fetcher.setPage("chef-knives", 2, categoryPage(2, knives(3, 4)))

	// Hold the page-1 fetch until page 2 has completed.
	gate := make(chan struct{})
	entered := make(chan struct{})
	fetcher.gate["chef-knives:1"] = gate
	fetcher.entered["chef-knives:1"] = entered

	sut := NewFlow(fetcher, ModeReplace, 10, nil, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	var slowState State
	go func() {
		defer wg.Done()
		slowState = sut.LoadPage(ctx, "chef-knives", 1)
	}()

	<-entered
	state := sut.LoadPage(ctx, "chef-knives", 2)
	assert.Equal(t, []int64{3, 4}, productIDs(state.Products))

	close(gate)
	wg.Wait()

	// The slow page-1 response arrived after page 2 was issued; it must
	// not overwrite the fresher state.
	assert.Equal(t, []int64{3, 4}, productIDs(slowState.Products))
	assert.Equal(t, []int64{3, 4}, productIDs(sut.State().Products))
	assert.Equal(t, 2, sut.State().Pagination.Page)
}

func TestFlow_FullCatalogWhenSlugEmpty(t *testing.T) {
	fetcher := newMockFetcher()
	fetcher.setPage("", 1, categoryPage(1, knives(5, 6)))

	sut := NewFlow(fetcher, ModeReplace, 10, nil, nil, nil)
	state := sut.LoadPage(context.Background(), "", 1)

	assert.True(t, state.Ready)
	assert.Equal(t, []int64{5, 6}, productIDs(state.Products))
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
