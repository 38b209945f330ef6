package listing

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
	"github.com/Aadil-Raja/ecommerce-knives/internal/domain"
)

// Mode selects one of the two pagination strategies. A view uses exactly one
// of them, never both.
type Mode int

const (
	// ModeReplace shows exactly one page at a time; a numbered control
	// swaps the visible list.
	ModeReplace Mode = iota
	// ModeAppend concatenates each fetched page onto the list ("load
	// more").
	ModeAppend
)

// Fetcher is the slice of the backend client the flow needs.
type Fetcher interface {
	GetCategoryProducts(ctx context.Context, slug string, page, pageSize int) (*backend.CategoryPage, error)
	GetProducts(ctx context.Context, page, pageSize int) (*backend.ProductPage, error)
}

// State is what a view renders: the category heading, the visible products
// and the pagination envelope. Ready distinguishes "still loading" from "a
// fetch settled, render what is here" - a failed fetch still flips Ready so
// the view shows an empty state instead of spinning forever.
type State struct {
	Category   domain.Category   `json:"category"`
	Products   []domain.Product  `json:"products"`
	Pagination domain.Pagination `json:"pagination"`
	Ready      bool              `json:"ready"`
}

// ImageURLer resolves stored image paths for preloading.
type ImageURLer interface {
	ImageURL(path string) string
}

// Flow runs the fetch-and-render cycle for one listing view. Fetch errors
// are logged and absorbed; callers always get a renderable State back.
// Responses of superseded fetches are discarded so a slow page 1 can never
// overwrite a fresher page 2 (each fetch carries a sequence tag).
type Flow struct {
	fetcher   Fetcher
	mode      Mode
	pageSize  int
	preloader *Preloader
	images    ImageURLer
	log       logrus.FieldLogger

	mu    sync.Mutex
	state State
	slug  string
	seq   atomic.Uint64
	sfg   singleflight.Group
}

// NewFlow builds a flow. preloader and images may be nil to skip the
// preload step.
func NewFlow(fetcher Fetcher, mode Mode, pageSize int, preloader *Preloader, images ImageURLer, log logrus.FieldLogger) *Flow {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Flow{
		fetcher:   fetcher,
		mode:      mode,
		pageSize:  pageSize,
		preloader: preloader,
		images:    images,
		log:       log,
		state:     State{Products: []domain.Product{}},
	}
}

// State returns the current view state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LoadPage fetches one listing page for the category slug (empty slug means
// the full catalog) and folds it into the view state per the flow's mode.
// Navigating to a different slug resets the state to loading/empty first so
// stale products are never shown under the new heading.
func (f *Flow) LoadPage(ctx context.Context, slug string, page int) State {
	if page < 1 {
		page = 1
	}

	f.mu.Lock()
	if slug != f.slug {
		f.slug = slug
		f.state = State{Products: []domain.Product{}}
	}
	seq := f.seq.Add(1)
	f.mu.Unlock()

	result, err := f.fetch(ctx, slug, page)
	if err != nil {
		f.log.WithError(err).WithFields(logrus.Fields{
			"category": slug,
			"page":     page,
		}).Error("failed to load listing page")
		return f.markReady(seq)
	}

	if f.preloader != nil && f.images != nil {
		urls := make([]string, 0, len(result.Products))
		for _, p := range result.Products {
			if u := f.images.ImageURL(p.ImageName); u != "" {
				urls = append(urls, u)
			}
		}
		if failed := f.preloader.Warm(ctx, urls); failed > 0 {
			f.log.WithField("failed", failed).Debug("some thumbnails did not preload")
		}
	}

	return f.apply(seq, slug, result)
}

// fetch goes through singleflight so concurrent loads of the same page share
// one request.
func (f *Flow) fetch(ctx context.Context, slug string, page int) (*backend.CategoryPage, error) {
	key := fmt.Sprintf("%s:%d", slug, page)
	v, err, _ := f.sfg.Do(key, func() (interface{}, error) {
		if slug == "" {
			catalog, err := f.fetcher.GetProducts(ctx, page, f.pageSize)
			if err != nil {
				return nil, err
			}
			return &backend.CategoryPage{
				Products:   catalog.Products,
				Pagination: catalog.Pagination,
			}, nil
		}
		return f.fetcher.GetCategoryProducts(ctx, slug, page, f.pageSize)
	})
	if err != nil {
		return nil, err
	}
	return v.(*backend.CategoryPage), nil
}

// markReady flips Ready without touching the data, so a failed fetch renders
// as an empty or unchanged view rather than an endless spinner.
func (f *Flow) markReady(seq uint64) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq.Load() == seq {
		f.state.Ready = true
	}
	return f.state
}

func (f *Flow) apply(seq uint64, slug string, result *backend.CategoryPage) State {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A newer fetch was issued while this one was in flight; its response
	// owns the state now.
	if f.seq.Load() != seq || f.slug != slug {
		return f.state
	}

	f.state.Category = result.Category
	f.state.Pagination = result.Pagination
	f.state.Ready = true

	if f.mode == ModeAppend {
		combined := make([]domain.Product, 0, len(f.state.Products)+len(result.Products))
		combined = append(combined, f.state.Products...)
		combined = append(combined, result.Products...)
		f.state.Products = combined
	} else {
		f.state.Products = result.Products
	}
	return f.state
}
