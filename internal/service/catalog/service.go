package catalog

import (
	"context"
	"io"
	"log"
	"sync"

	"storefront/internal/contentapi"
	"storefront/internal/domain"
	"storefront/internal/pagination"
)

type contentAPI interface {
	ShopProducts(ctx context.Context, f contentapi.ShopFilter, cursor string) (pagination.Page[domain.Product], error)
	CategoryProducts(ctx context.Context, slug, cursor string) (pagination.Page[domain.Product], error)
	Posts(ctx context.Context, cursor string) (pagination.Page[domain.Post], error)
	CategoryPosts(ctx context.Context, slug, cursor string) (pagination.Page[domain.Post], error)
}

// Service keeps one fetch-merge controller per visitor and listing surface.
// Opening a listing fetches the first page and seeds the controller;
// load-more drives it. The merge and guard logic is identical across all
// surfaces, only the bound remote query differs.
type Service struct {
	api    contentAPI
	logger *log.Logger

	products feedSet[domain.Product]
	posts    feedSet[domain.Post]
}

// Feed is a listing snapshot handed to the HTTP layer.
type Feed[T any] struct {
	Items    []T             `json:"items"`
	PageInfo domain.PageInfo `json:"pageInfo"`
}

func New(api contentAPI, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		api:      api,
		logger:   logger,
		products: newFeedSet[domain.Product](),
		posts:    newFeedSet[domain.Post](),
	}
}

// OpenShop starts (or restarts) the visitor's shop grid with the given
// filter and returns the first page.
func (s *Service) OpenShop(ctx context.Context, visitorID string, f contentapi.ShopFilter) (Feed[domain.Product], error) {
	fetch := func(ctx context.Context, cursor string) (pagination.Page[domain.Product], error) {
		return s.api.ShopProducts(ctx, f, cursor)
	}
	return s.products.open(ctx, visitorID+"|shop", fetch, s.logger)
}

// MoreShop appends the next shop page. ok is false when the visitor has no
// open shop feed.
func (s *Service) MoreShop(ctx context.Context, visitorID string) (Feed[domain.Product], bool) {
	return s.products.more(ctx, visitorID+"|shop")
}

// OpenCategory starts the visitor's grid for one product category.
func (s *Service) OpenCategory(ctx context.Context, visitorID, slug string) (Feed[domain.Product], error) {
	fetch := func(ctx context.Context, cursor string) (pagination.Page[domain.Product], error) {
		return s.api.CategoryProducts(ctx, slug, cursor)
	}
	return s.products.open(ctx, visitorID+"|category:"+slug, fetch, s.logger)
}

func (s *Service) MoreCategory(ctx context.Context, visitorID, slug string) (Feed[domain.Product], bool) {
	return s.products.more(ctx, visitorID+"|category:"+slug)
}

// OpenBlog starts the visitor's blog index feed.
func (s *Service) OpenBlog(ctx context.Context, visitorID string) (Feed[domain.Post], error) {
	return s.posts.open(ctx, visitorID+"|blog", s.api.Posts, s.logger)
}

func (s *Service) MoreBlog(ctx context.Context, visitorID string) (Feed[domain.Post], bool) {
	return s.posts.more(ctx, visitorID+"|blog")
}

// OpenBlogCategory starts the visitor's feed for one blog category archive.
func (s *Service) OpenBlogCategory(ctx context.Context, visitorID, slug string) (Feed[domain.Post], error) {
	fetch := func(ctx context.Context, cursor string) (pagination.Page[domain.Post], error) {
		return s.api.CategoryPosts(ctx, slug, cursor)
	}
	return s.posts.open(ctx, visitorID+"|blog-category:"+slug, fetch, s.logger)
}

func (s *Service) MoreBlogCategory(ctx context.Context, visitorID, slug string) (Feed[domain.Post], bool) {
	return s.posts.more(ctx, visitorID+"|blog-category:"+slug)
}

type feedSet[T any] struct {
	mu    *sync.Mutex
	feeds map[string]*pagination.Controller[T]
}

func newFeedSet[T any]() feedSet[T] {
	return feedSet[T]{
		mu:    &sync.Mutex{},
		feeds: make(map[string]*pagination.Controller[T]),
	}
}

func (fs feedSet[T]) open(ctx context.Context, key string, fetch pagination.FetchFunc[T], logger *log.Logger) (Feed[T], error) {
	first, err := fetch(ctx, "")
	if err != nil {
		return Feed[T]{}, err
	}
	c := pagination.New(first.Items, first.PageInfo, fetch, logger)

	fs.mu.Lock()
	fs.feeds[key] = c
	fs.mu.Unlock()

	return Feed[T]{Items: c.Items(), PageInfo: c.PageInfo()}, nil
}

func (fs feedSet[T]) more(ctx context.Context, key string) (Feed[T], bool) {
	fs.mu.Lock()
	c, ok := fs.feeds[key]
	fs.mu.Unlock()
	if !ok {
		return Feed[T]{}, false
	}

	// A false result means terminal page, in-flight fetch, or a logged
	// failure; in every case the current state is what the caller renders.
	c.LoadMore(ctx)
	return Feed[T]{Items: c.Items(), PageInfo: c.PageInfo()}, true
}
