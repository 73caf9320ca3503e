package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/contentapi"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	otpsvc "storefront/internal/service/otp"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCartService struct {
	snapshot  cartsvc.Snapshot
	added     []cartsvc.Candidate
	toggles   int
	updatedID string
	updatedQ  int
	removedID string
}

func (s *stubCartService) AddItem(_ context.Context, _ string, c cartsvc.Candidate) cartsvc.Snapshot {
	s.added = append(s.added, c)
	return s.snapshot
}

func (s *stubCartService) RemoveItem(_ context.Context, _ string, id string) cartsvc.Snapshot {
	s.removedID = id
	return s.snapshot
}

func (s *stubCartService) UpdateQuantity(_ context.Context, _ string, id string, quantity int) cartsvc.Snapshot {
	s.updatedID = id
	s.updatedQ = quantity
	return s.snapshot
}

func (s *stubCartService) Toggle(_ context.Context, _ string) cartsvc.Snapshot {
	s.toggles++
	return s.snapshot
}

func (s *stubCartService) Snapshot(_ context.Context, _ string) cartsvc.Snapshot {
	return s.snapshot
}

type stubSessionService struct {
	session    domain.Session
	loggedIn   *domain.User
	loginToken string
	loggedOut  bool
}

func (s *stubSessionService) Login(_ context.Context, _ string, user domain.User, token string) domain.Session {
	s.loggedIn = &user
	s.loginToken = token
	return domain.Session{User: &user, Token: token, IsLoggedIn: true}
}

func (s *stubSessionService) Logout(_ context.Context, _ string) domain.Session {
	s.loggedOut = true
	return domain.Session{}
}

func (s *stubSessionService) Get(_ context.Context, _ string) domain.Session {
	return s.session
}

type stubCatalogService struct {
	products catalogsvc.Feed[domain.Product]
	posts    catalogsvc.Feed[domain.Post]
	err      error
	more     bool
}

func (s *stubCatalogService) OpenShop(_ context.Context, _ string, _ contentapi.ShopFilter) (catalogsvc.Feed[domain.Product], error) {
	return s.products, s.err
}

func (s *stubCatalogService) MoreShop(_ context.Context, _ string) (catalogsvc.Feed[domain.Product], bool) {
	return s.products, s.more
}

func (s *stubCatalogService) OpenCategory(_ context.Context, _, _ string) (catalogsvc.Feed[domain.Product], error) {
	return s.products, s.err
}

func (s *stubCatalogService) MoreCategory(_ context.Context, _, _ string) (catalogsvc.Feed[domain.Product], bool) {
	return s.products, s.more
}

func (s *stubCatalogService) OpenBlog(_ context.Context, _ string) (catalogsvc.Feed[domain.Post], error) {
	return s.posts, s.err
}

func (s *stubCatalogService) MoreBlog(_ context.Context, _ string) (catalogsvc.Feed[domain.Post], bool) {
	return s.posts, s.more
}

func (s *stubCatalogService) OpenBlogCategory(_ context.Context, _, _ string) (catalogsvc.Feed[domain.Post], error) {
	return s.posts, s.err
}

func (s *stubCatalogService) MoreBlogCategory(_ context.Context, _, _ string) (catalogsvc.Feed[domain.Post], bool) {
	return s.posts, s.more
}

type stubContentService struct {
	products []domain.Product
	product  *domain.Product
	post     *domain.Post
	comments []domain.Comment
	menu     []domain.MenuItem
	techs    []domain.Technician
	comment  *contentapi.CommentInput
	err      error
}

func (s *stubContentService) SearchProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubContentService) ProductBySlug(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubContentService) PostBySlug(_ context.Context, _ string) (*domain.Post, []domain.Comment, error) {
	return s.post, s.comments, s.err
}

func (s *stubContentService) Menu(_ context.Context) ([]domain.MenuItem, error) {
	return s.menu, s.err
}

func (s *stubContentService) CreateComment(_ context.Context, in contentapi.CommentInput) error {
	s.comment = &in
	return s.err
}

func (s *stubContentService) Technicians(_ context.Context) ([]domain.Technician, error) {
	return s.techs, s.err
}

type stubCheckoutService struct {
	confirmation checkoutsvc.Confirmation
	err          error
	token        string
	input        *checkoutsvc.Input
}

func (s *stubCheckoutService) PlaceOrder(_ context.Context, _, token string, in checkoutsvc.Input) (checkoutsvc.Confirmation, error) {
	s.token = token
	s.input = &in
	return s.confirmation, s.err
}

type stubOTPService struct {
	sendMsg   string
	sendErr   error
	result    otpsvc.VerifyResult
	verifyErr error
}

func (s *stubOTPService) Send(_ context.Context, _ string) (string, error) {
	return s.sendMsg, s.sendErr
}

func (s *stubOTPService) Verify(_ context.Context, _, _ string) (otpsvc.VerifyResult, error) {
	return s.result, s.verifyErr
}

type testDeps struct {
	cart     *stubCartService
	session  *stubSessionService
	catalog  *stubCatalogService
	content  *stubContentService
	checkout *stubCheckoutService
	otp      *stubOTPService
}

func newTestDeps() *testDeps {
	return &testDeps{
		cart:     &stubCartService{},
		session:  &stubSessionService{},
		catalog:  &stubCatalogService{},
		content:  &stubContentService{},
		checkout: &stubCheckoutService{},
		otp:      &stubOTPService{},
	}
}

func (d *testDeps) deps() Deps {
	return Deps{
		CartSvc:     d.cart,
		SessionSvc:  d.session,
		CatalogSvc:  d.catalog,
		ContentSvc:  d.content,
		CheckoutSvc: d.checkout,
		OTPSvc:      d.otp,
	}
}

func newTestRouter(t *testing.T, d *testDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, d.deps(), nil)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestBuildRouter_MissingDep(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := newTestDeps()
	deps := d.deps()
	deps.CartSvc = nil
	if _, err := buildRouter(logDiscard(), nil, deps, nil); err == nil {
		t.Fatalf("expected error for missing cart service")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, newTestDeps())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz_MemoryMode(t *testing.T) {
	router := newTestRouter(t, newTestDeps())

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"persistence":"memory"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestVisitorCookie_Issued(t *testing.T) {
	router := newTestRouter(t, newTestDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == visitorCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("expected %s cookie to be set", visitorCookieName)
	}
	if cookie.Value == "" {
		t.Fatalf("expected cookie value")
	}
}

func TestVisitorCookie_ExistingKept(t *testing.T) {
	router := newTestRouter(t, newTestDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookieName, Value: "0b146c96-6a39-4b8a-a9a8-4bfafc396cd7"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == visitorCookieName {
			t.Fatalf("expected no new cookie, got %s", c.Value)
		}
	}
}

func TestVisitorCookie_InvalidReplaced(t *testing.T) {
	router := newTestRouter(t, newTestDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: visitorCookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	var replaced bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == visitorCookieName && c.Value != "not-a-uuid" && c.Value != "" {
			replaced = true
		}
	}
	if !replaced {
		t.Fatalf("expected invalid cookie to be replaced")
	}
}
