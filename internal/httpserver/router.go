package httpserver

import (
	"context"
	"errors"
	"log"

	"storefront/internal/contentapi"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	otpsvc "storefront/internal/service/otp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartService owns the visitor's line items; every operation returns the
// resulting snapshot.
type CartService interface {
	AddItem(ctx context.Context, visitorID string, c cartsvc.Candidate) cartsvc.Snapshot
	RemoveItem(ctx context.Context, visitorID, id string) cartsvc.Snapshot
	UpdateQuantity(ctx context.Context, visitorID, id string, quantity int) cartsvc.Snapshot
	Toggle(ctx context.Context, visitorID string) cartsvc.Snapshot
	Snapshot(ctx context.Context, visitorID string) cartsvc.Snapshot
}

// SessionService caches the remote auth result per visitor.
type SessionService interface {
	Login(ctx context.Context, visitorID string, user domain.User, token string) domain.Session
	Logout(ctx context.Context, visitorID string) domain.Session
	Get(ctx context.Context, visitorID string) domain.Session
}

// CatalogService drives the per-visitor listing feeds.
type CatalogService interface {
	OpenShop(ctx context.Context, visitorID string, f contentapi.ShopFilter) (catalogsvc.Feed[domain.Product], error)
	MoreShop(ctx context.Context, visitorID string) (catalogsvc.Feed[domain.Product], bool)
	OpenCategory(ctx context.Context, visitorID, slug string) (catalogsvc.Feed[domain.Product], error)
	MoreCategory(ctx context.Context, visitorID, slug string) (catalogsvc.Feed[domain.Product], bool)
	OpenBlog(ctx context.Context, visitorID string) (catalogsvc.Feed[domain.Post], error)
	MoreBlog(ctx context.Context, visitorID string) (catalogsvc.Feed[domain.Post], bool)
	OpenBlogCategory(ctx context.Context, visitorID, slug string) (catalogsvc.Feed[domain.Post], error)
	MoreBlogCategory(ctx context.Context, visitorID, slug string) (catalogsvc.Feed[domain.Post], bool)
}

// ContentService is the pass-through surface of the remote content API.
type ContentService interface {
	SearchProducts(ctx context.Context, term string) ([]domain.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	PostBySlug(ctx context.Context, slug string) (*domain.Post, []domain.Comment, error)
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	CreateComment(ctx context.Context, in contentapi.CommentInput) error
	Technicians(ctx context.Context) ([]domain.Technician, error)
}

// CheckoutService places orders from the visitor's cart.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, visitorID, token string, in checkoutsvc.Input) (checkoutsvc.Confirmation, error)
}

// OTPService talks to the remote OTP provider.
type OTPService interface {
	Send(ctx context.Context, phone string) (string, error)
	Verify(ctx context.Context, phone, code string) (otpsvc.VerifyResult, error)
}

// Deps carries the wired services into the router.
type Deps struct {
	CartSvc     CartService
	SessionSvc  SessionService
	CatalogSvc  CatalogService
	ContentSvc  ContentService
	CheckoutSvc CheckoutService
	OTPSvc      OTPService
}

func (d Deps) validate() error {
	switch {
	case d.CartSvc == nil:
		return errors.New("cart service required")
	case d.SessionSvc == nil:
		return errors.New("session service required")
	case d.CatalogSvc == nil:
		return errors.New("catalog service required")
	case d.ContentSvc == nil:
		return errors.New("content service required")
	case d.CheckoutSvc == nil:
		return errors.New("checkout service required")
	case d.OTPSvc == nil:
		return errors.New("otp service required")
	}
	return nil
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api", visitorCookie())
	{
		api.GET("/shop", h.openShop)
		api.POST("/shop/more", h.moreShop)
		api.GET("/categories/:slug/products", h.openCategory)
		api.POST("/categories/:slug/products/more", h.moreCategory)
		api.GET("/blog", h.openBlog)
		api.POST("/blog/more", h.moreBlog)
		api.GET("/search", h.quickSearch)
		api.GET("/products/:slug", h.productBySlug)
		api.GET("/posts/:slug", h.postBySlug)
		api.GET("/menu", h.menu)
		api.GET("/technicians", h.technicians)
		api.POST("/comments", h.createComment)

		api.GET("/cart", h.cartSnapshot)
		api.POST("/cart/items", h.addCartItem)
		api.PATCH("/cart/items/:id", h.updateCartItem)
		api.DELETE("/cart/items/:id", h.removeCartItem)
		api.POST("/cart/toggle", h.toggleCart)
		api.POST("/checkout", h.placeOrder)

		api.POST("/auth/send-otp", h.sendOTP)
		api.POST("/auth/verify-otp", h.verifyOTP)
		api.POST("/auth/logout", h.logout)
		api.GET("/me", h.me)
		api.GET("/dashboard/technician", h.technicianDashboard)
	}

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
