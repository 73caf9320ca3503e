package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/contentapi"
	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *handlers) openShop(c *gin.Context) {
	feed, err := h.deps.CatalogSvc.OpenShop(c.Request.Context(), visitorID(c), contentapi.ShopFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		h.remoteFailure(c, "could not load products", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *handlers) moreShop(c *gin.Context) {
	feed, ok := h.deps.CatalogSvc.MoreShop(c.Request.Context(), visitorID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "no open shop listing"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *handlers) openCategory(c *gin.Context) {
	feed, err := h.deps.CatalogSvc.OpenCategory(c.Request.Context(), visitorID(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
			return
		}
		h.remoteFailure(c, "could not load category", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *handlers) moreCategory(c *gin.Context) {
	feed, ok := h.deps.CatalogSvc.MoreCategory(c.Request.Context(), visitorID(c), c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "no open category listing"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *handlers) openBlog(c *gin.Context) {
	ctx := c.Request.Context()
	visitor := visitorID(c)

	if slug := c.Query("category"); slug != "" {
		feed, err := h.deps.CatalogSvc.OpenBlogCategory(ctx, visitor, slug)
		if err != nil {
			h.remoteFailure(c, "could not load posts", err)
			return
		}
		c.JSON(http.StatusOK, feed)
		return
	}

	feed, err := h.deps.CatalogSvc.OpenBlog(ctx, visitor)
	if err != nil {
		h.remoteFailure(c, "could not load posts", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *handlers) moreBlog(c *gin.Context) {
	ctx := c.Request.Context()
	visitor := visitorID(c)

	var (
		feed interface{}
		ok   bool
	)
	if slug := c.Query("category"); slug != "" {
		feed, ok = h.deps.CatalogSvc.MoreBlogCategory(ctx, visitor, slug)
	} else {
		feed, ok = h.deps.CatalogSvc.MoreBlog(ctx, visitor)
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "no open blog listing"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *handlers) quickSearch(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"products": []domain.Product{}})
		return
	}
	products, err := h.deps.ContentSvc.SearchProducts(c.Request.Context(), term)
	if err != nil {
		h.remoteFailure(c, "search is unavailable", err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) productBySlug(c *gin.Context) {
	product, err := h.deps.ContentSvc.ProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		h.remoteFailure(c, "could not load product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *handlers) postBySlug(c *gin.Context) {
	post, comments, err := h.deps.ContentSvc.PostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
			return
		}
		h.remoteFailure(c, "could not load post", err)
		return
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "comments": comments})
}

func (h *handlers) menu(c *gin.Context) {
	items, err := h.deps.ContentSvc.Menu(c.Request.Context())
	if err != nil {
		h.remoteFailure(c, "could not load menu", err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handlers) technicians(c *gin.Context) {
	techs, err := h.deps.ContentSvc.Technicians(c.Request.Context())
	if err != nil {
		h.remoteFailure(c, "could not load technicians", err)
		return
	}
	if techs == nil {
		techs = []domain.Technician{}
	}
	c.JSON(http.StatusOK, gin.H{"technicians": techs})
}

type createCommentRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Content string `json:"content" binding:"required"`
	PostID  int    `json:"postId" binding:"required"`
}

func (h *handlers) createComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email, content, and postId are required"})
		return
	}

	err := h.deps.ContentSvc.CreateComment(c.Request.Context(), contentapi.CommentInput{
		Author:    req.Name,
		Email:     req.Email,
		Content:   req.Content,
		CommentOn: req.PostID,
	})
	if err != nil {
		// Comments are not retried; the visitor resubmits if they care.
		h.remoteFailure(c, "could not submit comment", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "comment submitted for review"})
}

// remoteFailure maps any backend failure to an inline message; nothing here
// is fatal to the page.
func (h *handlers) remoteFailure(c *gin.Context, message string, err error) {
	h.logger.Printf("remote call failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"message": message})
}
