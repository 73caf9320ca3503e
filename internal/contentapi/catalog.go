package contentapi

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/pagination"
)

type imageNode struct {
	SourceURL string `json:"sourceUrl"`
	AltText   string `json:"altText"`
}

type productNode struct {
	ID               string     `json:"id"`
	DatabaseID       int        `json:"databaseId"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"shortDescription"`
	Price            string     `json:"price"`
	RegularPrice     string     `json:"regularPrice"`
	StockStatus      string     `json:"stockStatus"`
	Image            *imageNode `json:"image"`
}

type productConnection struct {
	PageInfo *domain.PageInfo `json:"pageInfo"`
	Nodes    []productNode    `json:"nodes"`
}

type postNode struct {
	ID            string `json:"id"`
	DatabaseID    int    `json:"databaseId"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	Date          string `json:"date"`
	FeaturedImage *struct {
		Node imageNode `json:"node"`
	} `json:"featuredImage"`
	Comments *struct {
		Nodes []commentNode `json:"nodes"`
	} `json:"comments"`
}

type postConnection struct {
	PageInfo *domain.PageInfo `json:"pageInfo"`
	Nodes    []postNode       `json:"nodes"`
}

type commentNode struct {
	DatabaseID int    `json:"databaseId"`
	Content    string `json:"content"`
	Date       string `json:"date"`
	Author     struct {
		Node struct {
			Name   string `json:"name"`
			Avatar *struct {
				URL string `json:"url"`
			} `json:"avatar"`
		} `json:"node"`
	} `json:"author"`
}

// ShopFilter narrows the shop grid. Empty fields are passed through as null
// so the backend ignores them.
type ShopFilter struct {
	Category string
	Search   string
}

// ShopProducts loads one page of the shop grid. An empty cursor fetches the
// first page.
func (c *Client) ShopProducts(ctx context.Context, f ShopFilter, cursor string) (pagination.Page[domain.Product], error) {
	vars := map[string]interface{}{}
	if f.Category != "" {
		vars["category"] = f.Category
	}
	if f.Search != "" {
		vars["search"] = f.Search
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	var data struct {
		Products *productConnection `json:"products"`
	}
	if err := c.query(ctx, "", shopProductsQuery, vars, &data); err != nil {
		return pagination.Page[domain.Product]{}, err
	}
	return productPage(data.Products), nil
}

// CategoryProducts loads one page of a category grid by category slug.
func (c *Client) CategoryProducts(ctx context.Context, slug, cursor string) (pagination.Page[domain.Product], error) {
	vars := map[string]interface{}{"slug": slug}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	var data struct {
		ProductCategory *struct {
			Products *productConnection `json:"products"`
		} `json:"productCategory"`
	}
	if err := c.query(ctx, "", categoryProductsQuery, vars, &data); err != nil {
		return pagination.Page[domain.Product]{}, err
	}
	if data.ProductCategory == nil {
		return pagination.Page[domain.Product]{}, domain.ErrNotFound
	}
	return productPage(data.ProductCategory.Products), nil
}

// SearchProducts is the header quick-search: first six matches, no paging.
func (c *Client) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	var data struct {
		Products *productConnection `json:"products"`
	}
	err := c.query(ctx, "", searchProductsQuery, map[string]interface{}{"search": term}, &data)
	if err != nil {
		return nil, err
	}
	return productPage(data.Products).Items, nil
}

// ProductBySlug loads a single product page.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var data struct {
		Product *productNode `json:"product"`
	}
	if err := c.query(ctx, "", productBySlugQuery, map[string]interface{}{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, domain.ErrNotFound
	}
	p := toProduct(*data.Product)
	return &p, nil
}

// Posts loads one page of the blog index.
func (c *Client) Posts(ctx context.Context, cursor string) (pagination.Page[domain.Post], error) {
	vars := map[string]interface{}{}
	if cursor != "" {
		vars["cursor"] = cursor
	}
	var data struct {
		Posts *postConnection `json:"posts"`
	}
	if err := c.query(ctx, "", postsQuery, vars, &data); err != nil {
		return pagination.Page[domain.Post]{}, err
	}
	return postPage(data.Posts), nil
}

// CategoryPosts loads one page of a blog category archive.
func (c *Client) CategoryPosts(ctx context.Context, slug, cursor string) (pagination.Page[domain.Post], error) {
	vars := map[string]interface{}{"slug": slug}
	if cursor != "" {
		vars["cursor"] = cursor
	}
	var data struct {
		Posts *postConnection `json:"posts"`
	}
	if err := c.query(ctx, "", categoryPostsQuery, vars, &data); err != nil {
		return pagination.Page[domain.Post]{}, err
	}
	return postPage(data.Posts), nil
}

// PostBySlug loads a single post plus its published comments.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*domain.Post, []domain.Comment, error) {
	var data struct {
		Post *postNode `json:"post"`
	}
	if err := c.query(ctx, "", postBySlugQuery, map[string]interface{}{"slug": slug}, &data); err != nil {
		return nil, nil, err
	}
	if data.Post == nil {
		return nil, nil, domain.ErrNotFound
	}

	post := toPost(*data.Post)
	var comments []domain.Comment
	if data.Post.Comments != nil {
		for _, n := range data.Post.Comments.Nodes {
			comments = append(comments, toComment(n))
		}
	}
	return &post, comments, nil
}

// Menu loads the primary navigation tree. Only top-level items carry their
// parentId-filtered children; the backend returns child items inline.
func (c *Client) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	type menuItemNode struct {
		ID         string  `json:"id"`
		Label      string  `json:"label"`
		Path       string  `json:"path"`
		ParentID   *string `json:"parentId"`
		ChildItems *struct {
			Nodes []menuItemNode `json:"nodes"`
		} `json:"childItems"`
	}
	var data struct {
		MenuItems *struct {
			Nodes []menuItemNode `json:"nodes"`
		} `json:"menuItems"`
	}
	if err := c.query(ctx, "", menuQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.MenuItems == nil {
		return nil, nil
	}

	var toMenuItem func(n menuItemNode) domain.MenuItem
	toMenuItem = func(n menuItemNode) domain.MenuItem {
		item := domain.MenuItem{ID: n.ID, Label: n.Label, Path: n.Path}
		if n.ChildItems != nil {
			for _, child := range n.ChildItems.Nodes {
				item.Children = append(item.Children, toMenuItem(child))
			}
		}
		return item
	}

	var items []domain.MenuItem
	for _, n := range data.MenuItems.Nodes {
		if n.ParentID != nil && *n.ParentID != "" {
			continue
		}
		items = append(items, toMenuItem(n))
	}
	return items, nil
}

// CommentInput is a comment/review submission. Not retried on failure.
type CommentInput struct {
	Author    string
	Email     string
	Content   string
	CommentOn int
}

// CreateComment submits a comment for moderation.
func (c *Client) CreateComment(ctx context.Context, in CommentInput) error {
	var data struct {
		CreateComment *struct {
			Success bool `json:"success"`
		} `json:"createComment"`
	}
	err := c.query(ctx, "", createCommentMutation, map[string]interface{}{
		"author":      in.Author,
		"authorEmail": in.Email,
		"content":     in.Content,
		"commentOn":   in.CommentOn,
	}, &data)
	if err != nil {
		return err
	}
	if data.CreateComment == nil || !data.CreateComment.Success {
		return errors.New("content api: comment was not accepted")
	}
	return nil
}

// OrderAddress mirrors the backend's billing/shipping shape.
type OrderAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country"`
	State     string `json:"state"`
}

type OrderLineItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type OrderInput struct {
	PaymentMethod string          `json:"paymentMethod"`
	Billing       OrderAddress    `json:"billing"`
	Shipping      OrderAddress    `json:"shipping"`
	LineItems     []OrderLineItem `json:"lineItems"`
}

// CreateOrder places an order and returns the backend's confirmation.
func (c *Client) CreateOrder(ctx context.Context, token string, in OrderInput) (domain.Order, error) {
	var data struct {
		CreateOrder *struct {
			Order *domain.Order `json:"order"`
		} `json:"createOrder"`
	}
	err := c.query(ctx, token, createOrderMutation, map[string]interface{}{"input": in}, &data)
	if err != nil {
		return domain.Order{}, err
	}
	if data.CreateOrder == nil || data.CreateOrder.Order == nil {
		return domain.Order{}, errors.New("content api: order was not created")
	}
	return *data.CreateOrder.Order, nil
}

// Technicians lists partner users from the REST users route.
func (c *Client) Technicians(ctx context.Context) ([]domain.Technician, error) {
	type userNode struct {
		ID        int               `json:"id"`
		Name      string            `json:"name"`
		AvatarURL map[string]string `json:"avatar_urls"`
		Meta      *struct {
			City      string `json:"city"`
			Specialty string `json:"specialty"`
			Status    string `json:"status"`
		} `json:"butan_meta"`
	}
	var users []userNode
	if err := c.getJSON(ctx, "/wp-json/wp/v2/users?roles=technician", &users); err != nil {
		return nil, fmt.Errorf("technicians: %w", err)
	}

	techs := make([]domain.Technician, 0, len(users))
	for _, u := range users {
		t := domain.Technician{ID: u.ID, Name: u.Name, Status: "available"}
		if u.AvatarURL != nil {
			t.AvatarURL = u.AvatarURL["96"]
		}
		if u.Meta != nil {
			t.City = u.Meta.City
			t.Specialty = u.Meta.Specialty
			if u.Meta.Status != "" {
				t.Status = u.Meta.Status
			}
		}
		techs = append(techs, t)
	}
	return techs, nil
}

// productPage defaults a missing connection or pageInfo to the terminal
// cursor state instead of failing.
func productPage(conn *productConnection) pagination.Page[domain.Product] {
	var page pagination.Page[domain.Product]
	if conn == nil {
		return page
	}
	for _, n := range conn.Nodes {
		page.Items = append(page.Items, toProduct(n))
	}
	if conn.PageInfo != nil {
		page.PageInfo = *conn.PageInfo
	}
	return page
}

func postPage(conn *postConnection) pagination.Page[domain.Post] {
	var page pagination.Page[domain.Post]
	if conn == nil {
		return page
	}
	for _, n := range conn.Nodes {
		page.Items = append(page.Items, toPost(n))
	}
	if conn.PageInfo != nil {
		page.PageInfo = *conn.PageInfo
	}
	return page
}

func toProduct(n productNode) domain.Product {
	p := domain.Product{
		ID:               n.ID,
		DatabaseID:       n.DatabaseID,
		Name:             n.Name,
		Slug:             n.Slug,
		Description:      n.Description,
		ShortDescription: n.ShortDescription,
		Price:            n.Price,
		RegularPrice:     n.RegularPrice,
		UnitPrice:        ParsePrice(n.Price),
		StockStatus:      n.StockStatus,
	}
	if n.Image != nil {
		p.Image = domain.Image{SourceURL: n.Image.SourceURL, AltText: n.Image.AltText}
	}
	return p
}

func toPost(n postNode) domain.Post {
	p := domain.Post{
		ID:         n.ID,
		DatabaseID: n.DatabaseID,
		Title:      n.Title,
		Slug:       n.Slug,
		Excerpt:    n.Excerpt,
		Content:    n.Content,
		Date:       n.Date,
	}
	if n.FeaturedImage != nil {
		p.Image = domain.Image{SourceURL: n.FeaturedImage.Node.SourceURL, AltText: n.FeaturedImage.Node.AltText}
	}
	return p
}

func toComment(n commentNode) domain.Comment {
	c := domain.Comment{
		DatabaseID: n.DatabaseID,
		Author:     n.Author.Node.Name,
		Content:    n.Content,
		Date:       n.Date,
	}
	if n.Author.Node.Avatar != nil {
		c.AvatarURL = n.Author.Node.Avatar.URL
	}
	return c
}
