package domain

// PageInfo is the cursor state the content API returns with every listing.
// A nil EndCursor means no further pages regardless of HasNextPage.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type Image struct {
	SourceURL string `json:"sourceUrl,omitempty"`
	AltText   string `json:"altText,omitempty"`
}

// Product is a catalog entry as rendered by the content API. Price is the
// backend-rendered string (may contain markup and localized digits);
// UnitPrice is the parsed integer amount, 0 when the price is unavailable.
type Product struct {
	ID               string `json:"id"`
	DatabaseID       int    `json:"databaseId,omitempty"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Description      string `json:"description,omitempty"`
	Price            string `json:"price,omitempty"`
	RegularPrice     string `json:"regularPrice,omitempty"`
	UnitPrice        int64  `json:"unitPrice"`
	StockStatus      string `json:"stockStatus,omitempty"`
	Image            Image  `json:"image"`
}

// Post is a blog entry.
type Post struct {
	ID         string `json:"id"`
	DatabaseID int    `json:"databaseId,omitempty"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt,omitempty"`
	Content    string `json:"content,omitempty"`
	Date       string `json:"date,omitempty"`
	Image      Image  `json:"image"`
}

// Comment is a published comment on a post or product.
type Comment struct {
	DatabaseID int    `json:"databaseId"`
	Author     string `json:"author"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
	Content    string `json:"content"`
	Date       string `json:"date,omitempty"`
}

// MenuItem is one entry of the primary navigation menu.
type MenuItem struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Path     string     `json:"path"`
	Children []MenuItem `json:"children,omitempty"`
}

// Technician is a partner listed in the service directory.
type Technician struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Status    string `json:"status,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Order is the confirmation returned after checkout.
type Order struct {
	DatabaseID  int    `json:"databaseId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}
