package model

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

// UpdateBlogRequest accepts a slug field for wire compatibility but the
// slug is never overwritten on update; it stays derived from the original
// title.
type UpdateBlogRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug,omitempty"`
	Content string `json:"content,omitempty"`
}
