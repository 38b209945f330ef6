package domain

type Banner struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	ImageName    string `json:"image_name"`
	LinkURL      string `json:"link_url,omitempty"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}
