package domain

type GalleryImage struct {
	ID           int64  `json:"id"`
	Title        string `json:"title,omitempty"`
	ImageName    string `json:"image_name"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}
