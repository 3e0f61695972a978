package googlebooks

// volumesResponse is the wire shape of the volumes list endpoint.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
	ImageLinks          imageLinks           `json:"imageLinks"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
}

type imageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// Result is a normalized catalog match ready to prefill a book draft.
type Result struct {
	VolumeID      string `json:"volume_id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	CoverURL      string `json:"cover_url,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Pages         int    `json:"pages,omitempty"`

	Genres   []string `json:"genres,omitempty"`
	Language string   `json:"language,omitempty"`
	ISBN     string   `json:"isbn,omitempty"`
}
