package catalog

// Artwork is a single catalog record. Records are immutable once fetched;
// the integer ID is the identity used for selection de-duplication.
type Artwork struct {
	// ID is the unique artwork identifier assigned by the catalog.
	ID int `json:"id"`

	// Title of the artwork.
	Title string `json:"title"`

	// PlaceOfOrigin is where the artwork was created (may be empty).
	PlaceOfOrigin string `json:"place_of_origin"`

	// ArtistDisplay is the free-text artist attribution (may be empty).
	ArtistDisplay string `json:"artist_display"`

	// Inscriptions found on the artwork (may be empty).
	Inscriptions string `json:"inscriptions"`

	// DateStart and DateEnd bound the creation year range, inclusive.
	// Passed through from the source data without validation.
	DateStart int `json:"date_start"`
	DateEnd   int `json:"date_end"`
}

// Pagination is the metadata block the catalog returns with every page.
type Pagination struct {
	// Total is the number of records in the whole catalog.
	Total int `json:"total"`

	// Limit is the actual page size the server used for this response.
	// Callers must use this rather than the size they requested.
	Limit int `json:"limit"`

	// TotalPages is the page count for the whole catalog at query time.
	TotalPages int `json:"total_pages"`

	// CurrentPage is the page number of this response.
	CurrentPage int `json:"current_page"`
}

// Page is one bounded, ordered batch of records plus its pagination metadata.
// Pages are replaced wholesale on every page change.
type Page struct {
	Records    []Artwork
	Pagination Pagination
}

// Size returns the number of records in the page.
func (p Page) Size() int {
	return len(p.Records)
}

// IsEmpty reports whether the page carries no records. An empty page means
// either catalog exhaustion or a collapsed fetch failure; the two are
// deliberately indistinguishable.
func (p Page) IsEmpty() bool {
	return len(p.Records) == 0
}

// artworksResponse is the wire format of the catalog's list endpoint.
type artworksResponse struct {
	Pagination Pagination `json:"pagination"`
	Data       []Artwork  `json:"data"`
}
