package models

// SearchResult is a single product returned by GET /search.
type SearchResult struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	Price            float64  `json:"price"`
	FileURLs         []string `json:"fileUrls"`
	Category         string   `json:"category,omitempty"`
}

// SearchMeta carries the pagination metadata of a search response.
type SearchMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// SearchResponse is the paginated result set of a product search.
type SearchResponse struct {
	Items []SearchResult `json:"items"`
	Meta  SearchMeta     `json:"meta"`
}

// EmptySearchResponse returns the canonical result for a blank query:
// no items, zeroed pagination. No network call is made to produce it.
func EmptySearchResponse() *SearchResponse {
	return &SearchResponse{Items: []SearchResult{}}
}
