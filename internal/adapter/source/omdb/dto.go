package omdb

// responseTrue is the status token OMDb uses for a successful lookup
const responseTrue = "True"

// envelope holds the fields every OMDb response carries
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error,omitempty"`
}

// SearchResponse is the payload for ?s= queries
type SearchResponse struct {
	envelope
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"` // OMDb sends this as a string
}

// SearchItem is one row of a search response
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// DetailResponse is the payload for ?i= queries
type DetailResponse struct {
	envelope
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
}
