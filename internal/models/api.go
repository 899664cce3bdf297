package models

// SearchRequest is the JSON body for the programmatic search endpoint.
// MinScore and MaxResults are pointers so an explicit 0 can be told
// apart from an omitted field.
type SearchRequest struct {
	Query      string `json:"query" binding:"required"`
	Keyword    string `json:"keyword"`
	MinScore   *int   `json:"min_score"`
	MaxResults *int   `json:"max_results"`
}

type SearchResponse struct {
	Results []ReviewRecord `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
