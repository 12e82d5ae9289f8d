package entity

// ImportResult summarises a CSV import. Row numbers count the header as row 1.
type ImportResult struct {
	Type    string     `json:"type"`
	Total   int        `json:"total"`
	Created int        `json:"created"`
	Errors  []RowError `json:"errors"`
}

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
