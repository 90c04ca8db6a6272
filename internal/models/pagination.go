package models

// Page carries offset/limit listing parameters.
type Page struct {
	Offset int
	Limit  int
}

// Pagination describes the returned window of a listing.
type Pagination struct {
	Offset     int `json:"offSet"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
}
