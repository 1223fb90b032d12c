package domain

// DestinationFilter narrows the public listing. Empty strings mean "no filter".
type DestinationFilter struct {
	TextQuery    string
	CategorySlug string
	Page         int
}

type DestinationPage struct {
	Items       []Destination `json:"items"`
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalItems  int           `json:"total_items"`
	TotalPages  int           `json:"total_pages"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

type HomeDigest struct {
	Featured   []Destination `json:"featured"`
	Popular    []Destination `json:"popular"`
	Categories []Category    `json:"categories"`
}

type CategoryDetail struct {
	Category     Category      `json:"category"`
	Destinations []Destination `json:"destinations"`
}

type DistrictDetail struct {
	District     District      `json:"district"`
	Destinations []Destination `json:"destinations"`
}

type CatalogCounts struct {
	Destinations int `db:"destinations" json:"destinations"`
	Categories   int `db:"categories" json:"categories"`
	Districts    int `db:"districts" json:"districts"`
	Accounts     int `db:"accounts" json:"accounts"`
}

type DashboardStats struct {
	Counts    CatalogCounts `json:"counts"`
	TopViewed []Destination `json:"top_viewed"`
	Recent    []Destination `json:"recent"`
}
