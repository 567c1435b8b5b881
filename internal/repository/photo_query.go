package repository

import (
	"strings"

	"gorm.io/gorm"
)

const (
	SortNewest    = "newest"
	SortRatingAsc = "rating_asc"
	SortRatingDsc = "rating_desc"
	SortNameAsc   = "name_asc"
	SortPriceAsc  = "price_asc"
	SortPriceDsc  = "price_desc"

	DefaultPageSize = 12
)

// Every preset carries created_at DESC as the tie-break so pages stay
// deterministic when the primary key is equal across rows.
var sortPresets = map[string]string{
	SortNewest:    "created_at DESC",
	SortRatingAsc: "rating ASC, created_at DESC",
	SortRatingDsc: "rating DESC, created_at DESC",
	SortNameAsc:   "name ASC, created_at DESC",
	SortPriceAsc:  "price_range ASC, created_at DESC",
	SortPriceDsc:  "price_range DESC, created_at DESC",
}

var priceTiers = map[string]bool{
	"$":    true,
	"$$":   true,
	"$$$":  true,
	"$$$$": true,
}

// PhotoQuery translates the listing parameters of a request into a gorm
// filter, an ORDER BY clause and a page window. The caller supplies the base
// scope (owner, public feed); nothing here can widen it.
type PhotoQuery struct {
	Search     string
	Tag        string
	Visited    string
	PriceRange string
	Sort       string
	Page       int
	Limit      int
}

func (q *PhotoQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if _, ok := sortPresets[q.Sort]; !ok {
		q.Sort = SortNewest
	}
}

func (q PhotoQuery) Filter() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s := strings.TrimSpace(q.Search); s != "" {
			term := "%" + strings.ToLower(s) + "%"
			db = db.Where(
				"LOWER(name) LIKE ? OR LOWER(location_address) LIKE ? OR LOWER(memo) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?",
				term, term, term, term,
			)
		}
		if q.Tag != "" {
			// tags is a JSON array column; membership is a match against
			// the JSON-encoded element.
			db = db.Where("CAST(tags AS TEXT) LIKE ?", `%"`+q.Tag+`"%`)
		}
		switch q.Visited {
		case "true":
			db = db.Where("visited = ?", true)
		case "false":
			db = db.Where("visited = ?", false)
		}
		if priceTiers[q.PriceRange] {
			db = db.Where("price_range = ?", q.PriceRange)
		}
		return db
	}
}

func (q PhotoQuery) OrderClause() string {
	return sortPresets[q.Sort]
}

func (q PhotoQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func (q PhotoQuery) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}
