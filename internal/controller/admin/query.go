package admin

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"AthLink-backend/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	defaultSortField = "created_at"
	defaultSortOrder = "desc"

	// filterAll is the sentinel value meaning "do not filter on this parameter"
	filterAll = "all"
)

// sortableFields is the allow-list of column names the listing may sort by.
// Anything else silently falls back to the default sort field.
var sortableFields = map[string]bool{
	"created_at": true,
	"title":      true,
	"sport":      true,
	"type":       true,
	"status":     true,
	"deadline":   true,
}

// listQuery holds the validated listing parameters for one request
type listQuery struct {
	Page      int
	Limit     int
	Search    string
	Sport     string
	Type      string
	Status    string
	CreatedBy string
	FromDate  *time.Time
	ToDate    *time.Time
	SortBy    string
	SortOrder string
}

// parseListQuery validates every raw query parameter, substituting the
// documented default wherever a value is missing or out of range.
func parseListQuery(c *gin.Context) listQuery {
	return listQuery{
		Page:      parsePage(c.Query("page")),
		Limit:     parseLimit(c.Query("limit")),
		Search:    c.Query("search"),
		Sport:     parseFilter(c.Query("sport")),
		Type:      parseFilter(c.Query("type")),
		Status:    parseStatus(c.Query("status")),
		CreatedBy: c.Query("createdBy"),
		FromDate:  parseDate(c.Query("fromDate")),
		ToDate:    parseToDate(c.Query("toDate")),
		SortBy:    parseSortBy(c.Query("sortBy")),
		SortOrder: parseSortOrder(c.Query("sortOrder")),
	}
}

// parsePage clamps the requested page to a minimum of 1
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return defaultPage
	}
	return page
}

// parseLimit clamps the requested page size to [1, maxLimit]
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return defaultLimit
	}
	if limit < 1 {
		return 1
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// parseSortBy falls back to the default field for anything outside the allow-list
func parseSortBy(raw string) string {
	if sortableFields[raw] {
		return raw
	}
	return defaultSortField
}

// parseSortOrder accepts exactly "asc" and "desc"
func parseSortOrder(raw string) string {
	if raw == "asc" || raw == "desc" {
		return raw
	}
	return defaultSortOrder
}

// parseStatus drops values outside the enumerated status set instead of erroring
func parseStatus(raw string) string {
	if model.ValidOpportunityStatus(raw) {
		return raw
	}
	return ""
}

// parseFilter treats empty string and the "all" sentinel as no filter
func parseFilter(raw string) string {
	if raw == filterAll {
		return ""
	}
	return raw
}

// parseDate parses an ISO date or datetime, nil when absent or malformed
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// parseToDate widens a date-only upper bound to the end of that day so the
// range stays inclusive on both ends.
func parseToDate(raw string) *time.Time {
	t := parseDate(raw)
	if t == nil {
		return nil
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		end := t.Add(24*time.Hour - time.Nanosecond)
		return &end
	}
	return t
}
