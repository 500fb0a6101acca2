package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Aggregator runs grouped counts over the event tables
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Aggregate performs a generic aggregation query
func (a *Aggregator) Aggregate(ctx context.Context, query AggregateQuery) ([]map[string]interface{}, error) {
	selectParts := append([]string{}, query.GroupBy...)

	// Sorted so the generated SQL is stable
	aliases := make([]string, 0, len(query.Aggregates))
	for alias := range query.Aggregates {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		selectParts = append(selectParts, fmt.Sprintf("%s AS %s", query.Aggregates[alias], alias))
	}

	db := a.db.WithContext(ctx).Table(query.Table).Select(strings.Join(selectParts, ", "))
	db = applyFilters(db, query.Filters)

	if query.DateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", query.DateRange.Field),
			query.DateRange.Start, query.DateRange.End)
	}
	if len(query.GroupBy) > 0 {
		db = db.Group(strings.Join(query.GroupBy, ", "))
	}
	for _, order := range query.OrderBy {
		db = db.Order(order)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	var results []map[string]interface{}
	if err := db.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("aggregate query failed: %w", err)
	}

	return results, nil
}

// CountBy counts rows of table per distinct value of column
func (a *Aggregator) CountBy(ctx context.Context, table, column string, dr *DateRange) (map[string]int64, error) {
	rows, err := a.Aggregate(ctx, AggregateQuery{
		Table:      table,
		GroupBy:    []string{column},
		Aggregates: map[string]string{"count": "COUNT(*)"},
		DateRange:  dr,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%v", row[column])
		counts[key] = int64(toFloat64(row["count"]))
	}
	return counts, nil
}

func applyFilters(db *gorm.DB, filters map[string]interface{}) *gorm.DB {
	for condition, value := range filters {
		if strings.Contains(condition, "?") {
			// Parameterized condition (e.g., "created_at >= ?")
			db = db.Where(condition, value)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", condition), value)
		}
	}
	return db
}
