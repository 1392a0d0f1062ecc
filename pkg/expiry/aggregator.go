package expiry

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Item is the storage-agnostic view the aggregator works on. Quantity is the
// display string shown to the user, e.g. "2 kg".
type Item struct {
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   string    `json:"quantity"`
	ExpiryDate time.Time `json:"expiry_date"`
}

type ClassifiedItem struct {
	Item
	DaysRemaining int    `json:"days_remaining"`
	Status        Status `json:"status"`
}

type Summary struct {
	TotalCount       int              `json:"total_count"`
	Expired          []ClassifiedItem `json:"expired"`
	ExpiringSoon     []ClassifiedItem `json:"expiring_soon"`
	Good             []ClassifiedItem `json:"good"`
	CategoryCounts   map[string]int   `json:"category_counts"`
	DominantCategory string           `json:"dominant_category,omitempty"`
	DominantCount    int              `json:"dominant_count,omitempty"`
	LowStock         *ClassifiedItem  `json:"low_stock,omitempty"`
}

// Summarize partitions items into expired / expiring soon / good in a single
// pass and derives the report insights. Dominant-category ties are broken by
// the first category encountered in input order; the low-stock pick is the
// non-expired item with the smallest leading numeric token of its quantity
// string, ties again broken by input order.
func Summarize(items []Item, now time.Time, thresholdDays int) Summary {
	summary := Summary{
		TotalCount:     len(items),
		Expired:        []ClassifiedItem{},
		ExpiringSoon:   []ClassifiedItem{},
		Good:           []ClassifiedItem{},
		CategoryCounts: map[string]int{},
	}

	var categoryOrder []string
	var lowStockQty float64
	hasLowStock := false

	for _, item := range items {
		c := Classify(item.ExpiryDate, now, thresholdDays)
		classified := ClassifiedItem{Item: item, DaysRemaining: c.DaysRemaining, Status: c.Status}

		switch c.Status {
		case StatusExpired:
			summary.Expired = append(summary.Expired, classified)
		case StatusExpiringSoon:
			summary.ExpiringSoon = append(summary.ExpiringSoon, classified)
		default:
			summary.Good = append(summary.Good, classified)
		}

		if _, seen := summary.CategoryCounts[item.Category]; !seen {
			categoryOrder = append(categoryOrder, item.Category)
		}
		summary.CategoryCounts[item.Category]++

		if c.Status != StatusExpired {
			if qty, ok := leadingQuantity(item.Quantity); ok {
				if !hasLowStock || qty < lowStockQty {
					hasLowStock = true
					lowStockQty = qty
					picked := classified
					summary.LowStock = &picked
				}
			}
		}
	}

	for _, category := range categoryOrder {
		if count := summary.CategoryCounts[category]; count > summary.DominantCount {
			summary.DominantCategory = category
			summary.DominantCount = count
		}
	}

	sort.SliceStable(summary.ExpiringSoon, func(i, j int) bool {
		return summary.ExpiringSoon[i].DaysRemaining < summary.ExpiringSoon[j].DaysRemaining
	})

	return summary
}

// leadingQuantity parses the leading numeric token of a quantity display
// string ("2 kg" -> 2). Items without a parseable quantity are skipped by
// the low-stock pick.
func leadingQuantity(quantity string) (float64, bool) {
	token := strings.Fields(quantity)
	if len(token) == 0 {
		return 0, false
	}
	qty, err := strconv.ParseFloat(token[0], 64)
	if err != nil {
		return 0, false
	}
	return qty, true
}
