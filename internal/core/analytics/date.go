package analytics

import "time"

// GetDateRange returns a date range based on a period
func GetDateRange(period string) *DateRange {
	return GetDateRangeAt(period, time.Now())
}

// GetDateRangeAt resolves period relative to now.
// Periods: today, yesterday, this_week, this_month, last_30_days, all.
func GetDateRangeAt(period string, now time.Time) *DateRange {
	var start, end time.Time
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "today":
		start = startOfDay
		end = now

	case "yesterday":
		start = startOfDay.AddDate(0, 0, -1)
		end = startOfDay.Add(-time.Nanosecond)

	case "this_week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = startOfDay.AddDate(0, 0, -weekday+1)
		end = now

	case "this_month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = now

	case "last_30_days":
		start = now.AddDate(0, 0, -30)
		end = now

	case "all":
		return nil

	default:
		// Default to today
		start = startOfDay
		end = now
	}

	return &DateRange{
		Start: start,
		End:   end,
		Field: "created_at", // Default field
	}
}
