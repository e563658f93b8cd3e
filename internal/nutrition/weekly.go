package nutrition

import "time"

// WeeklyDay is one row of a weekly report: a calendar day, its total calories
// and whether the user designated that weekday as a diet day.
type WeeklyDay struct {
	Date          time.Time `json:"date"`
	TotalCalories float64   `json:"total_calories"`
	IsDietDay     bool      `json:"is_diet_day"`
}

// WeeklyStats summarizes a 7-day window. Totals and average cover designated
// diet days only; non-diet days are excluded from both numerator and
// denominator of the average.
type WeeklyStats struct {
	TotalCalories float64 `json:"total_calories"`
	AvgCalories   float64 `json:"avg_calories"`
	WeeklyTarget  float64 `json:"weekly_target"`
	DaysTracked   int     `json:"days_tracked"`
	DietDayCount  int     `json:"diet_day_count"`
	OnTrack       bool    `json:"on_track"`
}

// DietDays is the set of weekday indices (time.Weekday, Sunday=0) the user
// designated as diet days.
type DietDays map[time.Weekday]bool

// NewDietDays builds a DietDays set from weekday indices 0=Sunday..6=Saturday.
// Out-of-range indices are ignored.
func NewDietDays(indices []int) DietDays {
	set := make(DietDays, len(indices))
	for _, i := range indices {
		if i >= 0 && i <= 6 {
			set[time.Weekday(i)] = true
		}
	}
	return set
}

// BuildWeeklyReport builds the 7-day window [reference-6d, reference]
// inclusive, oldest first, in loc. caloriesByDay maps a day key (see DayKey)
// to that day's total calories; absent days count as zero.
//
// The weekly target is goals.DailyCalories times the number of diet days in
// the window. With an empty diet-day set the target is 0 and the week is on
// track only when the diet-day total is also 0; a positive total against a
// zero target is over target by convention.
func BuildWeeklyReport(caloriesByDay map[string]float64, goals Goals, dietDays DietDays, reference time.Time, loc *time.Location) ([]WeeklyDay, WeeklyStats) {
	ref := reference.In(loc)
	days := make([]WeeklyDay, 0, 7)
	var stats WeeklyStats

	for i := 6; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		calories := caloriesByDay[DayKey(day, loc)]
		isDiet := dietDays[day.Weekday()]

		days = append(days, WeeklyDay{
			Date:          day,
			TotalCalories: calories,
			IsDietDay:     isDiet,
		})

		if !isDiet {
			continue
		}
		stats.DietDayCount++
		stats.TotalCalories += calories
		if calories > 0 {
			stats.DaysTracked++
		}
	}

	if stats.DaysTracked > 0 {
		stats.AvgCalories = stats.TotalCalories / float64(stats.DaysTracked)
	}
	stats.WeeklyTarget = goals.DailyCalories * float64(stats.DietDayCount)
	stats.OnTrack = stats.TotalCalories <= stats.WeeklyTarget

	return days, stats
}

// DayKey returns the canonical YYYY-MM-DD key of t's calendar day in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
