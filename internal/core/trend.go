package core

// DateTotals aggregates the jobs due on a single calendar date.
type DateTotals struct {
	Income Money
	Count  int
}

// DueDateTrend is the chart-ready shape of the income/volume report.
// Dates, Incomes and Counts are parallel slices sorted by date ascending;
// dates with no jobs are absent rather than zero-filled, so the trend line
// only has points where jobs exist.
type DueDateTrend struct {
	ByDate  map[Date]DateTotals
	Dates   []Date
	Incomes []Money
	Counts  []int
}
