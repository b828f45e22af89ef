package shift

import "time"

// The schedule tables key recurring rows by Indonesian day names, carried
// over from the admin panel that writes them.
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
	time.Sunday:    "Minggu",
}

// WeekdayName returns the schedule-table day name for a date.
func WeekdayName(date time.Time) string {
	return weekdayNames[date.Weekday()]
}
