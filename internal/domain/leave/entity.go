package leave

import "time"

// Leave is an approved absence spanning a date range. Only approved rows are
// visible to the attendance core; pending and rejected requests stay in the
// approval module.
type Leave struct {
	ID        string
	NIK       string
	Type      Type
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Type string

const (
	TypePermit   Type = "I" // izin
	TypeSick     Type = "S" // sakit
	TypeAnnual   Type = "C" // cuti
	TypeOfficial Type = "D" // dinas luar
)

// Covers reports whether the leave range includes the given date. The
// comparison is on calendar days, so the locations of the stored range and
// the queried date do not matter.
func (l Leave) Covers(date time.Time) bool {
	d := dayNumber(date)
	return d >= dayNumber(l.StartDate) && d <= dayNumber(l.EndDate)
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
