package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/domain/shift"
)

// Resolution is the outcome of the schedule cascade for one employee and
// date. A nil Shift is a deliberate day off, not an error; storage faults are
// the only thing Resolve reports as errors.
type Resolution struct {
	Shift  *shift.Definition
	Source shift.Source
}

func (r Resolution) Found() bool {
	return r.Shift != nil
}

// Resolver applies the schedule-source priority cascade. Every attendance
// call site goes through this one implementation.
type Resolver struct {
	catalog shift.CatalogRepository
	sources shift.ScheduleSourceRepository
}

func NewResolver(catalog shift.CatalogRepository, sources shift.ScheduleSourceRepository) *Resolver {
	return &Resolver{
		catalog: catalog,
		sources: sources,
	}
}

// Resolve walks the cascade for the given date:
//
//  1. date override;
//  2. monthly roster: any roster row in the date's month makes the roster
//     authoritative for the whole month, so a missing row for the exact date
//     is a day off regardless of weaker sources;
//  3. personal weekday pattern: having any pattern row makes the pattern
//     authoritative, a miss on this weekday is a day off;
//  4. department weekday default, same presence semantics;
//  5. the employee's legacy default shift code.
//
// A shift code that has no catalog entry is logged and treated as no shift.
func (r *Resolver) Resolve(ctx context.Context, emp employee.Employee, date time.Time) (Resolution, error) {
	// 1. Ad hoc override for the exact date.
	code, err := r.sources.DateOverride(ctx, emp.NIK, date)
	if err != nil {
		return Resolution{}, fmt.Errorf("query date override: %w", err)
	}
	if code != nil {
		return r.lookup(ctx, *code, shift.SourceOverride)
	}

	// 2. Published roster. Presence anywhere in the month suppresses every
	// weaker source for the whole month.
	hasRoster, err := r.sources.HasRosterInMonth(ctx, emp.NIK, date.Year(), date.Month())
	if err != nil {
		return Resolution{}, fmt.Errorf("query roster presence: %w", err)
	}
	if hasRoster {
		code, err := r.sources.RosterShift(ctx, emp.NIK, date)
		if err != nil {
			return Resolution{}, fmt.Errorf("query roster shift: %w", err)
		}
		if code != nil {
			return r.lookup(ctx, *code, shift.SourceRoster)
		}
		return Resolution{}, nil
	}

	weekday := shift.WeekdayName(date)

	// 3. Personal weekday pattern.
	hasRecurring, err := r.sources.HasRecurring(ctx, emp.NIK)
	if err != nil {
		return Resolution{}, fmt.Errorf("query recurring presence: %w", err)
	}
	if hasRecurring {
		code, err := r.sources.RecurringShift(ctx, emp.NIK, weekday)
		if err != nil {
			return Resolution{}, fmt.Errorf("query recurring shift: %w", err)
		}
		if code != nil {
			return r.lookup(ctx, *code, shift.SourceRecurring)
		}
		return Resolution{}, nil
	}

	// 4. Department default.
	hasDept, err := r.sources.HasDepartmentSchedule(ctx, emp.BranchCode, emp.DepartmentCode)
	if err != nil {
		return Resolution{}, fmt.Errorf("query department schedule presence: %w", err)
	}
	if hasDept {
		code, err := r.sources.DepartmentShift(ctx, emp.BranchCode, emp.DepartmentCode, weekday)
		if err != nil {
			return Resolution{}, fmt.Errorf("query department shift: %w", err)
		}
		if code != nil {
			return r.lookup(ctx, *code, shift.SourceDepartment)
		}
		return Resolution{}, nil
	}

	// 5. Legacy default code on the employee record.
	if emp.DefaultShiftCode != nil && *emp.DefaultShiftCode != "" {
		return r.lookup(ctx, *emp.DefaultShiftCode, shift.SourceEmployeeDefault)
	}

	return Resolution{}, nil
}

// Catalog exposes the underlying catalog for callers that need a direct
// code lookup outside the cascade.
func (r *Resolver) Catalog() shift.CatalogRepository {
	return r.catalog
}

func (r *Resolver) lookup(ctx context.Context, code string, source shift.Source) (Resolution, error) {
	def, err := r.catalog.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			// Data-integrity problem in the schedule tables; surface it in
			// the logs but resolve to a day off so callers keep working.
			slog.Warn("schedule source references a shift code missing from the catalog",
				"shift_code", code,
				"source", string(source),
			)
			return Resolution{}, nil
		}
		return Resolution{}, fmt.Errorf("lookup shift %s: %w", code, err)
	}
	return Resolution{Shift: &def, Source: source}, nil
}

// EffectiveDate decides which work day a request arriving at `now` should be
// filed under. Normally that is now's own date; late at night (at or past
// the policy cutoff), when the employee has nothing open for today and
// tomorrow's shift starts at or before the policy floor, the request belongs
// to tomorrow. This lets a guard clock in at 22:30 for a 01:00 shift dated
// the next day.
func (r *Resolver) EffectiveDate(ctx context.Context, emp employee.Employee, now time.Time, policy shift.WindowPolicy, hasOpenToday bool) (time.Time, error) {
	today := DateOf(now)
	if hasOpenToday {
		return today, nil
	}
	if policy.EarlyArrivalCutoff.IsZero() || secondsOfDay(now) < secondsOfDay(policy.EarlyArrivalCutoff) {
		return today, nil
	}

	tomorrow := today.AddDate(0, 0, 1)
	res, err := r.Resolve(ctx, emp, tomorrow)
	if err != nil {
		return today, err
	}
	if res.Found() && secondsOfDay(res.Shift.StartTime) <= secondsOfDay(policy.EarlyArrivalFloor) {
		return tomorrow, nil
	}
	return today, nil
}

// DateOf truncates an instant to midnight of its calendar day, keeping the
// location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateIn rebuilds a stored date at midnight of the same calendar day in the
// given location. Dates scanned from the database carry UTC midnight and
// must be moved to the caller's location before any window arithmetic or
// day comparison.
func DateIn(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
