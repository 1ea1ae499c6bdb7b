package contact

import (
	"sort"
	"time"
)

const (
	MinWindowDays     = 1
	MaxWindowDays     = 365
	DefaultWindowDays = 7
)

type (
	UpcomingBirthday struct {
		Contact      *Contact
		DaysUntil    int
		NextBirthday time.Time
	}
	UpcomingBirthdays []UpcomingBirthday
)

func ValidWindow(days int) bool {
	return days >= MinWindowDays && days <= MaxWindowDays
}

// Today truncates now to a calendar date in loc. The result is expressed
// in UTC at midnight so day arithmetic never crosses a DST change.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	y, m, d := now.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextBirthday is the first anniversary of birthday on or after today.
// A Feb 29 birthday falls on Feb 28 in common years.
func NextBirthday(birthday, today time.Time) time.Time {
	_, month, day := birthday.Date()

	next := anniversary(today.Year(), month, day)
	if next.Before(today) {
		next = anniversary(today.Year()+1, month, day)
	}

	return next
}

// FindUpcomingBirthdays keeps contacts whose next birthday is at most days
// away from today, closest first. Contacts on the same day keep their input order.
func FindUpcomingBirthdays(cs Contacts, today time.Time, days int) UpcomingBirthdays {
	out := make(UpcomingBirthdays, 0, len(cs))
	for _, c := range cs {
		next := NextBirthday(c.Birthday, today)
		until := daysBetween(today, next)
		if until < 0 || until > days {
			continue
		}
		out = append(out, UpcomingBirthday{
			Contact:      c,
			DaysUntil:    until,
			NextBirthday: next,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntil < out[j].DaysUntil
	})

	return out
}

func anniversary(year int, month time.Month, day int) time.Time {
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
