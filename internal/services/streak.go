package services

import (
	"sort"
	"time"

	"github.com/N4171k/45DOC/internal/completion"
	"github.com/N4171k/45DOC/internal/models"
)

// dayNumber maps t to a sequential calendar-day index in loc. Counting
// through a UTC midnight keeps DST transitions from producing 23h/25h days.
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// CalendarDaysBetween is the number of calendar days from a to b in loc.
func CalendarDaysBetween(a, b time.Time, loc *time.Location) int64 {
	return dayNumber(b, loc) - dayNumber(a, loc)
}

// CurrentStreak counts consecutive calendar days with at least one completion,
// ending today or yesterday in now's location. Several completions on one day
// count once and days after today are ignored.
func CurrentStreak(completedAt []time.Time, now time.Time) int {
	if len(completedAt) == 0 {
		return 0
	}
	loc := now.Location()
	today := dayNumber(now, loc)

	seen := make(map[int64]struct{}, len(completedAt))
	days := make([]int64, 0, len(completedAt))
	for _, t := range completedAt {
		if t.IsZero() {
			continue
		}
		d := dayNumber(t, loc)
		if d > today {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })

	if today-days[0] > 1 {
		return 0
	}

	streak := 1
	for i := 0; i < len(days)-1; i++ {
		if days[i]-days[i+1] != 1 {
			break
		}
		streak++
	}
	return streak
}

// StreakFromRecords derives the streak from a cache document.
func StreakFromRecords(doc map[string]completion.Record, now time.Time) int {
	times := make([]time.Time, 0, len(doc))
	for _, rec := range doc {
		times = append(times, rec.CompletedAt)
	}
	return CurrentStreak(times, now)
}

// CompletionStats are the dashboard counters.
type CompletionStats struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
	Custom int `json:"custom"`
	Total  int `json:"total"`
	Streak int `json:"streak"`
}

// Stats counts cached completions per tier. Custom entries are counted on
// their own, not under their nominal difficulty.
func Stats(doc map[string]completion.Record, now time.Time) CompletionStats {
	var s CompletionStats
	for _, rec := range doc {
		s.Total++
		if completion.IsCustom(rec.ChallengeID) {
			s.Custom++
			continue
		}
		switch rec.Difficulty {
		case models.DifficultyEasy:
			s.Easy++
		case models.DifficultyMedium:
			s.Medium++
		case models.DifficultyHard:
			s.Hard++
		}
	}
	s.Streak = StreakFromRecords(doc, now)
	return s
}
