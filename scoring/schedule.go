package scoring

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Dosada05/tennis-league/models"
)

const slotLayout = "15:04"

type ScheduleSlot struct {
	Start   string                  `json:"start"`
	End     string                  `json:"end"`
	Matches map[string]models.Match `json:"matches"` // by court
}

type ScheduleGrid struct {
	Date   string         `json:"date"`
	Courts []string       `json:"courts"`
	Slots  []ScheduleSlot `json:"slots"`
}

// BuildSchedule lays out one day's matches as time slots by courts. Slot
// keys are start times rendered in loc.
func BuildSchedule(date string, matches []models.Match, loc *time.Location) ScheduleGrid {
	if loc == nil {
		loc = time.UTC
	}

	courtSet := make(map[string]struct{})
	slotIndex := make(map[string]int)
	grid := ScheduleGrid{Date: date, Courts: []string{}, Slots: []ScheduleSlot{}}

	sorted := append([]models.Match(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	for _, m := range sorted {
		courtSet[m.Court] = struct{}{}
		key := m.StartTime.In(loc).Format(slotLayout)
		idx, ok := slotIndex[key]
		if !ok {
			grid.Slots = append(grid.Slots, ScheduleSlot{
				Start:   key,
				End:     m.EndTime.In(loc).Format(slotLayout),
				Matches: make(map[string]models.Match),
			})
			idx = len(grid.Slots) - 1
			slotIndex[key] = idx
		}
		grid.Slots[idx].Matches[m.Court] = m
	}

	for c := range courtSet {
		grid.Courts = append(grid.Courts, c)
	}
	SortCourts(grid.Courts)
	return grid
}

// SortCourts orders court labels by their leading number ("2코트" before
// "10코트"), falling back to plain string order.
func SortCourts(courts []string) {
	sort.SliceStable(courts, func(i, j int) bool {
		ni, oki := leadingNumber(courts[i])
		nj, okj := leadingNumber(courts[j])
		if oki && okj && ni != nj {
			return ni < nj
		}
		if oki != okj {
			return oki
		}
		return courts[i] < courts[j]
	})
}

func leadingNumber(s string) (int, bool) {
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
