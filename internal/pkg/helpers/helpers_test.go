package helpers

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	date := func(y int, m time.Month, d, hour int) time.Time {
		return time.Date(y, m, d, hour, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2026, 5, 20, 9), date(2026, 5, 20, 23), 0},
		{"one day apart", date(2026, 5, 20, 23), date(2026, 5, 21, 1), 1},
		{"a week apart", date(2026, 5, 20, 9), date(2026, 5, 27, 9), 7},
		{"reversed is negative", date(2026, 5, 21, 9), date(2026, 5, 20, 9), -1},
		{"across a month boundary", date(2026, 5, 31, 9), date(2026, 6, 2, 9), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMidnight(t *testing.T) {
	got := Midnight(time.Date(2026, 5, 20, 17, 45, 12, 999, time.UTC))
	want := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, want %v", got, want)
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("30s", time.Minute); got != 30*time.Second {
		t.Errorf("ParseDuration() = %v, want 30s", got)
	}
	if got := ParseDuration("garbage", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration() fallback = %v, want 1m", got)
	}
}

func TestPageRequestOffset(t *testing.T) {
	p := PageRequest{Page: 3, Size: 25}
	if got := p.Offset(); got != 75 {
		t.Errorf("Offset() = %d, want 75", got)
	}
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"createdAt": "created_at",
		"lastName":  "last_name",
	}

	tests := []struct {
		name string
		page PageRequest
		want string
	}{
		{"whitelisted column", PageRequest{SortBy: "lastName", SortDir: "asc"}, "last_name ASC"},
		{"default direction is desc", PageRequest{SortBy: "createdAt"}, "created_at DESC"},
		{"case-insensitive direction", PageRequest{SortBy: "createdAt", SortDir: "ASC"}, "created_at ASC"},
		{"unknown column falls back", PageRequest{SortBy: "password; DROP TABLE users", SortDir: "asc"}, "created_at ASC"},
		{"unknown direction falls back", PageRequest{SortBy: "lastName", SortDir: "sideways"}, "last_name DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.OrderClause(allowed, "created_at"); got != tt.want {
				t.Errorf("OrderClause() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		page, size int
		wantPages  int
	}{
		{"even split", 40, 0, 10, 4},
		{"partial last page", 42, 1, 10, 5},
		{"empty result", 0, 0, 10, 0},
		{"bad size normalized", 5, 0, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPaginationInfo(tt.totalItems, tt.page, tt.size)
			if info.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tt.wantPages)
			}
			if info.TotalItems != tt.totalItems {
				t.Errorf("TotalItems = %d, want %d", info.TotalItems, tt.totalItems)
			}
		})
	}
}

func TestStringValue(t *testing.T) {
	if got := StringValue(nil); got != "" {
		t.Errorf("StringValue(nil) = %q", got)
	}
	s := "x"
	if got := StringValue(&s); got != "x" {
		t.Errorf("StringValue(&s) = %q", got)
	}
}
