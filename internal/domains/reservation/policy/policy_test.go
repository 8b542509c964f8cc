package policy_test

import (
	"testing"
	"time"

	"tablebook/internal/domains/reservation/policy"
	"tablebook/shared/constant"
	"tablebook/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestIsClosedDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for offset := range 400 {
		day := start.AddDate(0, 0, offset)

		assert.Equal(t, day.Weekday() == time.Tuesday, policy.IsClosedDay(day.Format(constant.DateFormat)), day.Format(constant.DateFormat))
	}

	assert.False(t, policy.IsClosedDay("not-a-date"))
}

func TestIsPast(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, timezone.GetLocation())

	tests := []struct {
		date, clock string
		want        bool
	}{
		{date: "2024-02-29", clock: "23:59", want: true},
		{date: "2024-03-01", clock: "17:59", want: true},
		{date: "2024-03-01", clock: "18:00", want: false},
		{date: "2024-03-01", clock: "18:01", want: false},
		{date: "2024-03-02", clock: "10:30", want: false},
		{date: "garbage", clock: "18:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.date+" "+tt.clock, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsPast(tt.date, tt.clock, now))
		})
	}
}

func TestIsWithinBusinessHours(t *testing.T) {
	tests := map[string]bool{
		"10:29": false,
		"10:30": true,
		"12:00": true,
		"21:30": true,
		"21:31": false,
		"00:00": false,
		"9:45":  false,
	}

	for clock, want := range tests {
		t.Run(clock, func(t *testing.T) {
			assert.Equal(t, want, policy.IsWithinBusinessHours(clock))
		})
	}
}

func TestIsValidTimeFormat(t *testing.T) {
	for _, valid := range []string{"00:00", "09:05", "18:00", "23:59"} {
		assert.True(t, policy.IsValidTimeFormat(valid), valid)
	}

	for _, invalid := range []string{"", "9:00", "18:0", "24:00", "12:60", "18:00:00", "ab:cd", "18-00"} {
		assert.False(t, policy.IsValidTimeFormat(invalid), invalid)
	}
}

func TestIsValidDateFormat(t *testing.T) {
	for _, valid := range []string{"2024-01-05", "2024-02-29", "2030-12-31"} {
		assert.True(t, policy.IsValidDateFormat(valid), valid)
	}

	for _, invalid := range []string{"", "2024-1-5", "2023-02-29", "2024-13-01", "2024/01/05", "05-01-2024", "2024-01-05T00:00:00Z"} {
		assert.False(t, policy.IsValidDateFormat(invalid), invalid)
	}
}
