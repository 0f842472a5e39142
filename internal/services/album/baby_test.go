package album

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateAge(t *testing.T) {
	birth := date(2024, time.March, 15)

	tests := []struct {
		name    string
		at      time.Time
		days    int
		months  int
		display string
	}{
		{"出生当天", date(2024, time.March, 15), 0, 0, "0天"},
		{"不满一周按天显示", date(2024, time.March, 20), 5, 0, "5天"},
		{"满一周后按周显示", date(2024, time.March, 25), 10, 0, "1周"},
		{"第三周", date(2024, time.April, 5), 21, 0, "3周"},
		{"满六十天前仍按周显示", date(2024, time.May, 13), 59, 1, "8周"},
		{"满六十天后按月显示", date(2024, time.July, 20), 127, 4, "4个月"},
		{"不满整月不进位", date(2024, time.July, 14), 121, 3, "3个月"},
		{"满两岁后按岁显示", date(2026, time.June, 20), 827, 27, "2岁3个月"},
		{"整岁省略月份", date(2026, time.March, 15), 730, 24, "2岁"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age := CalculateAge(birth, tt.at)
			assert.Equal(t, tt.days, age.Days)
			assert.Equal(t, tt.months, age.Months)
			assert.Equal(t, tt.display, age.Display)
		})
	}

	t.Run("时间早于出生日期按零处理", func(t *testing.T) {
		age := CalculateAge(birth, date(2024, time.January, 1))
		assert.Zero(t, age.Days)
		assert.Equal(t, "0天", age.Display)
	})

	t.Run("忽略时分秒", func(t *testing.T) {
		lateEvening := time.Date(2024, time.March, 16, 23, 50, 0, 0, time.UTC)
		age := CalculateAge(birth, lateEvening)
		assert.Equal(t, 1, age.Days)
	})
}
