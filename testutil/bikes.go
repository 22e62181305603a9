package testutil

import (
	"fmt"
	"strings"
	"time"
)

// DayHeader is the column layout of the daily rental table.
const DayHeader = "instant,dteday,season,yr,mnth,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt"

// HourHeader is the column layout of the hourly rental table.
const HourHeader = "instant,dteday,season,yr,mnth,hr,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt"

// FirstDay is the date of the first synthetic row.
var FirstDay = time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC)

// SeasonOf maps a month to the dataset's season code
// (1 = Dec-Feb, 2 = Mar-May, 3 = Jun-Aug, 4 = Sep-Nov).
func SeasonOf(m time.Month) int {
	return (int(m)%12)/3 + 1
}

// DayCSV renders days synthetic daily rows. Rental counts grow linearly
// with temperature so tests can assert a positive correlation.
func (r *RNG) DayCSV(days int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(DayHeader)
	sb.WriteByte('\n')
	for i := range days {
		d := FirstDay.AddDate(0, 0, i)
		temp := 0.1 + 0.8*r.rand.Float64()
		cnt := int(1000 + 6000*temp + r.rand.NormFloat64()*200)
		if cnt < 0 {
			cnt = 0
		}
		casual := cnt / 5
		fmt.Fprintf(&sb, "%d,%s,%d,%d,%d,%d,%d,%d,%d,%.6f,%.6f,%.6f,%.6f,%d,%d,%d\n",
			i+1, d.Format(time.DateOnly), SeasonOf(d.Month()), d.Year()-2011, int(d.Month()),
			0, int(d.Weekday()), workingDay(d), 1+r.rand.Intn(3),
			temp, temp*0.95, 0.3+0.6*r.rand.Float64(), 0.3*r.rand.Float64(),
			casual, cnt-casual, cnt)
	}
	return sb.String()
}

// HourCSV renders 24 synthetic hourly rows for each of days days.
// Hourly counts peak at 08:00 and 17:00.
func (r *RNG) HourCSV(days int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(HourHeader)
	sb.WriteByte('\n')
	instant := 1
	for i := range days {
		d := FirstDay.AddDate(0, 0, i)
		for hr := range 24 {
			temp := 0.1 + 0.8*r.rand.Float64()
			cnt := 10 + r.rand.Intn(20)
			if hr == 8 || hr == 17 {
				cnt += 300
			}
			casual := cnt / 5
			fmt.Fprintf(&sb, "%d,%s,%d,%d,%d,%d,%d,%d,%d,%d,%.4f,%.4f,%.4f,%.4f,%d,%d,%d\n",
				instant, d.Format(time.DateOnly), SeasonOf(d.Month()), d.Year()-2011, int(d.Month()), hr,
				0, int(d.Weekday()), workingDay(d), 1+r.rand.Intn(3),
				temp, temp*0.95, 0.3+0.6*r.rand.Float64(), 0.3*r.rand.Float64(),
				casual, cnt-casual, cnt)
			instant++
		}
	}
	return sb.String()
}

func workingDay(d time.Time) int {
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return 0
	}
	return 1
}
