package dataset

import "time"

// Column names as they appear in the CSV header.
const (
	ColInstant    = "instant"
	ColDate       = "dteday"
	ColSeason     = "season"
	ColYear       = "yr"
	ColMonth      = "mnth"
	ColHour       = "hr"
	ColHoliday    = "holiday"
	ColWeekday    = "weekday"
	ColWorkingDay = "workingday"
	ColWeather    = "weathersit"
	ColTemp       = "temp"
	ColATemp      = "atemp"
	ColHumidity   = "hum"
	ColWindSpeed  = "windspeed"
	ColCasual     = "casual"
	ColRegistered = "registered"
	ColCount      = "cnt"
)

// DateLayout is the format of the dteday column.
const DateLayout = time.DateOnly

// Season codes.
const (
	Winter = 1
	Spring = 2
	Summer = 3
	Fall   = 4
)

// SeasonName returns a label for a season code.
func SeasonName(s int) string {
	switch s {
	case Winter:
		return "winter"
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Fall:
		return "fall"
	default:
		return "unknown"
	}
}

// WeatherName returns a label for a weathersit code.
func WeatherName(w int) string {
	switch w {
	case 1:
		return "clear"
	case 2:
		return "mist"
	case 3:
		return "light rain"
	case 4:
		return "heavy rain"
	default:
		return "unknown"
	}
}

// Day is one row of the daily table.
type Day struct {
	Instant    int
	Date       time.Time
	Season     int
	Year       int // 0 = 2011, 1 = 2012
	Month      int
	Holiday    int
	Weekday    int
	WorkingDay int
	Weather    int // weathersit, 1 (clear) to 4 (heavy rain)
	Temp       float64
	ATemp      float64
	Humidity   float64
	WindSpeed  float64
	Casual     int
	Registered int
	Count      int
}

// Hour is one row of the hourly table.
type Hour struct {
	Day
	Hour int
}

var dayColumns = []string{
	ColInstant, ColDate, ColSeason, ColYear, ColMonth, ColHoliday, ColWeekday,
	ColWorkingDay, ColWeather, ColTemp, ColATemp, ColHumidity, ColWindSpeed,
	ColCasual, ColRegistered, ColCount,
}

var hourColumns = []string{
	ColInstant, ColDate, ColSeason, ColYear, ColMonth, ColHour, ColHoliday, ColWeekday,
	ColWorkingDay, ColWeather, ColTemp, ColATemp, ColHumidity, ColWindSpeed,
	ColCasual, ColRegistered, ColCount,
}

// DayColumns returns the columns a daily file must have.
func DayColumns() []string { return append([]string(nil), dayColumns...) }

// HourColumns returns the columns an hourly file must have.
func HourColumns() []string { return append([]string(nil), hourColumns...) }
