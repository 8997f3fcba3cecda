package solarinfo_test

import (
	"fmt"
	"time"

	"github.com/thurmanmarka/solarinfo"
)

// ExampleForDate demonstrates computing sunrise and sunset for a location.
func ExampleForDate() {
	// New York City, Eastern Standard Time.
	date := time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)

	info, err := solarinfo.ForDate(40.7128, -74.0060, date, -5)
	if err != nil {
		panic(err)
	}

	fmt.Println("Sunrise:", info.Sunrise.Format(time.RFC3339))
	fmt.Println("Sunset:", info.Sunset.Format(time.RFC3339))
	fmt.Println("Solar noon:", info.Date.Add(info.SolarNoon).Format("15:04"))
	// Intentionally no // Output: block so this stays a documentation example
	// and is not validated as a test.
}

// ExampleForDate_polar shows the nearest events reported during polar day.
func ExampleForDate_polar() {
	date := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)

	// Longyearbyen, Svalbard.
	info, err := solarinfo.ForDate(78.22, 15.63, date, 2)
	if err != nil {
		panic(err)
	}

	if info.SunriseSearched {
		fmt.Println("Last sunrise:", info.Sunrise.Format("2006-01-02 15:04"))
	}
	if info.SunsetSearched {
		fmt.Println("Next sunset:", info.Sunset.Format("2006-01-02 15:04"))
	}
}

// ExampleDaylightHours demonstrates calculating daylight duration.
func ExampleDaylightHours() {
	// Phoenix, AZ
	summer := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	summerHours, _ := solarinfo.DaylightHours(33.4484, -112.0740, summer, -7)
	fmt.Printf("Summer solstice daylight: %.2f hours\n", summerHours)

	winter := time.Date(2025, time.December, 21, 0, 0, 0, 0, time.UTC)
	winterHours, _ := solarinfo.DaylightHours(33.4484, -112.0740, winter, -7)
	fmt.Printf("Winter solstice daylight: %.2f hours\n", winterHours)
}

// ExampleTwilightFor demonstrates civil dawn and dusk.
func ExampleTwilightFor() {
	date := time.Date(2025, time.November, 28, 0, 0, 0, 0, time.UTC)

	tw, err := solarinfo.TwilightFor(33.4484, -112.0740, date, -7, solarinfo.TwilightCivil)
	if err != nil {
		panic(err)
	}
	fmt.Println("Civil dawn:", tw.Dawn.Format("15:04"))
	fmt.Println("Civil dusk:", tw.Dusk.Format("15:04"))
}

// ExampleEventSchedule runs a job half an hour before every sunset when
// added to a cron.Cron with Schedule.
func ExampleEventSchedule() {
	s := solarinfo.EventSchedule{
		Latitude:  38.8971,
		Longitude: -77.0366,
		UTCOffset: -4,
		Event:     solarinfo.Sunset,
		Offset:    -30 * time.Minute,
	}

	now := time.Date(2025, time.June, 21, 12, 0, 0, 0, time.UTC)
	fmt.Println("Lights on at:", s.Next(now).Format(time.RFC3339))
}
