// Package marketcal knows the B3 trading calendar: weekends plus Brazilian
// national holidays, including the movable ones derived from Easter.
//
// The liquidity analyzer uses it to report how many trading days its
// trailing window was expected to contain, so a thin sample (few valid
// bars) can be told apart from a thin calendar.
package marketcal

import "time"

// TradingDaysBetween counts B3 trading days in [from, to], inclusive.
func TradingDaysBetween(from, to time.Time) int {
	from, to = truncateToDate(from), truncateToDate(to)
	if to.Before(from) {
		return 0
	}
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsTradingDay(d) {
			n++
		}
	}
	return n
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsTradingDay returns true if the B3 exchange trades on the given date.
func IsTradingDay(d time.Time) bool {
	// Weekend
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	// National fixed holidays
	fixed := map[string]struct{}{
		"01-01": {}, // New Year
		"04-21": {}, // Tiradentes
		"05-01": {}, // Labor Day
		"09-07": {}, // Independence Day
		"10-12": {}, // Our Lady Aparecida
		"11-02": {}, // All Souls' Day
		"11-15": {}, // Republic Proclamation
		"12-25": {}, // Christmas
	}
	key := d.Format("01-02")
	if _, ok := fixed[key]; ok {
		return false
	}

	// Movable holidays (computed from Easter). Compared by formatted date
	// so the caller's time zone does not matter.
	y := d.Year()
	easter := easterSunday(y)

	movables := map[string]struct{}{
		easter.AddDate(0, 0, -48).Format("01-02"): {}, // Carnival Monday
		easter.AddDate(0, 0, -47).Format("01-02"): {}, // Carnival Tuesday
		easter.AddDate(0, 0, -2).Format("01-02"):  {}, // Good Friday
		easter.AddDate(0, 0, 60).Format("01-02"):  {}, // Corpus Christi
	}
	if _, ok := movables[key]; ok {
		return false
	}

	return true
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
}
