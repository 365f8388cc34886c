package views

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatPrice renders a price with two decimals and a comma separator: 42 -> "42,00", 42.5 -> "42,50".
func FormatPrice(price float64) string {
	return strings.Replace(strconv.FormatFloat(price, 'f', 2, 64), ".", ",", 1)
}

// OrderTotal is the price of quantity portions, rounded to cents.
func OrderTotal(price float64, quantity int) float64 {
	return math.Round(price*float64(quantity)*100) / 100
}

type Duration struct {
	Hours   int
	Minutes int
}

func (d Duration) String() string {
	if d.Hours == 0 {
		return fmt.Sprintf("%dm", d.Minutes)
	}
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// Countdown is the absolute distance between now and delivery, rounded up to a whole minute.
func Countdown(now, delivery time.Time) Duration {
	diff := delivery.Sub(now)
	if diff < 0 {
		diff = -diff
	}
	minutes := int((diff + time.Minute - 1) / time.Minute)
	return Duration{Hours: minutes / 60, Minutes: minutes % 60}
}

// Capitalize upper-cases the first letter of a day name.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
