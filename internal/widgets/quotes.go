package widgets

import "time"

var Quotes = []string{
	"Success is the sum of small efforts repeated day after day.",
	"Do it with passion or not at all.",
	"Your discipline defines your future.",
}

// Quote picks the quote of the day.
func Quote(t time.Time) string {
	return Quotes[t.YearDay()%len(Quotes)]
}
