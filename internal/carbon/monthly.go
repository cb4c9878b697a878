package carbon

import "github.com/san-kum/cropsim/internal/weather"

const (
	// MonthDays is the length of one aggregation block.
	MonthDays = 30
	// CoverLAI is the leaf area index above which a day counts as covered.
	CoverLAI = 0.5
)

// Month is one aggregated block of daily forcing.
type Month struct {
	Temp    float64 `json:"temp"`
	Precip  float64 `json:"precip"`
	Covered bool    `json:"covered"`
}

// Aggregate chunks daily weather into 30-day blocks. A block is covered when
// more than half of its days have lai > CoverLAI; lai shorter than days
// counts the missing days as bare.
func Aggregate(days []weather.Day, lai []float64) []Month {
	var months []Month
	for start := 0; start < len(days); start += MonthDays {
		end := min(start+MonthDays, len(days))
		n := end - start

		var temp, rain float64
		active := 0
		for i := start; i < end; i++ {
			temp += days[i].TMean()
			rain += days[i].Rain
			if i < len(lai) && lai[i] > CoverLAI {
				active++
			}
		}
		months = append(months, Month{
			Temp:    temp / float64(n),
			Precip:  rain,
			Covered: float64(active) > float64(n)/2,
		})
	}
	return months
}
