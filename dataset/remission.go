package dataset

import "strings"

// Eighteen leukemia patients followed until relapse or loss to follow-up,
// in weeks.  This is the worked example used throughout the lifetable
// package: the hazard-rate table derived from it can be checked by hand.
const remissionCSV = `weeks,relapse
10,1
14,0
18,1
18,1
22,0
26,1
30,1
30,0
34,1
38,0
42,1
46,1
50,0
54,1
58,0
62,1
66,0
74,1
`

// Remission returns the 18-subject relapse cohort used for the worked
// hazard-rate example.
func Remission() *Cohort {
	c, err := LoadReader(strings.NewReader(remissionCSV), Schema{
		Time:   "weeks",
		Status: "relapse",
	})
	if err != nil {
		// The data is embedded above, so this cannot happen.
		panic(err)
	}
	return c
}
