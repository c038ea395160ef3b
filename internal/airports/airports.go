package airports

import (
	"strings"
)

// Info holds display metadata for one airport.
type Info struct {
	City     string
	Timezone string
}

var byCode = map[string]Info{
	// Europe
	"LHR": {"London", "Europe/London"},
	"LGW": {"London", "Europe/London"},
	"STN": {"London", "Europe/London"},
	"CDG": {"Paris", "Europe/Paris"},
	"ORY": {"Paris", "Europe/Paris"},
	"AMS": {"Amsterdam", "Europe/Amsterdam"},
	"FRA": {"Frankfurt", "Europe/Berlin"},
	"MAD": {"Madrid", "Europe/Madrid"},
	"BCN": {"Barcelona", "Europe/Madrid"},
	"FCO": {"Rome", "Europe/Rome"},
	"ZRH": {"Zurich", "Europe/Zurich"},
	"KEF": {"Reykjavik", "Atlantic/Reykjavik"},
	"DUB": {"Dublin", "Europe/Dublin"},
	"LIS": {"Lisbon", "Europe/Lisbon"},

	// North America
	"YYZ": {"Toronto", "America/Toronto"},
	"YTZ": {"Toronto", "America/Toronto"},
	"YVR": {"Vancouver", "America/Vancouver"},
	"YUL": {"Montreal", "America/Toronto"},
	"JFK": {"New York City", "America/New_York"},
	"LGA": {"New York City", "America/New_York"},
	"EWR": {"New York City", "America/New_York"},
	"BOS": {"Boston", "America/New_York"},
	"ORD": {"Chicago", "America/Chicago"},
	"SFO": {"San Francisco", "America/Los_Angeles"},
	"OAK": {"San Francisco Bay Area", "America/Los_Angeles"},
	"SJC": {"San Francisco Bay Area", "America/Los_Angeles"},
	"LAX": {"Los Angeles", "America/Los_Angeles"},
	"SEA": {"Seattle", "America/Los_Angeles"},
	"MEX": {"Mexico City", "America/Mexico_City"},

	// Asia Pacific
	"CGK": {"Jakarta", "Asia/Jakarta"},
	"DPS": {"Bali", "Asia/Makassar"},
	"SIN": {"Singapore", "Asia/Singapore"},
	"KUL": {"Kuala Lumpur", "Asia/Kuala_Lumpur"},
	"BKK": {"Bangkok", "Asia/Bangkok"},
	"HND": {"Tokyo", "Asia/Tokyo"},
	"NRT": {"Tokyo", "Asia/Tokyo"},
	"ICN": {"Seoul", "Asia/Seoul"},
	"HKG": {"Hong Kong", "Asia/Hong_Kong"},
	"SYD": {"Sydney", "Australia/Sydney"},
	"MEL": {"Melbourne", "Australia/Melbourne"},
	"DEL": {"Delhi", "Asia/Kolkata"},

	// Middle East
	"DXB": {"Dubai", "Asia/Dubai"},
	"DOH": {"Doha", "Asia/Qatar"},
	"IST": {"Istanbul", "Europe/Istanbul"},
}

// Lookup returns metadata for an IATA code.
func Lookup(code string) (Info, bool) {
	info, ok := byCode[strings.ToUpper(code)]
	return info, ok
}

// CityName returns the display city for an IATA code, falling back to
// the code itself for airports outside the table.
func CityName(code string) string {
	if info, ok := Lookup(code); ok {
		return info.City
	}
	return strings.ToUpper(code)
}
