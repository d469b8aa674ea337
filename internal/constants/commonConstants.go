package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixAirport  CachePrefix = "AIRPORT_"
	CachePrefixDaylight CachePrefix = "DAYLIGHT_"
)

// Take-off/landing currency requires this many of each within the window.
const RequiredTakeoffsLandings = 3

// Name of the currency row maintained by the refresh job.
const CurrencyTakeoffLanding = "Take-off/Landing"

// Currencies seeded into an empty logbook.
var DefaultCurrencies = []string{
	"Licence",
	"Type Rating",
	"Line Check",
	"Medical",
	CurrencyTakeoffLanding,
}
