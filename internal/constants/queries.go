package constants

// Aggregates over the flights table. Placeholders are written as ? and rebound
// to the driver's bindvar style by sqlx.
const (
	SumBlockMinutes = `
	SELECT COALESCE(SUM(block_minutes), 0) FROM flights WHERE doft >= ? AND doft <= ?
	`

	SumTakeoffsLandings = `
	SELECT
		COALESCE(SUM(takeoffs_day + takeoffs_night), 0) AS takeoffs,
		COALESCE(SUM(landings_day + landings_night), 0) AS landings
	FROM flights WHERE doft >= ? AND doft <= ?
	`

	LogbookTotals = `
	SELECT
		COUNT(*) AS flights,
		COALESCE(SUM(block_minutes), 0) AS block_minutes,
		COALESCE(SUM(night_minutes), 0) AS night_minutes,
		COALESCE(SUM(takeoffs_day), 0) AS takeoffs_day,
		COALESCE(SUM(takeoffs_night), 0) AS takeoffs_night,
		COALESCE(SUM(landings_day), 0) AS landings_day,
		COALESCE(SUM(landings_night), 0) AS landings_night
	FROM flights
	`
)
