package refdata

// stationAbbrSynonyms maps station codes that the schedule and estimate
// endpoints disagree on to the code the real-time surface actually uses.
var stationAbbrSynonyms = map[string]string{
	"SFIA": "MLBR",
}

// CanonicalAbbr resolves a station code through the synonym table.
func CanonicalAbbr(abbr string) string {
	if canonical, ok := stationAbbrSynonyms[abbr]; ok {
		return canonical
	}
	return abbr
}
