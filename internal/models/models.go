// Package models contains the wire and domain models shared by the
// reference-data layer, the enrichment pipelines, and the HTTP facade.
package models

// Location is a geographic coordinate in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Estimate is a single upcoming arrival for a line at a station.
// Minutes is always a non-negative integer; the upstream literal
// "Leaving" is normalized to 0 during enrichment.
type Estimate struct {
	Direction string `json:"direction"`
	HexColor  string `json:"hexcolor"`
	Length    string `json:"length"`
	Minutes   int    `json:"minutes"`
	Platform  string `json:"platform"`
}

// Line is a departure listing for one destination at one station.
type Line struct {
	Abbreviation string     `json:"abbreviation"`
	Destination  string     `json:"destination"`
	Estimates    []Estimate `json:"estimates"`
}

// Station is a BART station. The reference attributes come from the
// upstream station list plus the static entrance table; Lines and
// Distance are attached per-request and never cached.
type Station struct {
	Abbr            string     `json:"abbr"`
	Name            string     `json:"name"`
	Address         string     `json:"address,omitempty"`
	City            string     `json:"city,omitempty"`
	County          string     `json:"county,omitempty"`
	State           string     `json:"state,omitempty"`
	ZipCode         string     `json:"zipcode,omitempty"`
	Latitude        float64    `json:"gtfs_latitude"`
	Longitude       float64    `json:"gtfs_longitude"`
	Entrances       []Location `json:"entrances,omitempty"`
	Lines           []Line     `json:"lines,omitempty"`
	Distance        float64    `json:"distance"`
	NearestEntrance *Location  `json:"nearestEntrance,omitempty"`

	// Error carries a per-station enrichment failure so one failing
	// station does not fail the whole batch.
	Error string `json:"error,omitempty"`
}

// Coordinate returns the station's position as a Location.
func (s Station) Coordinate() Location {
	return Location{Lat: s.Latitude, Lng: s.Longitude}
}

// Route is one directional BART route. TrainOriginAbbr and TrainHeadAbbr
// are parsed from the composite route abbreviation ("DUBL-DALY") on the
// first dash. Direction is a lexicographic heuristic, not geography.
type Route struct {
	Name            string `json:"name"`
	Abbr            string `json:"abbr"`
	TrainOriginAbbr string `json:"trainOriginAbbr"`
	TrainHeadAbbr   string `json:"trainHeadAbbr"`
	RouteID         string `json:"routeID"`
	Number          string `json:"number"`
	HexColor        string `json:"hexcolor"`
	Color           string `json:"color"`
	Direction       string `json:"direction"`
}

// TripRequest is one origin/destination itinerary query.
type TripRequest struct {
	StartCode string `json:"startCode"`
	EndCode   string `json:"endCode"`
}

// ItineraryOption is one scheduled itinerary returned by the upstream
// schedule endpoint. The upstream shape is quirky and verbose, so options
// pass through as loosely typed objects; enrichment suppresses the fares
// field and annotates each leg with trainHeadAbbr and an encoded path.
type ItineraryOption map[string]any

// Legs returns the option's leg objects, or nil if the shape is unexpected.
func (o ItineraryOption) Legs() []map[string]any {
	raw, ok := o["leg"].([]any)
	if !ok {
		return nil
	}
	legs := make([]map[string]any, 0, len(raw))
	for _, l := range raw {
		if m, ok := l.(map[string]any); ok {
			legs = append(legs, m)
		}
	}
	return legs
}

// TripResult pairs a trip request with its resolved itinerary options, or
// with the error that prevented resolution.
type TripResult struct {
	Trip    TripRequest       `json:"trip"`
	Options []ItineraryOption `json:"options"`
	Error   string            `json:"error,omitempty"`
}

// IdentificationMethod tags how an analytics identity was established.
type IdentificationMethod string

const (
	IdentificationExplicit IdentificationMethod = "explicit"
	IdentificationFallback IdentificationMethod = "fallback"
)

// AnalyticsEvent is one usage record appended to the metrics sink. The
// identity pair is either the caller-supplied header values or the derived
// fallback pair, never a mix for the same field.
type AnalyticsEvent struct {
	Endpoint  string               `json:"endpoint"`
	Timestamp int64                `json:"timestamp"` // Unix seconds
	UserID    string               `json:"userId"`
	SessionID string               `json:"sessionId"`
	Method    IdentificationMethod `json:"method"`
}
