package bart

// The upstream API returns numeric fields as strings throughout; raw types
// keep them that way and leave parsing to the transforming layers.

// RawStation is one station entry from the stn endpoint.
type RawStation struct {
	Name      string `json:"name"`
	Abbr      string `json:"abbr"`
	Latitude  string `json:"gtfs_latitude"`
	Longitude string `json:"gtfs_longitude"`
	Address   string `json:"address"`
	City      string `json:"city"`
	County    string `json:"county"`
	State     string `json:"state"`
	ZipCode   string `json:"zipcode"`
}

type stationsResponse struct {
	Root struct {
		Stations struct {
			Station []RawStation `json:"station"`
		} `json:"stations"`
	} `json:"root"`
}

// RawRoute is one route entry from the route endpoint.
type RawRoute struct {
	Name     string `json:"name"`
	Abbr     string `json:"abbr"`
	RouteID  string `json:"routeID"`
	Number   string `json:"number"`
	HexColor string `json:"hexcolor"`
	Color    string `json:"color"`
}

type routesResponse struct {
	Root struct {
		Routes struct {
			Route []RawRoute `json:"route"`
		} `json:"routes"`
	} `json:"root"`
}

// RawEstimate is one train estimate inside a destination group. Minutes is
// a string because the upstream sends the literal "Leaving" for imminent
// departures.
type RawEstimate struct {
	Minutes   string `json:"minutes"`
	Platform  string `json:"platform"`
	Direction string `json:"direction"`
	Length    string `json:"length"`
	Color     string `json:"color"`
	HexColor  string `json:"hexcolor"`
}

// RawETD is one destination group from the etd endpoint.
type RawETD struct {
	Destination  string        `json:"destination"`
	Abbreviation string        `json:"abbreviation"`
	Estimate     []RawEstimate `json:"estimate"`
}

type etdResponse struct {
	Root struct {
		Station []struct {
			ETD []RawETD `json:"etd"`
		} `json:"station"`
	} `json:"root"`
}

type scheduleResponse struct {
	Root struct {
		Schedule struct {
			Request struct {
				Trip []map[string]any `json:"trip"`
			} `json:"request"`
		} `json:"schedule"`
	} `json:"root"`
}
