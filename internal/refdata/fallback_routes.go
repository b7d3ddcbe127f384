package refdata

import (
	"context"

	"edge.bartcommute.org/internal/models"
)

// StaticRoutes is a fixed route table satisfying RouteSource. It exists so
// route-lookup logic can run deterministically without network access, and
// doubles as a last-known-good snapshot of the system map.
type StaticRoutes []models.Route

// Routes returns a copy of the table.
func (s StaticRoutes) Routes(ctx context.Context) ([]models.Route, error) {
	out := make([]models.Route, len(s))
	copy(out, s)
	return out, nil
}

// RoutesWithFallback serves routes from Primary and falls back to the
// static table when the primary source fails. Itinerary enrichment keeps
// working through upstream route-endpoint outages.
type RoutesWithFallback struct {
	Primary  RouteSource
	Fallback StaticRoutes
}

func (r RoutesWithFallback) Routes(ctx context.Context) ([]models.Route, error) {
	routes, err := r.Primary.Routes(ctx)
	if err != nil {
		return r.Fallback.Routes(ctx)
	}
	return routes, nil
}

// FallbackRoutes returns the route table as of the last manual sync with
// the upstream system map. The RICH-MLBR head code deliberately disagrees
// with the route endpoint: the estimate surface labels that run SFIA.
func FallbackRoutes() StaticRoutes {
	return StaticRoutes{
		{Name: "Oakland Airport to Coliseum", Abbr: "COLS-OAKL", TrainOriginAbbr: "COLS", TrainHeadAbbr: "OAKL", RouteID: "ROUTE 19", Number: "19", HexColor: "#D5CFA3", Color: "BEIGE", Direction: "North"},
		{Name: "Coliseum to Oakland Airport", Abbr: "OAKL-COLS", TrainOriginAbbr: "OAKL", TrainHeadAbbr: "COLS", RouteID: "ROUTE 20", Number: "20", HexColor: "#D5CFA3", Color: "BEIGE", Direction: "South"},
		{Name: "Dublin/Pleasanton to Daly City", Abbr: "DUBL-DALY", TrainOriginAbbr: "DUBL", TrainHeadAbbr: "DALY", RouteID: "ROUTE 11", Number: "11", HexColor: "#0099CC", Color: "BLUE", Direction: "South"},
		{Name: "Daly City to Dublin/Pleasanton", Abbr: "DALY-DUBL", TrainOriginAbbr: "DALY", TrainHeadAbbr: "DUBL", RouteID: "ROUTE 12", Number: "12", HexColor: "#0099CC", Color: "BLUE", Direction: "North"},
		{Name: "Berryessa/North San Jose to Daly City", Abbr: "BERY-DALY", TrainOriginAbbr: "BERY", TrainHeadAbbr: "DALY", RouteID: "ROUTE 5", Number: "5", HexColor: "#339933", Color: "GREEN", Direction: "South"},
		{Name: "Daly City to Berryessa/North San Jose", Abbr: "DALY-BERY", TrainOriginAbbr: "DALY", TrainHeadAbbr: "BERY", RouteID: "ROUTE 6", Number: "6", HexColor: "#339933", Color: "GREEN", Direction: "North"},
		{Name: "Berryessa/North San Jose to Richmond", Abbr: "BERY-RICH", TrainOriginAbbr: "BERY", TrainHeadAbbr: "RICH", RouteID: "ROUTE 3", Number: "3", HexColor: "#FF9933", Color: "ORANGE", Direction: "North"},
		{Name: "Richmond to Berryessa/North San Jose", Abbr: "RICH-BERY", TrainOriginAbbr: "RICH", TrainHeadAbbr: "BERY", RouteID: "ROUTE 4", Number: "4", HexColor: "#FF9933", Color: "ORANGE", Direction: "South"},
		{Name: "Millbrae/Daly City to Richmond", Abbr: "MLBR-RICH", TrainOriginAbbr: "MLBR", TrainHeadAbbr: "RICH", RouteID: "ROUTE 8", Number: "8", HexColor: "#FF0000", Color: "RED", Direction: "North"},
		{Name: "Richmond to Daly City/Millbrae", Abbr: "RICH-MLBR", TrainOriginAbbr: "RICH", TrainHeadAbbr: "SFIA", RouteID: "ROUTE 7", Number: "7", HexColor: "#FF0000", Color: "RED", Direction: "South"},
		{Name: "Antioch to SFIA/Millbrae", Abbr: "ANTC-SFIA", TrainOriginAbbr: "ANTC", TrainHeadAbbr: "SFIA", RouteID: "ROUTE 1", Number: "1", HexColor: "#FFFF33", Color: "YELLOW", Direction: "South"},
		{Name: "Millbrae/SFIA to Antioch", Abbr: "SFIA-ANTC", TrainOriginAbbr: "SFIA", TrainHeadAbbr: "ANTC", RouteID: "ROUTE 2", Number: "2", HexColor: "#FFFF33", Color: "YELLOW", Direction: "North"},
	}
}
