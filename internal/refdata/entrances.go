package refdata

import "edge.bartcommute.org/internal/models"

// Station entrance coordinates that the upstream API does not provide.
// Surveyed by hand; stations without an entry simply have no entrance data.
var entrances = map[string][]models.Location{
	"12TH": {
		{Lat: 37.804501, Lng: -122.271252},
		{Lat: 37.804238, Lng: -122.270772},
		{Lat: 37.803252, Lng: -122.271736},
		{Lat: 37.803375, Lng: -122.271966},
		{Lat: 37.802357, Lng: -122.272301},
		{Lat: 37.802454, Lng: -122.272535},
		{Lat: 37.803941, Lng: -122.271312},
	},
	"19TH": {
		{Lat: 37.808964, Lng: -122.267841},
		{Lat: 37.808841, Lng: -122.268503},
		{Lat: 37.808427, Lng: -122.268512},
		{Lat: 37.80749, Lng: -122.269092},
		{Lat: 37.806899, Lng: -122.269464},
		{Lat: 37.807358, Lng: -122.270033},
	},
	"EMBR": {
		{Lat: 37.793536, Lng: -122.39584},
		{Lat: 37.793682, Lng: -122.396025},
		{Lat: 37.792788, Lng: -122.396789},
		{Lat: 37.792901, Lng: -122.396995},
		{Lat: 37.792046, Lng: -122.397729},
		{Lat: 37.792184, Lng: -122.397928},
	},
	"MCAR": {
		{Lat: 37.829356, Lng: -122.266669},
	},
	"MONT": {
		{Lat: 37.789378, Lng: -122.401114},
		{Lat: 37.78919, Lng: -122.401759},
		{Lat: 37.788489, Lng: -122.402242},
		{Lat: 37.790529, Lng: -122.400708},
	},
	"POWL": {
		{Lat: 37.786136, Lng: -122.40559},
		{Lat: 37.786045, Lng: -122.405405},
		{Lat: 37.785439, Lng: -122.406469},
		{Lat: 37.785294, Lng: -122.406331},
		{Lat: 37.78442, Lng: -122.407399},
		{Lat: 37.7845, Lng: -122.407643},
		{Lat: 37.783877, Lng: -122.408595},
		{Lat: 37.783712, Lng: -122.408359},
	},
}
