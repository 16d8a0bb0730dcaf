package osrm

// codeOK is the OSRM success code.
const codeOK = "Ok"

// routeResponse represents the OSRM route service response envelope.
type routeResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message,omitempty"`
	Routes  []route `json:"routes"`
}

// route represents a single route alternative.
type route struct {
	Geometry geometry `json:"geometry"`
	Distance float64  `json:"distance"` // meters
	Duration float64  `json:"duration"` // seconds
}

// geometry is the GeoJSON LineString geometry of a route. Coordinates are
// [lon, lat] pairs per the GeoJSON convention.
type geometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}
