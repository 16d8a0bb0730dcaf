package geo

import (
	"encoding/json"
	"testing"
)

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{name: "valid Amsterdam", coord: Coordinate{Latitude: 52.3676, Longitude: 4.9041}},
		{name: "valid equator", coord: Coordinate{Latitude: 0, Longitude: 0}},
		{name: "valid extreme lat", coord: Coordinate{Latitude: 90, Longitude: 0}},
		{name: "valid extreme lon", coord: Coordinate{Latitude: 0, Longitude: -180}},
		{name: "lat too high", coord: Coordinate{Latitude: 90.1, Longitude: 0}, wantErr: true},
		{name: "lat too low", coord: Coordinate{Latitude: -90.1, Longitude: 0}, wantErr: true},
		{name: "lon too high", coord: Coordinate{Latitude: 0, Longitude: 180.1}, wantErr: true},
		{name: "lon too low", coord: Coordinate{Latitude: 0, Longitude: -180.1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.coord.Validate("origin")
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestCoordinate_Validate_BothAxesReported(t *testing.T) {
	errs := Coordinate{Latitude: 91, Longitude: 181}.Validate("origin")
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(errs))
	}
	if errs[0].Path != "origin.latitude" {
		t.Errorf("unexpected path %q", errs[0].Path)
	}
	if errs[1].Path != "origin.longitude" {
		t.Errorf("unexpected path %q", errs[1].Path)
	}
}

func TestCoordinate_JSONRoundTrip(t *testing.T) {
	coords := []Coordinate{
		{Latitude: 52.3676, Longitude: 4.9041},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 0, Longitude: 0},
		{Latitude: 90, Longitude: -180},
	}

	for _, original := range coords {
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded Coordinate
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if decoded != original {
			t.Errorf("round trip changed value: %+v != %+v", decoded, original)
		}
	}
}

func TestDecodeCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     Coordinate
		wantPath string // empty means success expected
	}{
		{
			name:  "valid",
			input: `{"latitude": 37.8, "longitude": -122.4}`,
			want:  Coordinate{Latitude: 37.8, Longitude: -122.4},
		},
		{
			name:     "missing latitude",
			input:    `{"longitude": -122.4}`,
			wantPath: "origin.latitude",
		},
		{
			name:     "missing longitude",
			input:    `{"latitude": 37.8}`,
			wantPath: "origin.longitude",
		},
		{
			name:     "latitude out of range",
			input:    `{"latitude": 91, "longitude": 0}`,
			wantPath: "origin.latitude",
		},
		{
			name:     "not an object",
			input:    `[37.8, -122.4]`,
			wantPath: "origin",
		},
		{
			name:     "wrong value type",
			input:    `{"latitude": "37.8", "longitude": -122.4}`,
			wantPath: "origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCoordinate([]byte(tt.input), "origin")
			if tt.wantPath == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("expected %+v, got %+v", tt.want, got)
				}
				return
			}

			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Errors[0].Path != tt.wantPath {
				t.Errorf("expected path %q, got %q", tt.wantPath, verr.Errors[0].Path)
			}
		})
	}
}

func TestDecodeWaypoint(t *testing.T) {
	got, err := DecodeWaypoint([]byte(`{"coordinates": {"latitude": 37.8, "longitude": -122.4}, "name": "Ferry Building"}`), "waypoints[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Coordinates != (Coordinate{Latitude: 37.8, Longitude: -122.4}) {
		t.Errorf("unexpected coordinates %+v", got.Coordinates)
	}
	if got.Name == nil || *got.Name != "Ferry Building" {
		t.Errorf("unexpected name %v", got.Name)
	}

	// Name is optional.
	got, err = DecodeWaypoint([]byte(`{"coordinates": {"latitude": 0, "longitude": 0}}`), "waypoints[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != nil {
		t.Errorf("expected nil name, got %v", got.Name)
	}
}

func TestDecodeWaypoint_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{
			name:     "missing coordinates",
			input:    `{"name": "somewhere"}`,
			wantPath: "waypoints[2].coordinates",
		},
		{
			name:     "null coordinates",
			input:    `{"coordinates": null}`,
			wantPath: "waypoints[2].coordinates",
		},
		{
			name:     "out of range latitude",
			input:    `{"coordinates": {"latitude": 91, "longitude": 0}}`,
			wantPath: "waypoints[2].coordinates.latitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWaypoint([]byte(tt.input), "waypoints[2]")
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Errors[0].Path != tt.wantPath {
				t.Errorf("expected path %q, got %q", tt.wantPath, verr.Errors[0].Path)
			}
		})
	}
}

func TestDecodeCoordinateList(t *testing.T) {
	coords, err := DecodeCoordinateList([]byte(`[{"latitude": 1, "longitude": 2}, {"latitude": 3, "longitude": 4}]`), "polyline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coords) != 2 {
		t.Fatalf("expected 2 coordinates, got %d", len(coords))
	}
	if coords[0] != (Coordinate{Latitude: 1, Longitude: 2}) || coords[1] != (Coordinate{Latitude: 3, Longitude: 4}) {
		t.Errorf("order not preserved: %+v", coords)
	}

	// Every invalid element is reported, with its index in the path.
	_, err = DecodeCoordinateList([]byte(`[{"latitude": 91, "longitude": 0}, {"latitude": 0, "longitude": 0}, {"longitude": 5}]`), "polyline")
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
	if verr.Errors[0].Path != "polyline[0].latitude" {
		t.Errorf("unexpected path %q", verr.Errors[0].Path)
	}
	if verr.Errors[1].Path != "polyline[2].latitude" {
		t.Errorf("unexpected path %q", verr.Errors[1].Path)
	}
}

func TestDecodeWaypointList_NullIsEmpty(t *testing.T) {
	wps, err := DecodeWaypointList([]byte(`null`), "waypoints")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wps) != 0 {
		t.Errorf("expected empty list, got %d entries", len(wps))
	}

	wps, err = DecodeWaypointList(nil, "waypoints")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wps) != 0 {
		t.Errorf("expected empty list, got %d entries", len(wps))
	}
}
