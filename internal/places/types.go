// Request and response types for the Places API.

package places

import "fmt"

// Location is the outcome of a coordinates lookup.
type Location struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	PlaceName string  `json:"placeName,omitempty"`
}

// Photo is a photo reference returned by a search, in the service's ranking
// order.
type Photo struct {
	// Name is the opaque resource name used to fetch the media.
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx,omitempty"`
	HeightPx int    `json:"heightPx,omitempty"`
}

// Place is one search match.
type Place struct {
	ID          string         `json:"id"`
	DisplayName *LocalizedText `json:"displayName,omitempty"`
	Location    *LatLng        `json:"location,omitempty"`
	Photos      []Photo        `json:"photos,omitempty"`
}

// LocalizedText is a text in a given language.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// LatLng is a geographic point.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type searchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	MaxResultCount int    `json:"maxResultCount"`
}

type searchTextResponse struct {
	Places []Place `json:"places"`
}

// Error is an error response from the Places API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("places API error %d %s: %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("places API error %d: %s", e.Code, e.Message)
}

type errorResponse struct {
	Error *Error `json:"error"`
}
