package entity

// Place is a point of interest returned by the mapping provider's text
// search. Places live next to the inventory but are never part of it.
type Place struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Location LatLng `json:"location"`

	// Computed per active reference, same policy as Billboard.
	Visible bool `json:"visible"`
}
