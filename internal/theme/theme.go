// Package theme holds the light and dark colour sets shared by the server
// renderers and the terminal client.
package theme

import "strings"

type Colors struct {
	Name        string `json:"name"`
	Background  string `json:"background"`
	Text        string `json:"text"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	Card        string `json:"card"`
	Border      string `json:"border"`
	Subcard     string `json:"subcard"`
	Navbar      string `json:"navbar"`
	ModalButton string `json:"modal_button"`
	EmptyState  string `json:"empty_state"`
}

var Light = Colors{
	Name:        "light",
	Background:  "#f8f7ea",
	Text:        "#393939",
	Primary:     "#A081C3",
	Secondary:   "#929292",
	Card:        "#ffffff",
	Border:      "#e1e1e1",
	Subcard:     "#ffffff",
	Navbar:      "#ffffff",
	ModalButton: "#A081C3",
	EmptyState:  "#e1e1e1",
}

var Dark = Colors{
	Name:        "dark",
	Background:  "#1a1a1a",
	Text:        "#ffffff",
	Primary:     "#A081C3",
	Secondary:   "#929292",
	Card:        "#2d2d2d",
	Border:      "#404040",
	Subcard:     "#3D3D3D",
	Navbar:      "#f8f7ea",
	ModalButton: "#ffffff",
	EmptyState:  "#404040",
}

// For picks the colour set for the dark-mode flag.
func For(dark bool) Colors {
	if dark {
		return Dark
	}
	return Light
}

// Named resolves "dark" or "light"; anything else is light.
func Named(name string) Colors {
	return For(strings.EqualFold(strings.TrimSpace(name), Dark.Name))
}
