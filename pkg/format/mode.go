package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FallbackColor is used for any mode outside the known enumeration.
const FallbackColor = "#aaa"

// Transport modes understood by the trip API.
const (
	ModeAir        = "air"
	ModeBicycle    = "bicycle"
	ModeBus        = "bus"
	ModeCableway   = "cableway"
	ModeWater      = "water"
	ModeFunicular  = "funicular"
	ModeLift       = "lift"
	ModeRail       = "rail"
	ModeMetro      = "metro"
	ModeTram       = "tram"
	ModeCoach      = "coach"
	ModeTrolleybus = "trolleybus"
	ModeMonorail   = "monorail"
	ModeTaxi       = "taxi"
	ModeCar        = "car"
	ModeScooter    = "scooter"
	ModeFoot       = "foot"
)

// Shared colours:
//   - foot and car are both drawn dark grey
//   - bus, coach and trolleybus share the road transit green
//   - metro and tram share yellow
//   - air, cableway, funicular, lift, monorail, taxi and water share the "other" red
var modeColors = map[string]string{
	ModeFoot:       "#444",
	ModeCar:        "#444",
	ModeBicycle:    "#5076D9",
	ModeScooter:    "#253664",
	ModeRail:       "#86BF8B",
	ModeBus:        "#25642A",
	ModeCoach:      "#25642A",
	ModeTrolleybus: "#25642A",
	ModeMetro:      "#D9B250",
	ModeTram:       "#D9B250",
	ModeWater:      "#81304C",
	ModeAir:        "#81304C",
	ModeCableway:   "#81304C",
	ModeFunicular:  "#81304C",
	ModeLift:       "#81304C",
	ModeMonorail:   "#81304C",
	ModeTaxi:       "#81304C",
}

// Modes returns every known mode in a stable order.
func Modes() []string {
	return []string{
		ModeFoot, ModeBicycle, ModeScooter, ModeCar, ModeTaxi,
		ModeBus, ModeCoach, ModeTrolleybus, ModeTram, ModeMetro,
		ModeRail, ModeMonorail, ModeWater, ModeAir,
		ModeCableway, ModeFunicular, ModeLift,
	}
}

// IsMode reports whether mode belongs to the known enumeration.
func IsMode(mode string) bool {
	_, ok := modeColors[strings.ToLower(mode)]
	return ok
}

// ColorForMode returns the hex colour used to draw legs of the given mode.
func ColorForMode(mode string) string {
	if c, ok := modeColors[strings.ToLower(mode)]; ok {
		return c
	}
	return FallbackColor
}

// ModeLabel returns a display label such as "Trolleybus".
func ModeLabel(mode string) string {
	return cases.Title(language.English).String(strings.ToLower(mode))
}
