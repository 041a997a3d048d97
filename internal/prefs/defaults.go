package prefs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Preference names. Stored keys are these with the client prefix prepended.
const (
	DownloadColour   = "dlcolour"
	UploadColour     = "ulcolour"
	OverlapColour    = "olcolour"
	BackgroundColour = "bgcolour"
	Scale            = "scale"
	Size             = "size"
	Position         = "position"
	Opacity          = "opacity"
	Float            = "float"
	ClickThrough     = "clickthru"
)

// Opacity bounds, in percent.
const (
	MinOpacity = 10
	MaxOpacity = 100
)

// Defaults returns a fresh copy of the built-in preference values.
func Defaults() map[string]string {
	return map[string]string{
		DownloadColour:   "(255,0,0)",
		UploadColour:     "(0,255,0)",
		OverlapColour:    "(255,255,0)",
		BackgroundColour: "(255,255,255)",
		Size:             "(150,85)",
		Position:         "(100,100)",
		Scale:            "1000",
		Opacity:          "70",
		Float:            "True",
		ClickThrough:     "False",
	}
}

// KnownNames returns every recognised preference name, sorted.
func KnownNames() []string {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnown reports whether name is a recognised preference.
func IsKnown(name string) bool {
	_, ok := checks[name]
	return ok
}

// checks validate a raw value for each recognised preference.
var checks = map[string]func(string) error{
	DownloadColour:   checkColour,
	UploadColour:     checkColour,
	OverlapColour:    checkColour,
	BackgroundColour: checkColour,
	Scale:            checkScale,
	Size:             checkPair,
	Position:         checkPair,
	Opacity:          checkOpacity,
	Float:            checkBool,
	ClickThrough:     checkBool,
}

// Check validates value for the named preference before it is staged.
// Unknown names are rejected.
func Check(name, value string) error {
	check, ok := checks[name]
	if !ok {
		return fmt.Errorf("unknown preference %q (known: %s)", name, strings.Join(KnownNames(), ", "))
	}
	return check(value)
}

func checkColour(value string) error {
	_, err := parseColour(value)
	return err
}

// checkScale rejects empty and zero scales; the graph divides by it.
func checkScale(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("scale must be a whole number of kB/s")
	}
	if n <= 0 {
		return fmt.Errorf("scale must be greater than zero")
	}
	return nil
}

func checkOpacity(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("opacity must be a whole number")
	}
	if n < MinOpacity || n > MaxOpacity {
		return fmt.Errorf("opacity must be between %d and %d", MinOpacity, MaxOpacity)
	}
	return nil
}

func checkPair(value string) error {
	_, err := parsePair(value)
	return err
}

func checkBool(value string) error {
	v, err := ParseLiteral(value)
	if err != nil {
		return err
	}
	if v.Kind != KindBool {
		return fmt.Errorf("expected True or False")
	}
	return nil
}
