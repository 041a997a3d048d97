package prefs

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/bitmeter/internal/errors"
	"github.com/rileyhilliard/bitmeter/internal/store"
)

// Backend persists the bare-name preference mapping. *store.PreferenceStore
// implements it.
type Backend interface {
	LoadAll(ctx context.Context) (map[string]string, error)
	SaveAll(ctx context.Context, current map[string]string) (store.SaveResult, error)
}

// RGB is a colour preference.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the stored tuple form.
func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Pair is a two-integer preference such as size or position.
type Pair struct {
	A, B int
}

// String returns the stored tuple form.
func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.A, p.B)
}

// Set is one client's preferences: the snapshot loaded from the backend,
// staged edits layered on top, and the defaults behind both.
//
// The snapshot is loaded exactly once by Open. Edits stay in memory until
// Save. Two Sets over the same backend do not see each other's edits, and
// the last one to save a given name wins.
type Set struct {
	backend  Backend
	defaults map[string]string
	values   map[string]string
	stored   map[string]bool
}

// Open loads the stored preferences from backend.
func Open(ctx context.Context, backend Backend, defaults map[string]string) (*Set, error) {
	s := &Set{
		backend:  backend,
		defaults: defaults,
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the snapshot with the backend's current contents,
// discarding staged edits.
func (s *Set) Reload(ctx context.Context) error {
	values, err := s.backend.LoadAll(ctx)
	if err != nil {
		return err
	}
	if values == nil {
		values = make(map[string]string)
	}
	s.values = values
	s.stored = make(map[string]bool, len(values))
	for name := range values {
		s.stored[name] = true
	}
	return nil
}

// Get returns the stored or staged value of name, falling back to the
// defaults. ok is false when neither has it.
func (s *Set) Get(name string) (string, bool) {
	if v, ok := s.values[name]; ok {
		return v, true
	}
	v, ok := s.defaults[name]
	return v, ok
}

// IsStored reports whether name came from the backend (as opposed to a
// default or a staged edit).
func (s *Set) IsStored(name string) bool {
	return s.stored[name]
}

// Names returns every name with a value, stored or default, sorted.
func (s *Set) Names() []string {
	seen := make(map[string]bool, len(s.values)+len(s.defaults))
	for name := range s.values {
		seen[name] = true
	}
	for name := range s.defaults {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Number returns name parsed as a base-10 integer.
func (s *Set) Number(name string) (int, error) {
	raw, err := s.require(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.NewInvalidPreference(name, raw, "an integer", err)
	}
	return n, nil
}

// Structured returns name parsed as a literal (number, boolean or tuple).
func (s *Set) Structured(name string) (Value, error) {
	raw, err := s.require(name)
	if err != nil {
		return Value{}, err
	}
	v, err := ParseLiteral(raw)
	if err != nil {
		return Value{}, errors.NewInvalidPreference(name, raw, "a number, boolean or tuple", err)
	}
	return v, nil
}

// Bool returns name as a boolean literal.
func (s *Set) Bool(name string) (bool, error) {
	v, err := s.Structured(name)
	if err != nil {
		return false, err
	}
	if v.Kind != KindBool {
		raw, _ := s.Get(name)
		return false, errors.NewInvalidPreference(name, raw, "True or False", nil)
	}
	return v.Bool, nil
}

// Color returns name as an RGB triple.
func (s *Set) Color(name string) (RGB, error) {
	raw, err := s.require(name)
	if err != nil {
		return RGB{}, err
	}
	c, err := parseColour(raw)
	if err != nil {
		return RGB{}, errors.NewInvalidPreference(name, raw, "a colour like (255, 0, 0)", err)
	}
	return c, nil
}

// Pair returns name as a two-integer tuple.
func (s *Set) Pair(name string) (Pair, error) {
	raw, err := s.require(name)
	if err != nil {
		return Pair{}, err
	}
	p, err := parsePair(raw)
	if err != nil {
		return Pair{}, errors.NewInvalidPreference(name, raw, "a pair like (150, 85)", err)
	}
	return p, nil
}

// Set stages value under name. Nothing is written until Save.
func (s *Set) Set(name string, value any) {
	s.values[name] = Format(value)
}

// Save writes staged values back through the backend. Only values that
// differ from what is stored are written.
func (s *Set) Save(ctx context.Context) (store.SaveResult, error) {
	result, err := s.backend.SaveAll(ctx, s.values)
	if err != nil {
		return result, err
	}
	for name := range s.values {
		s.stored[name] = true
	}
	return result, nil
}

func (s *Set) require(name string) (string, error) {
	raw, ok := s.Get(name)
	if !ok {
		return "", errors.New(errors.ErrPrefs,
			fmt.Sprintf("Preference '%s' is not set and has no default", name),
			"Set it with 'bitmeter prefs set "+name+" <value>'")
	}
	return raw, nil
}

// Format returns the stored string form of a preference value.
func Format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return formatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func parseColour(raw string) (RGB, error) {
	v, err := ParseLiteral(raw)
	if err != nil {
		return RGB{}, err
	}
	ints, ok := v.Ints()
	if !ok || len(ints) != 3 {
		return RGB{}, fmt.Errorf("expected three whole numbers")
	}
	for _, c := range ints {
		if c < 0 || c > 255 {
			return RGB{}, fmt.Errorf("channel %d out of range 0-255", c)
		}
	}
	return RGB{R: uint8(ints[0]), G: uint8(ints[1]), B: uint8(ints[2])}, nil
}

func parsePair(raw string) (Pair, error) {
	v, err := ParseLiteral(raw)
	if err != nil {
		return Pair{}, err
	}
	ints, ok := v.Ints()
	if !ok || len(ints) != 2 {
		return Pair{}, fmt.Errorf("expected two whole numbers")
	}
	return Pair{A: ints[0], B: ints[1]}, nil
}
