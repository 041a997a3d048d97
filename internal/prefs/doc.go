// Package prefs provides typed access to the client's stored preferences.
//
// Values are kept as strings in the shared config table, in the textual form
// other BitMeter clients use: integers ("1000"), booleans ("True") and tuples
// ("(255,0,0)"). Typed views are derived on demand and a value that does not
// parse is reported as an errors.ErrPrefs error, never silently replaced by
// its default.
//
// Tuples and booleans are read by ParseLiteral, which accepts literals only.
package prefs
