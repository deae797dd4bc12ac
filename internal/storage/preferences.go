package storage

import "fyne.io/fyne/v2"

// Preferences stores values in the Fyne application preferences, which live
// for the lifetime of the user profile
type Preferences struct {
	prefs fyne.Preferences
}

// NewPreferences wraps the given Fyne preferences
func NewPreferences(prefs fyne.Preferences) *Preferences {
	return &Preferences{prefs: prefs}
}

// Get returns the value for key. Fyne does not distinguish an empty string
// from a missing key, so empty values are reported as missing.
func (p *Preferences) Get(key string) (string, bool, error) {
	v := p.prefs.String(key)
	return v, v != "", nil
}

// Set stores value under key
func (p *Preferences) Set(key, value string) error {
	p.prefs.SetString(key, value)
	return nil
}

// Remove deletes key
func (p *Preferences) Remove(key string) error {
	p.prefs.RemoveValue(key)
	return nil
}
