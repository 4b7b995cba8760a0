package seed

import (
	"sync"

	"github.com/pkg/errors"
)

// Switcher selects the active preset and publishes its text to a Holder
type Switcher struct {
	mu     sync.Mutex
	holder *Holder
	active string
	user   string
}

// NewSwitcher creates a switcher writing to holder with initial preset active
func NewSwitcher(holder *Holder, initial string) (*Switcher, error) {
	s := &Switcher{holder: holder}
	if err := s.Select(initial); err != nil {
		return nil, err
	}
	return s, nil
}

// Select activates a preset by name
func (s *Switcher) Select(name string) error {
	if !IsPreset(name) {
		return errors.Wrapf(ErrUnknownPreset, "select %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.user
	if name != PresetUser {
		sample, err := Sample(name)
		if err != nil {
			return err
		}
		text = sample
	}
	s.active = name
	s.holder.Set(text)
	return nil
}

// SelectIndex activates the preset at position i of Presets
func (s *Switcher) SelectIndex(i int) error {
	names := Presets()
	if i < 0 || i >= len(names) {
		return errors.Wrapf(ErrUnknownPreset, "index %d", i)
	}
	return s.Select(names[i])
}

// Next cycles to the following preset and returns its name
func (s *Switcher) Next() string {
	names := Presets()
	current := s.Active()
	next := names[0]
	for i, n := range names {
		if n == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	// Names come from Presets, selection cannot fail
	_ = s.Select(next)
	return next
}

// Active returns the selected preset name
func (s *Switcher) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetUser replaces the user slot text, publishing it when the user preset is active
func (s *Switcher) SetUser(text string) {
	text = StripBOM(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = text
	if s.active == PresetUser {
		s.holder.Set(text)
	}
}

// User returns the user slot text
func (s *Switcher) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}
