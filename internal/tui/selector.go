package tui

// selector cycles through filter options. When allOption is set, index 0
// means "All" (an empty filter value).
type selector struct {
	options   []string
	index     int
	allOption bool
}

func (s *selector) setOptions(options []string) {
	s.options = options
	max := len(options)
	if s.allOption {
		max++
	}
	if s.index >= max {
		s.index = 0
	}
}

// cycle moves the selection and reports whether it changed.
func (s *selector) cycle(delta int) bool {
	n := len(s.options)
	if s.allOption {
		n++
	}
	if n <= 1 {
		return false
	}
	s.index = (s.index + delta + n) % n
	return true
}

// value returns the active filter value, "" for All (or no options yet).
func (s *selector) value() string {
	if len(s.options) == 0 {
		return ""
	}
	if s.allOption {
		if s.index == 0 {
			return ""
		}
		return s.options[s.index-1]
	}
	return s.options[s.index]
}

// label returns the display name of the selection.
func (s *selector) label() string {
	if s.allOption && s.index == 0 {
		return "All"
	}
	if v := s.value(); v != "" {
		return v
	}
	return "—"
}
