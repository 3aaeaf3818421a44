package validators

import (
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/reception-scheduler/internal/httperr"
)

const (
	MinProviderName = 3
	MinCageName     = 3
	MinProductName  = 2
)

// Named is the part of a catalogue record that name rules look at.
type Named struct {
	ID   uint
	Name string
}

// CheckName trims name and validates it against the rest of the
// collection. selfID is the record being edited, 0 when creating. It returns
// the trimmed name.
func CheckName(name string, minLen int, existing []Named, selfID uint) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", httperr.ErrBusiness("name_required")
	}
	if utf8.RuneCountInString(name) < minLen {
		return "", httperr.ErrBusiness("name_too_short")
	}

	for _, n := range existing {
		if n.ID == selfID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(n.Name), name) {
			return "", httperr.ErrBusiness("name_taken")
		}
	}
	return name, nil
}

// ContainsFold reports whether name contains filter, ignoring case. An empty
// filter matches everything.
func ContainsFold(name, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}
