// Package setflag implements a flag.Value accepting a comma-separated subset
// of a fixed option list, used to select which stages of a command run.
package setflag

import (
	"fmt"
	"sort"
	"strings"
)

func New(options ...string) *SetFlag {
	sf := &SetFlag{
		values:  make(map[string]struct{}, len(options)),
		options: options,
	}
	return sf
}

type SetFlag struct {
	options []string
	values  map[string]struct{}
}

// List returns the selected values in a stable order. If nothing was
// selected, every option is returned: an unset flag means "run everything".
func (sf *SetFlag) List() []string {
	if len(sf.values) == 0 {
		return sf.options
	}
	var values []string
	for k := range sf.values {
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}

// Has reports whether the given option was selected (or the flag was unset).
func (sf *SetFlag) Has(option string) bool {
	if len(sf.values) == 0 {
		return true
	}
	_, has := sf.values[option]
	return has
}

func (sf *SetFlag) String() string {
	return strings.Join(sf.List(), ", ")
}

func (sf *SetFlag) Set(value string) error {
	for _, value := range strings.Split(value, ",") {
		value = strings.TrimSpace(value)
		valid := false
		for _, opt := range sf.options {
			if opt == value {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unsupported value '%s'", value)
		}
		sf.values[value] = struct{}{}
	}
	return nil
}
