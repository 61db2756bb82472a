package query

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/example/coffee-sales/pkg/sale"
)

// ParseFilterArgs builds a FilterSpec from "field=value1,value2" arguments.
// Repeating a field adds to its selected values.
func ParseFilterArgs(args []string) (FilterSpec, error) {
	spec := FilterSpec{}
	for _, arg := range args {
		name, values, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q: expected field=value[,value...]", arg)
		}
		f, err := sale.ParseField(name)
		if err != nil {
			return nil, err
		}
		spec[f] = append(spec[f], splitValues(values)...)
	}
	return spec, nil
}

// FilterSpecFromValues builds a FilterSpec from URL query parameters named after fields.
// Parameters listed in reserved are skipped; any other unknown name is an error.
func FilterSpecFromValues(values url.Values, reserved ...string) (FilterSpec, error) {
	skip := make(map[string]bool, len(reserved))
	for _, r := range reserved {
		skip[r] = true
	}

	spec := FilterSpec{}
	for name, raw := range values {
		if skip[name] {
			continue
		}
		f, err := sale.ParseField(name)
		if err != nil {
			return nil, err
		}
		for _, v := range raw {
			spec[f] = append(spec[f], splitValues(v)...)
		}
	}
	return spec, nil
}

func splitValues(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
