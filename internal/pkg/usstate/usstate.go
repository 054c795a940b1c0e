// Package usstate maps US state names to postal abbreviations and matches
// free-text addresses against them.
//
// MatchesAddress is a substring heuristic, not geocoding: it looks for
// ", XX " / ", XX," / a trailing ", XX" in the address. Addresses that
// spell the state out, or that contain a matching token elsewhere, give
// false negatives or false positives.
package usstate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

type State struct {
	Name string `json:"name"`
	Abbr string `json:"abbr"`

	pattern *regexp2.Regexp
}

var byName = map[string]string{
	"Alabama":              "AL",
	"Alaska":               "AK",
	"Arizona":              "AZ",
	"Arkansas":             "AR",
	"California":           "CA",
	"Colorado":             "CO",
	"Connecticut":          "CT",
	"Delaware":             "DE",
	"District of Columbia": "DC",
	"Florida":              "FL",
	"Georgia":              "GA",
	"Hawaii":               "HI",
	"Idaho":                "ID",
	"Illinois":             "IL",
	"Indiana":              "IN",
	"Iowa":                 "IA",
	"Kansas":               "KS",
	"Kentucky":             "KY",
	"Louisiana":            "LA",
	"Maine":                "ME",
	"Maryland":             "MD",
	"Massachusetts":        "MA",
	"Michigan":             "MI",
	"Minnesota":            "MN",
	"Mississippi":          "MS",
	"Missouri":             "MO",
	"Montana":              "MT",
	"Nebraska":             "NE",
	"Nevada":               "NV",
	"New Hampshire":        "NH",
	"New Jersey":           "NJ",
	"New Mexico":           "NM",
	"New York":             "NY",
	"North Carolina":       "NC",
	"North Dakota":         "ND",
	"Ohio":                 "OH",
	"Oklahoma":             "OK",
	"Oregon":               "OR",
	"Pennsylvania":         "PA",
	"Rhode Island":         "RI",
	"South Carolina":       "SC",
	"South Dakota":         "SD",
	"Tennessee":            "TN",
	"Texas":                "TX",
	"Utah":                 "UT",
	"Vermont":              "VT",
	"Virginia":             "VA",
	"Washington":           "WA",
	"West Virginia":        "WV",
	"Wisconsin":            "WI",
	"Wyoming":              "WY",
}

var (
	states []State
	index  = map[string]int{}
)

func init() {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		abbr := byName[name]
		// The lookahead keeps ", MI" from matching ", MIDLAND".
		pattern := regexp2.MustCompile(fmt.Sprintf(`, %s(?= |,|$)`, abbr), regexp2.None)

		states = append(states, State{Name: name, Abbr: abbr, pattern: pattern})
		index[strings.ToLower(name)] = i
		index[strings.ToLower(abbr)] = i
	}
}

// All returns every state ordered by name.
func All() []State {
	out := make([]State, len(states))
	copy(out, states)

	return out
}

// Lookup accepts a full state name or a postal abbreviation, in any case.
func Lookup(nameOrAbbr string) (State, bool) {
	i, ok := index[strings.ToLower(strings.TrimSpace(nameOrAbbr))]
	if !ok {
		return State{}, false
	}

	return states[i], true
}

func (s State) MatchesAddress(address string) bool {
	if s.pattern == nil {
		return false
	}

	ok, err := s.pattern.MatchString(address)

	return err == nil && ok
}
