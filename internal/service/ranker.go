package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/findlocalfirewood/firewood-api/internal/apperr"
	"github.com/findlocalfirewood/firewood-api/internal/domain"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/geo"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/usstate"
)

type SortMode string

const (
	SortByName     SortMode = "name"
	SortByDistance SortMode = "distance"
)

type RankOptions struct {
	// Origin is the caller's position. Without it no distances are known.
	Origin *geo.Point
	Sort   SortMode
	// State is a US state name or abbreviation; empty keeps every stand.
	State string
}

// RankStands filters stands by state and orders them. Stands without a
// known distance sort after every stand with one.
func RankStands(stands []domain.Stand, opts RankOptions) ([]domain.RankedStand, error) {
	const op = "service.RankStands"

	mode := opts.Sort
	if mode == "" {
		mode = SortByName
	}
	if mode != SortByName && mode != SortByDistance {
		return nil, apperr.ValidationFields(op, ErrUnknownSort, map[string]string{"sort": ErrUnknownSort.Error()})
	}

	if opts.Origin != nil {
		if err := opts.Origin.Validate(); err != nil {
			return nil, apperr.ValidationFields(op, err, map[string]string{"origin": err.Error()})
		}
	}

	var state *usstate.State
	if strings.TrimSpace(opts.State) != "" {
		s, ok := usstate.Lookup(opts.State)
		if !ok {
			err := fmt.Errorf("%w: %q", ErrUnknownState, opts.State)
			return nil, apperr.ValidationFields(op, err, map[string]string{"state": err.Error()})
		}
		state = &s
	}

	ranked := make([]domain.RankedStand, 0, len(stands))
	for _, s := range stands {
		if state != nil && !state.MatchesAddress(s.Address) {
			continue
		}

		r := domain.RankedStand{Stand: s}
		if opts.Origin != nil && s.Location != nil {
			d := geo.Haversine(*opts.Origin, *s.Location)
			r.DistanceMiles = &d
		}
		ranked = append(ranked, r)
	}

	switch mode {
	case SortByDistance:
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i].DistanceMiles, ranked[j].DistanceMiles
			switch {
			case a != nil && b != nil:
				if *a != *b {
					return *a < *b
				}
				return byName(ranked[i].Stand, ranked[j].Stand)
			case a != nil:
				return true
			case b != nil:
				return false
			}
			return byName(ranked[i].Stand, ranked[j].Stand)
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return byName(ranked[i].Stand, ranked[j].Stand)
		})
	}

	return ranked, nil
}

func byName(a, b domain.Stand) bool {
	an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
	if an != bn {
		return an < bn
	}

	return a.ID.String() < b.ID.String()
}
