package service

import (
	"sort"

	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/domain"
)

const DefaultRecentVerifiers = 10

// Summarize derives a stand's check-in summary. The listing itself counts
// as the first verification, and check-ins by the submitter never make a
// stand community-verified. profiles may be missing entries; those
// check-ins fall back to their anonymous name.
func Summarize(submitterID uuid.UUID, checkIns []domain.CheckIn, profiles map[uuid.UUID]domain.Profile, recent int) domain.CheckInSummary {
	if recent <= 0 {
		recent = DefaultRecentVerifiers
	}

	ordered := make([]domain.CheckIn, len(checkIns))
	copy(ordered, checkIns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	summary := domain.CheckInSummary{
		TotalCount:      len(ordered) + 1,
		RecentVerifiers: []domain.CheckInEntry{},
	}

	for _, c := range ordered {
		if !c.IsBy(submitterID) {
			summary.IsVerifiedByCommunity = true
			break
		}
	}

	for i, c := range ordered {
		if i >= recent {
			break
		}
		summary.RecentVerifiers = append(summary.RecentVerifiers, Entry(c, submitterID, profiles))
	}

	if len(ordered) > 0 {
		last := Entry(ordered[0], submitterID, profiles)
		summary.LastCheckIn = &last
	}

	return summary
}

// Entry resolves a check-in's display name and submitter flag.
func Entry(c domain.CheckIn, submitterID uuid.UUID, profiles map[uuid.UUID]domain.Profile) domain.CheckInEntry {
	return domain.CheckInEntry{
		CheckIn:     c,
		DisplayName: DisplayName(c, profiles),
		IsSubmitter: c.IsBy(submitterID),
	}
}

// DisplayName is the author's full name, else the anonymous name given
// with the check-in, else "Anonymous".
func DisplayName(c domain.CheckIn, profiles map[uuid.UUID]domain.Profile) string {
	if c.UserID != nil {
		if p, ok := profiles[*c.UserID]; ok {
			if name := p.FullName(); name != "" {
				return name
			}
		}
	}
	if c.AnonymousName != "" {
		return c.AnonymousName
	}

	return domain.AnonymousDisplayName
}

func userIDs(checkIns []domain.CheckIn) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(checkIns))
	var ids []uuid.UUID
	for _, c := range checkIns {
		if c.UserID == nil {
			continue
		}
		if _, ok := seen[*c.UserID]; ok {
			continue
		}
		seen[*c.UserID] = struct{}{}
		ids = append(ids, *c.UserID)
	}

	return ids
}
