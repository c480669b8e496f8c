// Package assignment derives the requisite set a new user must satisfy
// from their profile, hiring type and service assignments.
package assignment

import (
	"context"
	"strings"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/catalog"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/requisite"
)

// Resolver computes the deduplicated union of requisites referenced by a
// profile, a hiring type and a set of services. It has no side effects.
type Resolver struct {
	catalog    catalog.Repositories
	requisites requisite.Repository
}

func NewResolver(cat catalog.Repositories, reqs requisite.Repository) *Resolver {
	return &Resolver{catalog: cat, requisites: reqs}
}

// Resolve validates the assignment and returns the applicable requisites.
//
// Validation failures: empty or duplicated service names, a service outside
// the requested group, or a profile that is not common to every service.
// Unresolvable names fail with NotFound.
func (r *Resolver) Resolve(ctx context.Context, profileName, hiringType, groupName string, serviceNames []string) ([]models.Requisite, error) {
	if len(serviceNames) == 0 {
		return nil, apperror.Validation("at least one service is required")
	}
	seen := make(map[string]struct{}, len(serviceNames))
	for _, name := range serviceNames {
		if _, dup := seen[name]; dup {
			return nil, apperror.Validation("duplicate services are not allowed")
		}
		seen[name] = struct{}{}
	}

	group, err := r.catalog.GroupByName(ctx, groupName)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NotFound("group %q does not exist", groupName)
	}

	services, err := r.catalog.ServicesByNames(ctx, serviceNames)
	if err != nil {
		return nil, err
	}
	if missing := missingNames(serviceNames, services); len(missing) > 0 {
		return nil, apperror.NotFound("services [%s] do not exist", strings.Join(missing, ", "))
	}
	var outsideGroup []string
	for _, svc := range services {
		if svc.GroupName != groupName {
			outsideGroup = append(outsideGroup, svc.Name)
		}
	}
	if len(outsideGroup) > 0 {
		return nil, apperror.Validation("services [%s] do not belong to group %q", strings.Join(outsideGroup, ", "), groupName)
	}
	for _, svc := range services {
		if !contains(svc.Profiles, profileName) {
			return nil, apperror.Validation("profile %q is not common to all selected services", profileName)
		}
	}

	profile, err := r.catalog.ProfileByName(ctx, profileName)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("profile %q does not exist", profileName)
	}
	hiring, err := r.catalog.HiringByType(ctx, hiringType)
	if err != nil {
		return nil, err
	}
	if hiring == nil {
		return nil, apperror.NotFound("hiring type %q does not exist", hiringType)
	}

	ids := append([]string{}, profile.RequisiteIDs...)
	ids = append(ids, hiring.RequisiteIDs...)
	for _, svc := range services {
		ids = append(ids, svc.RequisiteIDs...)
	}
	// FindByIDs deduplicates by identity, so overlapping sets collapse here.
	return r.requisites.FindByIDs(ctx, ids)
}

func missingNames(wanted []string, found []models.Service) []string {
	var missing []string
	for _, name := range wanted {
		present := false
		for _, svc := range found {
			if svc.Name == name {
				present = true
				break
			}
		}
		if !present {
			missing = append(missing, name)
		}
	}
	return missing
}

func contains(list []string, v string) bool {
	for _, have := range list {
		if have == v {
			return true
		}
	}
	return false
}
