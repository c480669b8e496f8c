package requisite

import (
	"context"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/models"
)

const maxPageSize = 50

// Service encapsulates requisite catalog business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the fields accepted when creating a requisite.
type CreateInput struct {
	Name               string              `json:"name" binding:"required"`
	Format             string              `json:"format"`
	Description        string              `json:"description"`
	IsValidityRequired bool                `json:"isValidityRequired"`
	ValidityValue      int                 `json:"validityValue"`
	ValidityUnit       models.ValidityUnit `json:"validityUnit"`
}

// Create validates and stores a new requisite. Names are unique; validity
// value and unit are mandatory when the requisite requires validity.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Requisite, error) {
	if in.Name == "" {
		return nil, apperror.Validation("requisite name is required")
	}
	if in.IsValidityRequired {
		if in.ValidityValue <= 0 || !in.ValidityUnit.Valid() {
			return nil, apperror.Validation("validityValue and validityUnit are required when isValidityRequired is true")
		}
	}
	existing, err := s.repo.FindByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation("requisite %q already exists", in.Name)
	}

	unit := in.ValidityUnit
	if unit == "" {
		unit = models.UnitDay
	}
	req := &models.Requisite{
		Name:               in.Name,
		Format:             in.Format,
		Description:        in.Description,
		IsValidityRequired: in.IsValidityRequired,
		ValidityValue:      in.ValidityValue,
		ValidityUnit:       unit,
		IsActive:           true,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Find returns a page of requisites, optionally filtered by a
// case-insensitive name match.
func (s *Service) Find(ctx context.Context, page, size int, name string) ([]models.Requisite, int64, error) {
	if page < 1 {
		return nil, 0, apperror.Validation("page must be greater than or equal to 1")
	}
	if size != 0 && (size < 1 || size > maxPageSize) {
		return nil, 0, apperror.Validation("page size must be between 1 and %d", maxPageSize)
	}
	offset := (page - 1) * size
	return s.repo.FindAndCount(ctx, name, offset, size)
}

// UpdateInput carries the optional fields of a requisite update.
type UpdateInput struct {
	Name               *string              `json:"name"`
	Format             *string              `json:"format"`
	Description        *string              `json:"description"`
	IsValidityRequired *bool                `json:"isValidityRequired"`
	ValidityValue      *int                 `json:"validityValue"`
	ValidityUnit       *models.ValidityUnit `json:"validityUnit"`
	IsActive           *bool                `json:"isActive"`
}

// Update applies the provided fields to an existing requisite.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.Requisite, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperror.NotFound("requisite with id %q not found", id)
	}
	if in.Name != nil && *in.Name != req.Name {
		dup, err := s.repo.FindByName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, apperror.Validation("requisite %q already exists", *in.Name)
		}
		req.Name = *in.Name
	}
	if in.Format != nil {
		req.Format = *in.Format
	}
	if in.Description != nil {
		req.Description = *in.Description
	}
	if in.IsValidityRequired != nil {
		req.IsValidityRequired = *in.IsValidityRequired
	}
	if in.ValidityValue != nil {
		req.ValidityValue = *in.ValidityValue
	}
	if in.ValidityUnit != nil {
		if !in.ValidityUnit.Valid() {
			return nil, apperror.Validation("invalid validity unit %q", *in.ValidityUnit)
		}
		req.ValidityUnit = *in.ValidityUnit
	}
	if in.IsActive != nil {
		req.IsActive = *in.IsActive
	}
	if req.IsValidityRequired && (req.ValidityValue <= 0 || !req.ValidityUnit.Valid()) {
		return nil, apperror.Validation("validityValue and validityUnit are required when isValidityRequired is true")
	}
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
