package airports

import (
	"context"
	"fmt"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/validation"
)

type AirportInput struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Code     string `json:"code" validate:"required,iata"`
}

// checkRules stops at the first failure. existing is nil on create.
func (s *AirportService) checkRules(ctx context.Context, in AirportInput, existing *domain.Airport) error {
	if existing != nil &&
		in.Name == existing.Name &&
		in.Location == existing.Location &&
		in.Code == existing.Code {
		return fmt.Errorf("%w: airport %s", domain.ErrNoChange, existing.ID)
	}

	if err := validation.Struct(in); err != nil {
		return err
	}

	dup, err := s.repo.FindByNameAndCode(ctx, in.Name, in.Code)
	if err != nil {
		return fmt.Errorf("find duplicate airport: %w", err)
	}
	if dup != nil && (existing == nil || dup.ID != existing.ID) {
		return fmt.Errorf("%w: airport %s (%s)", domain.ErrDuplicateRecord, in.Name, in.Code)
	}
	return nil
}
