// Package audit exposes the read side of the immutable history: transfer
// records and user action records, newest first. Writes happen exclusively
// inside the mutation transactions of the inventory and transfer use cases.
package audit

import (
	"context"

	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/domain/repository"
)

// UseCase serves paginated history listings. Ordering is (timestamp, id)
// descending, so pages taken at different times never show gaps or
// duplicates for already-listed rows.
type UseCase struct {
	transferRepo repository.TransferRecordRepository
	actionRepo   repository.ActionRecordRepository
}

// NewUseCase builds the use case.
func NewUseCase(transferRepo repository.TransferRecordRepository, actionRepo repository.ActionRecordRepository) *UseCase {
	return &UseCase{transferRepo: transferRepo, actionRepo: actionRepo}
}

// ListTransfers returns transfer history matching the filter.
func (uc *UseCase) ListTransfers(_ context.Context, filter repository.TransferFilter, limit, offset int) ([]*entity.TransferRecord, error) {
	return uc.transferRepo.List(filter, clampLimit(limit), clampOffset(offset))
}

// ListActions returns the user action trail matching the filter.
func (uc *UseCase) ListActions(_ context.Context, filter repository.ActionFilter, limit, offset int) ([]*entity.ActionRecord, error) {
	return uc.actionRepo.List(filter, clampLimit(limit), clampOffset(offset))
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
