package usecase

import (
	"context"
	"fmt"

	"github.com/Svaella/app-atension-api/internal/application/dto"
	"github.com/Svaella/app-atension-api/internal/domain/model"
	"github.com/Svaella/app-atension-api/internal/domain/port"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// GetAssessment retrieves a stored assessment by id.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute loads the record.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentView, error) {
	if req.ID <= 0 {
		return dto.AssessmentView{}, fmt.Errorf("%w: id must be positive, got %d", model.ErrInvalidInput, req.ID)
	}

	record, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.AssessmentView{}, fmt.Errorf("failed to get assessment: %w", err)
	}

	return dto.FromRecord(*record), nil
}

// ListAssessments returns the most recent stored assessments.
type ListAssessments struct {
	repo port.AssessmentRepository
}

// NewListAssessments creates a new ListAssessments use case.
func NewListAssessments(repo port.AssessmentRepository) *ListAssessments {
	return &ListAssessments{repo: repo}
}

// Execute lists records newest first. A non-positive limit selects the
// default; larger limits are capped.
func (uc *ListAssessments) Execute(ctx context.Context, req dto.ListAssessmentsRequest) (dto.ListAssessmentsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	records, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}

	views := make([]dto.AssessmentView, 0, len(records))
	for _, r := range records {
		views = append(views, dto.FromRecord(r))
	}
	return dto.ListAssessmentsResponse{Assessments: views}, nil
}
