package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/features/school/attendances/dto"
	attendanceRepo "attendance_backend/internals/features/school/attendances/repository"
	helper "attendance_backend/internals/helpers"
	"attendance_backend/internals/helpers/dbtime"
)

// SummaryQuery: both dates are required and inclusive.
type SummaryQuery struct {
	StartDate  dbtime.Date
	EndDate    dbtime.Date
	SubjectID  *uuid.UUID
	SearchTerm string
	Page       int
	PerPage    int
}

type SummaryPage struct {
	Rows       []dto.AttendanceSummary
	Total      int64
	Page       int
	PerPage    int
	PeriodDays int
	Filters    dto.SummaryFilters
}

func (p *SummaryPage) Pagination() helper.Pagination {
	return helper.BuildPaginationFromPage(p.Total, p.Page, p.PerPage)
}

// Aggregator computes per (student, subject) attendance percentages.
type Aggregator struct {
	DB *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{DB: db}
}

// Summarize is read-only. Under read committed it sees either the roster
// before a concurrent Record commits or the one after, never a partial one.
func (a *Aggregator) Summarize(ctx context.Context, q SummaryQuery) (*SummaryPage, error) {
	verr := NewValidationError()
	if q.StartDate.IsZero() {
		verr.Add("start_date", "The start date field is required.")
	}
	if q.EndDate.IsZero() {
		verr.Add("end_date", "The end date field is required.")
	}
	if !q.StartDate.IsZero() && !q.EndDate.IsZero() && q.StartDate.After(q.EndDate) {
		verr.Add("start_date", "The start date must be a date before or equal to end date.")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	paging := helper.NormalizePaging(q.Page, q.PerPage)
	filter := attendanceRepo.SummaryFilter{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		SubjectID: q.SubjectID,
		Search:    helper.NormalizeSearch(q.SearchTerm),
	}

	total, err := attendanceRepo.CountSummary(ctx, a.DB, filter)
	if err != nil {
		return nil, &StorageError{Op: "count attendance summary", Err: err}
	}

	rows := []attendanceRepo.SummaryRow{}
	if int64(paging.Offset()) < total {
		rows, err = attendanceRepo.ListSummary(ctx, a.DB, filter, paging.Limit(), paging.Offset())
		if err != nil {
			return nil, &StorageError{Op: "list attendance summary", Err: err}
		}
	}

	return &SummaryPage{
		Rows:       dto.FromSummaryRows(rows),
		Total:      total,
		Page:       paging.Page,
		PerPage:    paging.PerPage,
		PeriodDays: dbtime.DaysInclusive(q.StartDate, q.EndDate),
		Filters: dto.SummaryFilters{
			StartDate:  q.StartDate,
			EndDate:    q.EndDate,
			SubjectID:  q.SubjectID,
			SearchTerm: strings.TrimSpace(q.SearchTerm),
			PerPage:    paging.PerPage,
		},
	}, nil
}
