package inmemdb

import (
	"context"

	"github.com/lefika/ripota/core/report"
)

type reportRepository struct {
	db *reportTable
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{db: db.report}
}

func (repo *reportRepository) query() []report.Report {
	reports := make([]report.Report, 0, len(repo.db.seq))
	for _, id := range repo.db.seq {
		reports = append(reports, *repo.db.table[id])
	}
	return reports
}

func (repo *reportRepository) CreateReport(_ context.Context, rpt report.Report) (report.Report, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[rpt.ID] = &rpt
	repo.db.seq = append(repo.db.seq, rpt.ID)
	return rpt, nil
}

func (repo *reportRepository) QueryAllReports(_ context.Context) ([]report.Report, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *reportRepository) GetReportByID(_ context.Context, id string) (report.Report, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rpt, ok := repo.db.table[id]; ok {
		return *rpt, nil
	}
	return report.Report{}, report.ErrNotFound
}

func (repo *reportRepository) FilterReports(_ context.Context, filter report.QueryFilter) ([]report.Report, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]report.Report, 0)
	for _, rpt := range repo.query() {
		if filter.LecturerName != "" && rpt.LecturerName != filter.LecturerName {
			continue
		}
		if filter.CourseCode != "" && rpt.CourseCode != filter.CourseCode {
			continue
		}
		if filter.Status != "" && rpt.Status != filter.Status {
			continue
		}
		matches = append(matches, rpt)
	}
	return matches, nil
}

func (repo *reportRepository) UpdateReport(_ context.Context, rpt report.Report) (report.Report, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rpt.ID]; !ok {
		return report.Report{}, report.ErrNotFound
	}
	repo.db.table[rpt.ID] = &rpt
	return rpt, nil
}
