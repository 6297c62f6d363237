package service

import (
	"context"
	"sort"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/repository"
	"givehub-backend/internal/security"
)

type reportService struct {
	userRepo     repository.UserRepository
	donationRepo repository.DonationRepository
	authz        *security.Authorizer
}

func NewReportService(
	userRepo repository.UserRepository,
	donationRepo repository.DonationRepository,
	authz *security.Authorizer,
) ReportService {
	return &reportService{
		userRepo:     userRepo,
		donationRepo: donationRepo,
		authz:        authz,
	}
}

// DonationReport aggregates platform totals for the admin dashboard.
// Category filtering happens after the time-bounded fetch: the category set
// is open-ended, so it is not worth an index.
func (s *reportService) DonationReport(ctx context.Context, p security.Principal, filter ReportFilter) (*domain.Report, error) {
	if err := s.authz.RequireAdmin(p); err != nil {
		return nil, err
	}

	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, err
	}
	orgs, err := s.userRepo.ListByRole(ctx, domain.RoleOrganization)
	if err != nil {
		return nil, err
	}
	donations, err := s.donationRepo.List(ctx, domain.DonationFilter{From: filter.From, To: filter.To})
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		TotalDonors:        len(donors),
		TotalOrganizations: len(orgs),
		CategoryCounts:     make(map[string]int),
	}

	daily := make(map[string]int)
	for _, d := range donations {
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		report.TotalDonations++
		report.CategoryCounts[d.Category]++
		daily[d.Timestamp.UTC().Format("2006-01-02")]++
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		report.DonationData = append(report.DonationData, domain.DailyCount{Date: day, Count: daily[day]})
	}
	return report, nil
}
