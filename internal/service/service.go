// Package service orchestrates report runs: fetch budget data,
// aggregate and evaluate it, render the HTML and send the email. Each
// run is independent; a failure aborts that run only.
package service

import (
	"fmt"
	"math"
	"time"

	"github.com/budgetbot/ynab-reporter/internal/classify"
	"github.com/budgetbot/ynab-reporter/internal/config"
	"github.com/budgetbot/ynab-reporter/internal/models"
	"github.com/budgetbot/ynab-reporter/internal/report"
	"github.com/sirupsen/logrus"
)

// BudgetSource supplies raw budget records, normally the YNAB client.
type BudgetSource interface {
	Accounts() ([]models.Account, error)
	Transactions(since time.Time) ([]models.Transaction, error)
	ScheduledTransactions() ([]models.ScheduledTransaction, error)
	MonthBudget(month time.Time) ([]models.CategorySnapshot, error)
}

// Renderer turns report bundles into HTML bodies.
type Renderer interface {
	RenderDaily(models.DailyReport) (string, error)
	RenderWeekly(models.WeeklyReport) (string, error)
	RenderMonthly(models.MonthlyReport) (string, error)
}

// Mailer delivers a rendered report.
type Mailer interface {
	Send(subject, htmlBody string) error
}

// Service handles report generation and delivery.
type Service struct {
	source   BudgetSource
	renderer Renderer
	mailer   Mailer
	log      *logrus.Logger
	config   *config.Config

	now func() time.Time
}

// NewService initializes a new service.
func NewService(source BudgetSource, renderer Renderer, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		source:   source,
		renderer: renderer,
		mailer:   mailer,
		log:      log,
		config:   cfg,
		now:      time.Now,
	}
}

// OpenAccountCount returns the number of open, non-deleted accounts
// on the budget. The health endpoint uses it as a connectivity probe.
func (s *Service) OpenAccountCount() (int, error) {
	accounts, err := s.source.Accounts()
	if err != nil {
		return 0, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	count := 0
	for _, a := range accounts {
		if !a.Closed && !a.Deleted {
			count++
		}
	}
	return count, nil
}

// DailyReport builds the daily alert bundle: uncategorized
// transactions from the lookback window plus the current month's
// budget health.
func (s *Service) DailyReport() (models.DailyReport, error) {
	now := s.now()

	since := now.AddDate(0, 0, -s.config.UncategorizedLookbackDays)
	transactions, err := s.source.Transactions(since)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	uncategorized := report.FilterUncategorized(transactions)

	status, err := s.budgetStatus(now)
	if err != nil {
		return models.DailyReport{}, err
	}

	return report.BuildDaily(uncategorized, status, s.config.ThresholdPercent, now), nil
}

// WeeklyReport builds the weekly recap bundle from the last week's
// countable transactions, the upcoming scheduled transactions and the
// current month's budget health.
func (s *Service) WeeklyReport() (models.WeeklyReport, error) {
	now := s.now()

	since := now.AddDate(0, 0, -s.config.WeeklyLookbackDays)
	transactions, err := s.source.Transactions(since)
	if err != nil {
		return models.WeeklyReport{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	s.logExcluded(transactions)
	spending := report.FilterSpending(transactions, true)
	report.SortByDateDesc(spending)
	aggregate := report.AggregateByCategory(spending)
	s.checkTotals("weekly", spending, aggregate)

	scheduled, err := s.source.ScheduledTransactions()
	if err != nil {
		return models.WeeklyReport{}, fmt.Errorf("failed to fetch scheduled transactions: %w", err)
	}
	upcoming := report.UpcomingScheduled(scheduled, now, s.config.UpcomingDaysAhead)

	status, err := s.budgetStatus(now)
	if err != nil {
		return models.WeeklyReport{}, err
	}

	return report.BuildWeekly(spending, aggregate, upcoming, status, now), nil
}

// MonthlyReport builds the monthly recap bundle for the previous
// calendar month.
func (s *Service) MonthlyReport() (models.MonthlyReport, error) {
	now := s.now()

	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := firstOfThisMonth.AddDate(0, 0, -1)

	transactions, err := s.source.Transactions(time.Date(lastMonth.Year(), lastMonth.Month(), 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return models.MonthlyReport{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	monthTransactions := report.FilterMonth(transactions, lastMonth.Year(), lastMonth.Month())
	s.logExcluded(monthTransactions)
	spending := report.FilterSpending(monthTransactions, true)
	aggregate := report.AggregateByCategory(spending)
	s.checkTotals("monthly", spending, aggregate)

	scheduled, err := s.source.ScheduledTransactions()
	if err != nil {
		return models.MonthlyReport{}, fmt.Errorf("failed to fetch scheduled transactions: %w", err)
	}
	recurring := report.RecurringThisMonth(scheduled, now)

	return report.BuildMonthly(spending, aggregate, recurring, now), nil
}

// SendDailyAlert builds, renders and sends the daily alert email.
func (s *Service) SendDailyAlert() error {
	bundle, err := s.DailyReport()
	if err != nil {
		return err
	}
	html, err := s.renderer.RenderDaily(bundle)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Daily Budget Alert - %s", s.now().Format("January 2, 2006"))
	if err := s.mailer.Send(subject, html); err != nil {
		return err
	}
	s.log.Infof("Daily alert sent: %d uncategorized, %d overspent, %d warning",
		bundle.UncategorizedCount, len(bundle.Status.Overspent), len(bundle.Status.Warning))
	return nil
}

// SendWeeklyRecap builds, renders and sends the weekly recap email.
func (s *Service) SendWeeklyRecap() error {
	bundle, err := s.WeeklyReport()
	if err != nil {
		return err
	}
	html, err := s.renderer.RenderWeekly(bundle)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Weekly Budget Recap - %s", s.now().Format("January 2, 2006"))
	if err := s.mailer.Send(subject, html); err != nil {
		return err
	}
	s.log.Infof("Weekly recap sent: %.2f spent over %d transactions", bundle.TotalSpent, bundle.TransactionCount)
	return nil
}

// SendMonthlyRecap builds, renders and sends the monthly recap email.
func (s *Service) SendMonthlyRecap() error {
	bundle, err := s.MonthlyReport()
	if err != nil {
		return err
	}
	html, err := s.renderer.RenderMonthly(bundle)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Monthly Budget Report - %s", bundle.MonthName)
	if err := s.mailer.Send(subject, html); err != nil {
		return err
	}
	s.log.Infof("Monthly recap sent for %s: %.2f spent over %d transactions",
		bundle.MonthName, bundle.TotalSpent, bundle.TransactionCount)
	return nil
}

func (s *Service) budgetStatus(now time.Time) (models.BudgetStatus, error) {
	categories, err := s.source.MonthBudget(now)
	if err != nil {
		return models.BudgetStatus{}, fmt.Errorf("failed to fetch month budget: %w", err)
	}
	return report.EvaluateBudgets(categories, s.config.ThresholdPercent), nil
}

// logExcluded traces each transaction dropped from a spending view and
// why, so a surprising report total can be audited from the logs.
func (s *Service) logExcluded(transactions []models.Transaction) {
	if !s.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	for _, t := range transactions {
		if reason := classify.Classify(t); reason != classify.None {
			s.log.Debugf("Excluding transaction %s (%s, %s): %s", t.ID, t.Date, t.Amount, reason)
		}
	}
}

// checkTotals compares the raw-list total against the aggregate-derived
// total. The two diverge when a split carries an inflow subtransaction;
// neither is canonical, so the discrepancy is surfaced instead of
// silently resolved.
func (s *Service) checkTotals(kind string, transactions []models.Transaction, aggregate map[string]*models.CategoryAggregate) {
	rawTotal := report.TotalSpent(transactions)
	aggTotal := report.AggregateTotal(aggregate)
	if math.Abs(rawTotal-aggTotal) > 0.001 {
		s.log.Warnf("%s totals diverge: raw sum %.3f vs aggregate sum %.3f", kind, rawTotal, aggTotal)
	}
}
