package service

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/budgetbot/ynab-reporter/internal/config"
	"github.com/budgetbot/ynab-reporter/internal/models"
	"github.com/sirupsen/logrus"
)

func strptr(s string) *string { return &s }

type fakeSource struct {
	accounts     []models.Account
	transactions []models.Transaction
	scheduled    []models.ScheduledTransaction
	categories   []models.CategorySnapshot
	since        time.Time
	err          error
}

func (f *fakeSource) Accounts() ([]models.Account, error) {
	return f.accounts, f.err
}

func (f *fakeSource) Transactions(since time.Time) ([]models.Transaction, error) {
	f.since = since
	return f.transactions, f.err
}

func (f *fakeSource) ScheduledTransactions() ([]models.ScheduledTransaction, error) {
	return f.scheduled, f.err
}

func (f *fakeSource) MonthBudget(time.Time) ([]models.CategorySnapshot, error) {
	return f.categories, f.err
}

type fakeRenderer struct{}

func (fakeRenderer) RenderDaily(models.DailyReport) (string, error)     { return "<daily>", nil }
func (fakeRenderer) RenderWeekly(models.WeeklyReport) (string, error)   { return "<weekly>", nil }
func (fakeRenderer) RenderMonthly(models.MonthlyReport) (string, error) { return "<monthly>", nil }

type fakeMailer struct {
	subjects []string
	bodies   []string
	err      error
}

func (m *fakeMailer) Send(subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		ThresholdPercent:          80,
		UpcomingDaysAhead:         14,
		WeeklyLookbackDays:        7,
		UncategorizedLookbackDays: 30,
	}
}

func newTestService(source *fakeSource, mailer *fakeMailer, at time.Time) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc := NewService(source, fakeRenderer{}, mailer, log, testConfig())
	svc.now = func() time.Time { return at }
	return svc
}

func TestSendDailyAlert(t *testing.T) {
	now := time.Date(2025, time.July, 14, 7, 30, 0, 0, time.UTC)
	source := &fakeSource{
		transactions: []models.Transaction{
			{ID: "u-1", Date: models.NewDate(2025, time.July, 13), Amount: -4000},
			{ID: "c-1", Date: models.NewDate(2025, time.July, 12), Amount: -2000,
				CategoryID: strptr("cat-1"), CategoryName: strptr("Groceries")},
		},
		categories: []models.CategorySnapshot{
			{Name: strptr("Dining"), Budgeted: 50000, Activity: -60000, Balance: -10000},
		},
	}
	mailer := &fakeMailer{}
	svc := newTestService(source, mailer, now)

	if err := svc.SendDailyAlert(); err != nil {
		t.Fatal(err)
	}

	if len(mailer.subjects) != 1 || mailer.subjects[0] != "Daily Budget Alert - July 14, 2025" {
		t.Errorf("subjects = %v", mailer.subjects)
	}
	if !source.since.Equal(now.AddDate(0, 0, -30)) {
		t.Errorf("daily lookback since = %v", source.since)
	}

	bundle, err := svc.DailyReport()
	if err != nil {
		t.Fatal(err)
	}
	if bundle.UncategorizedCount != 1 || bundle.Uncategorized[0].ID != "u-1" {
		t.Errorf("uncategorized = %+v", bundle.Uncategorized)
	}
	if len(bundle.Status.Overspent) != 1 {
		t.Errorf("status = %+v", bundle.Status)
	}
}

func TestSendWeeklyRecap(t *testing.T) {
	now := time.Date(2025, time.July, 14, 8, 0, 0, 0, time.UTC)
	echoID := "sched-1"
	source := &fakeSource{
		transactions: []models.Transaction{
			{ID: "t-1", Date: models.NewDate(2025, time.July, 10), Amount: -15000,
				CategoryID: strptr("c"), CategoryName: strptr("Groceries")},
			{ID: "t-2", Date: models.NewDate(2025, time.July, 12), Amount: -5000,
				CategoryID: strptr("c"), CategoryName: strptr("Groceries"),
				ScheduledTransactionID: &echoID},
		},
		scheduled: []models.ScheduledTransaction{
			{DateNext: models.NewDate(2025, time.July, 20), Frequency: "monthly", Amount: -45000},
			{DateNext: models.NewDate(2025, time.September, 1), Frequency: "monthly", Amount: -9000},
		},
	}
	mailer := &fakeMailer{}
	svc := newTestService(source, mailer, now)

	if err := svc.SendWeeklyRecap(); err != nil {
		t.Fatal(err)
	}
	if len(mailer.subjects) != 1 || mailer.subjects[0] != "Weekly Budget Recap - July 14, 2025" {
		t.Errorf("subjects = %v", mailer.subjects)
	}

	bundle, err := svc.WeeklyReport()
	if err != nil {
		t.Fatal(err)
	}
	// The scheduled echo is excluded from actual spending.
	if bundle.TransactionCount != 1 || bundle.TotalSpent != 15.0 {
		t.Errorf("weekly totals = %d / %v", bundle.TransactionCount, bundle.TotalSpent)
	}
	if len(bundle.Upcoming) != 1 {
		t.Errorf("upcoming window leaked: %+v", bundle.Upcoming)
	}
}

func TestSendMonthlyRecap(t *testing.T) {
	now := time.Date(2025, time.August, 1, 8, 0, 0, 0, time.UTC)
	source := &fakeSource{
		transactions: []models.Transaction{
			{ID: "in", Date: models.NewDate(2025, time.July, 15), Amount: -20000,
				CategoryID: strptr("c"), CategoryName: strptr("Groceries")},
			// Already in the current month, must not count.
			{ID: "out", Date: models.NewDate(2025, time.August, 1), Amount: -99000,
				CategoryID: strptr("c"), CategoryName: strptr("Groceries")},
		},
		scheduled: []models.ScheduledTransaction{
			{DateNext: models.NewDate(2025, time.August, 15), Frequency: "monthly", Amount: -45000},
		},
	}
	mailer := &fakeMailer{}
	svc := newTestService(source, mailer, now)

	if err := svc.SendMonthlyRecap(); err != nil {
		t.Fatal(err)
	}
	if len(mailer.subjects) != 1 || mailer.subjects[0] != "Monthly Budget Report - July 2025" {
		t.Errorf("subjects = %v", mailer.subjects)
	}
	if !source.since.Equal(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("monthly fetch since = %v", source.since)
	}

	bundle, err := svc.MonthlyReport()
	if err != nil {
		t.Fatal(err)
	}
	if bundle.TransactionCount != 1 || bundle.TotalSpent != 20.0 {
		t.Errorf("monthly totals = %d / %v", bundle.TransactionCount, bundle.TotalSpent)
	}
	if len(bundle.Recurring) != 1 {
		t.Errorf("recurring = %+v", bundle.Recurring)
	}
}

func TestOpenAccountCount(t *testing.T) {
	source := &fakeSource{
		accounts: []models.Account{
			{ID: "a-1", Name: "Checking"},
			{ID: "a-2", Name: "Old Savings", Closed: true},
			{ID: "a-3", Name: "Gone", Deleted: true},
		},
	}
	svc := newTestService(source, &fakeMailer{}, time.Date(2025, time.July, 14, 8, 0, 0, 0, time.UTC))

	count, err := svc.OpenAccountCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("OpenAccountCount = %d, want 1", count)
	}

	source.err = errors.New("api down")
	if _, err := svc.OpenAccountCount(); err == nil {
		t.Fatal("expected error when account fetch fails")
	}
}

func TestExcludedTransactionsLogged(t *testing.T) {
	now := time.Date(2025, time.July, 14, 8, 0, 0, 0, time.UTC)
	transfer := models.Transaction{
		ID: "t-x", Date: models.NewDate(2025, time.July, 10), Amount: -5000,
		TransferAccountID: strptr("acc-2"),
	}
	source := &fakeSource{transactions: []models.Transaction{transfer}}
	svc := newTestService(source, &fakeMailer{}, now)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	svc.log = log

	if _, err := svc.WeeklyReport(); err != nil {
		t.Fatal(err)
	}
	logged := buf.String()
	if !strings.Contains(logged, "t-x") || !strings.Contains(logged, "transfer") {
		t.Errorf("excluded transaction not traced: %q", logged)
	}
}

func TestFetchFailureAbortsRun(t *testing.T) {
	source := &fakeSource{err: errors.New("api down")}
	mailer := &fakeMailer{}
	svc := newTestService(source, mailer, time.Date(2025, time.July, 14, 8, 0, 0, 0, time.UTC))

	if err := svc.SendDailyAlert(); err == nil {
		t.Fatal("expected error when fetch fails")
	}
	if len(mailer.subjects) != 0 {
		t.Error("no report may be sent after a fetch failure")
	}
}

func TestSendFailurePropagates(t *testing.T) {
	source := &fakeSource{}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := newTestService(source, mailer, time.Date(2025, time.July, 14, 8, 0, 0, 0, time.UTC))

	err := svc.SendWeeklyRecap()
	if err == nil || !strings.Contains(err.Error(), "smtp down") {
		t.Fatalf("err = %v", err)
	}
}
