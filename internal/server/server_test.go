package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/budgetbot/ynab-reporter/internal/config"
	"github.com/budgetbot/ynab-reporter/internal/models"
	"github.com/budgetbot/ynab-reporter/internal/render"
	"github.com/budgetbot/ynab-reporter/internal/service"
	"github.com/sirupsen/logrus"
)

type staticSource struct{}

func (staticSource) Accounts() ([]models.Account, error) {
	return []models.Account{
		{ID: "a-1", Name: "Checking"},
		{ID: "a-2", Name: "Old Savings", Closed: true},
	}, nil
}

func (staticSource) Transactions(time.Time) ([]models.Transaction, error) {
	payee := "Corner Store"
	return []models.Transaction{
		{ID: "t-1", Date: models.NewDate(2025, time.July, 13), Amount: -4250, PayeeName: &payee},
	}, nil
}

func (staticSource) ScheduledTransactions() ([]models.ScheduledTransaction, error) {
	return nil, nil
}

func (staticSource) MonthBudget(time.Time) ([]models.CategorySnapshot, error) {
	return nil, nil
}

type noMailer struct{}

func (noMailer) Send(string, string) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		ThresholdPercent:          80,
		UpcomingDaysAhead:         14,
		WeeklyLookbackDays:        7,
		UncategorizedLookbackDays: 30,
	}
	svc := service.NewService(staticSource{}, renderer, noMailer{}, log, cfg)

	srv := httptest.NewServer(NewServer(svc, renderer, log).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	// One of the two accounts is closed.
	if !strings.Contains(string(body), `"open_accounts":1`) {
		t.Errorf("health body = %s", body)
	}
}

type downSource struct{ staticSource }

func (downSource) Accounts() ([]models.Account, error) {
	return nil, errors.New("api down")
}

func TestHealthDegradedWhenSourceFails(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	svc := service.NewService(downSource{}, renderer, noMailer{}, log, &config.Config{ThresholdPercent: 80})
	srv := httptest.NewServer(NewServer(svc, renderer, log).Router())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "degraded") {
		t.Errorf("health body = %s", body)
	}
}

func TestPreviewDaily(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/reports/daily/preview")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Corner Store") {
		t.Error("preview missing report content")
	}
}

func TestPreviewUnknownType(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/reports/yearly/preview")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
