package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"viacampo/models"

	"github.com/gin-gonic/gin"
)

// fakeReportRepo serves archived reports from memory.
type fakeReportRepo struct {
	reports map[string]models.ClosureReport
}

func (f *fakeReportRepo) Create(ctx context.Context, report models.ClosureReport) (string, error) {
	return report.ID, nil
}

func (f *fakeReportRepo) GetByID(ctx context.Context, id string) (*models.ClosureReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	return &report, nil
}

func (f *fakeReportRepo) GetByTripID(ctx context.Context, tripID string) ([]models.ClosureReport, error) {
	out := []models.ClosureReport{}
	for _, r := range f.reports {
		if r.TripID == tripID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) List(ctx context.Context, limit int) ([]models.ClosureReport, error) {
	out := []models.ClosureReport{}
	for _, r := range f.reports {
		out = append(out, r)
	}
	return out, nil
}

func newReportRouter(repo *fakeReportRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReportHandler(repo)
	r.GET("/api/reports/:id", h.ByIDHandler)
	return r
}

func TestReportByID_Found(t *testing.T) {
	repo := &fakeReportRepo{reports: map[string]models.ClosureReport{
		"r1": {ID: "r1", TripID: "t1", Text: "VIAGEM DIA 01/01"},
	}}
	router := newReportRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/r1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "VIAGEM DIA 01/01") {
		t.Fatalf("body missing report text: %s", w.Body.String())
	}
}

func TestReportByID_Missing(t *testing.T) {
	router := newReportRouter(&fakeReportRepo{reports: map[string]models.ClosureReport{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/ghost", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
