package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/auth"
	"github.com/nurpe/careops-billing/internal/excel"
	"github.com/nurpe/careops-billing/internal/http/middleware"
	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/pdf"
	"github.com/nurpe/careops-billing/internal/repository"
	"github.com/nurpe/careops-billing/internal/service"
)

type testServer struct {
	router *gin.Engine
	tokens *auth.Parser
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore()
	require.NoError(t, repository.Seed(context.Background(), store))
	log := zerolog.Nop()
	ids := repository.NewSequenceGenerator(100)
	policy := service.DefaultPolicy()

	handler := NewHandler(Services{
		Directory:      service.NewServiceDirectory(store, ids, log),
		Placement:      service.NewPlacementService(store, store, policy, log),
		Contracts:      service.NewContractService(store, store, ids, log),
		Invoices:       service.NewInvoiceService(store, store, pdf.NewGenerator(), ids, policy, log),
		Payments:       service.NewPaymentService(store, store, ids, policy, log),
		Reconciliation: service.NewReconciliationService(store, store, store, excel.NewGenerator(), policy, log),
	}, log)

	tokens := auth.NewParser("test-secret")
	router := NewRouter(handler, middleware.Auth(tokens), "test", nil, log)
	return &testServer{router: router, tokens: tokens}
}

func (s *testServer) do(t *testing.T, role model.Role, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := s.tokens.Issue(model.Principal{UserID: "user-1", Role: role}, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, "", http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, "", http.MethodGet, "/api/services", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServiceUtilizationEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, model.RoleViewer, http.MethodGet, "/api/services/service-1/utilization", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var util model.ServiceUtilization
	decode(t, rec, &util)
	assert.Equal(t, 3, util.OccupiedRooms)
	assert.Equal(t, model.EfficiencyHigh, util.EfficiencyRating)
	assert.Equal(t, 94.0, util.EfficiencyScore)

	rec = srv.do(t, model.RoleViewer, http.MethodGet, "/api/services/missing/utilization", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, model.RoleManager, http.MethodPost, "/api/placements/recommendations", model.PlacementRequest{
		SharedHours: 20, RegionID: "region-1", AuthorityID: "auth-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.PlacementRecommendation `json:"data"`
	}
	decode(t, rec, &body)
	require.NotEmpty(t, body.Data)
	assert.Equal(t, "service-1", body.Data[0].ServiceID)

	rec = srv.do(t, model.RoleManager, http.MethodPost, "/api/placements/recommendations", model.PlacementRequest{RegionID: "region-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleGuards(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, model.RoleViewer, http.MethodPost, "/api/invoices", gin.H{"contract_id": "contract-1", "period_start": "2024-03-11"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, model.RoleFinance, http.MethodPost, "/api/contracts/contract-1/terminate", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, model.RoleAdmin, http.MethodPost, "/api/contracts/contract-1/terminate", gin.H{"terminated_date": "2024-03-31"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, model.RoleAdmin, http.MethodPost, "/api/contracts/contract-1/terminate", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInvoiceLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, model.RoleFinance, http.MethodPost, "/api/invoices", gin.H{"contract_id": "contract-2", "period_start": "2024-03-11"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.InvoiceDetails
	decode(t, rec, &created)
	assert.Regexp(t, `^INV-\d{4}-000005$`, created.InvoiceNumber)
	assert.Equal(t, 5260.0, created.TotalAmount)

	rec = srv.do(t, model.RoleFinance, http.MethodPost, "/api/invoices/"+created.ID+"/finalize", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, model.RoleFinance, http.MethodDelete, "/api/invoices/"+created.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, model.RoleViewer, http.MethodGet, "/api/invoices/"+created.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestConfirmAllocationRequiresBalance(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, model.RoleFinance, http.MethodGet, "/api/payments/payment-2/allocation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var proposal model.AllocationProposal
	decode(t, rec, &proposal)
	require.Len(t, proposal.Suggestions, 1)
	assert.Equal(t, 13500.0, proposal.Suggestions[0].SuggestedAmount)

	short := gin.H{"allocations": []gin.H{{"contract_id": "contract-4", "amount": 13000}}}
	rec = srv.do(t, model.RoleFinance, http.MethodPost, "/api/payments/payment-2/allocation", short)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	short["force"] = true
	rec = srv.do(t, model.RoleFinance, http.MethodPost, "/api/payments/payment-2/allocation", short)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, model.RoleFinance, http.MethodPost, "/api/payments/payment-2/allocation", short)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReconciliationEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, model.RoleFinance, http.MethodGet, "/api/reconciliation?authority_id=auth-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report model.Reconciliation
	decode(t, rec, &report)
	assert.Equal(t, 4040.0, report.Totals.Expected)
	assert.Equal(t, 6610.0, report.Totals.Invoiced)

	rec = srv.do(t, model.RoleFinance, http.MethodGet, "/api/reconciliation/export?authority_id=auth-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "reconciliation-auth-2-")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = srv.do(t, model.RoleViewer, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary model.DashboardSummary
	decode(t, rec, &summary)
	assert.Equal(t, 5, summary.ActiveContracts)
}

func TestRateChangePreviewEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := gin.H{
		"workflow":            "individual",
		"contract_ids":        []string{"contract-3"},
		"method":              "percentage",
		"percentage_increase": 5,
		"apply_to_one_to_one": true,
	}
	rec := srv.do(t, model.RoleFinance, http.MethodPost, "/api/rate-changes/preview", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []model.RateChangePreview `json:"data"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 28.12, resp.Data[0].NewOneToOneRate)

	body["effective_from"] = "not-a-date"
	rec = srv.do(t, model.RoleFinance, http.MethodPost, "/api/rate-changes", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
