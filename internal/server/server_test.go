package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billservice "github.com/chatgptnotes/esic-billing/internal/bill/service"
	"github.com/chatgptnotes/esic-billing/internal/billdoc"
	catalogservice "github.com/chatgptnotes/esic-billing/internal/catalog/service"
	"github.com/chatgptnotes/esic-billing/internal/config"
	draftservice "github.com/chatgptnotes/esic-billing/internal/draft/service"
	lettersservice "github.com/chatgptnotes/esic-billing/internal/letters/service"
	"github.com/chatgptnotes/esic-billing/internal/providers/ai"
	"github.com/chatgptnotes/esic-billing/internal/providers/pdf"
	"github.com/chatgptnotes/esic-billing/internal/seed"
	visitservice "github.com/chatgptnotes/esic-billing/internal/visit/service"

	billdomain "github.com/chatgptnotes/esic-billing/internal/bill/domain"
	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	draftdomain "github.com/chatgptnotes/esic-billing/internal/draft/domain"
	visitdomain "github.com/chatgptnotes/esic-billing/internal/visit/domain"
)

var (
	testOnce   sync.Once
	testServer *Server
	testNode   *snowflake.Node
	testErr    error
)

func setupServer(t *testing.T) (*Server, *snowflake.Node) {
	t.Helper()

	testOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		db, err := gorm.Open(sqlite.Open("file:server_test?mode=memory&cache=shared"), &gorm.Config{})
		if err != nil {
			testErr = err
			return
		}

		if err := db.AutoMigrate(
			&billdomain.Bill{},
			&billdomain.BillSection{},
			&billdomain.BillLineItem{},
			&visitdomain.VisitDiagnosis{},
			&visitdomain.VisitSurgery{},
			&visitdomain.VisitComplication{},
			&visitdomain.VisitLab{},
			&visitdomain.VisitRadiology{},
			&visitdomain.VisitMedication{},
			&draftdomain.BillDraft{},
			&catalogdomain.Diagnosis{},
			&catalogdomain.Surgery{},
			&catalogdomain.Lab{},
			&catalogdomain.Radiology{},
			&catalogdomain.Medication{},
			&catalogdomain.Complication{},
		); err != nil {
			testErr = err
			return
		}

		if err := seed.EnsureCatalog(db); err != nil {
			testErr = err
			return
		}

		node, err := snowflake.NewNode(9)
		if err != nil {
			testErr = err
			return
		}

		log := zap.NewNop()
		cfg := config.Config{HospitalName: "Hope Hospital", HTTPAddr: ":0"}

		engine := NewEngine(log, newHTTPMetrics())
		testServer = NewServer(ServerParams{
			Gin:        engine,
			Cfg:        cfg,
			Log:        log,
			DB:         db,
			GenID:      node,
			BillSvc:    billservice.NewService(billservice.ServiceParam{DB: db, Log: log, GenID: node}),
			VisitSvc:   visitservice.NewService(visitservice.ServiceParam{DB: db, Log: log, GenID: node}),
			CatalogSvc: catalogservice.NewService(catalogservice.ServiceParam{DB: db, Log: log}),
			DraftSvc:   draftservice.NewService(draftservice.ServiceParam{DB: db, Log: log, GenID: node}),
			LettersSvc: lettersservice.NewService(lettersservice.ServiceParam{Log: log, Provider: &ai.NoOpProvider{}}),
			PDFSvc:     pdf.New(),
		})
		testNode = node
	})
	require.NoError(t, testErr)

	return testServer, testNode
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetBill_ReturnsSeedWhenUnsaved(t *testing.T) {
	s, _ := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/visits/HTTP-SEED/bill", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp billdomain.LoadBillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Saved)
	require.NotNil(t, resp.Doc)
	assert.NotEmpty(t, resp.Doc.Items)
}

func TestSaveAndGetBill(t *testing.T) {
	s, node := setupServer(t)

	doc := billdoc.SeedDocument(node)
	accommodation := doc.MainItems()[1]
	row := doc.AddSubItem(node, accommodation.ID)
	doc.SetField(accommodation.ID, row.ID, billdoc.FieldRate, int64(1500))
	doc.SetField(accommodation.ID, row.ID, billdoc.FieldQuantity, int64(4))

	w := doRequest(t, s, http.MethodPut, "/api/v1/visits/HTTP-SAVE/bill", gin.H{
		"doc":      doc,
		"bill_no":  "BL/2024/0099",
		"claim_id": " ESIC-9  ESIC-9 ",
		"category": "GENERAL",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp billdomain.LoadBillResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Saved)
	assert.Equal(t, "ESIC-9", resp.ClaimID)
	assert.Equal(t, int64(6000), resp.TotalAmount)
}

func TestSaveBill_MissingDoc(t *testing.T) {
	s, _ := setupServer(t)

	w := doRequest(t, s, http.MethodPut, "/api/v1/visits/HTTP-BAD/bill", gin.H{"bill_no": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillPDF(t *testing.T) {
	s, _ := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/visits/HTTP-PDF/bill/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())
}

func TestDraftRoundTrip(t *testing.T) {
	s, _ := setupServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/visits/HTTP-DRAFT/draft", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodPut, "/api/v1/visits/HTTP-DRAFT/draft", gin.H{
		"tree": gin.H{"items": []any{}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, s, http.MethodGet, "/api/v1/visits/HTTP-DRAFT/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp draftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "HTTP-DRAFT", resp.VisitID)
	assert.JSONEq(t, `{"items":[]}`, string(resp.Tree))
}

func TestCollections(t *testing.T) {
	s, node := setupServer(t)

	id := node.Generate()
	w := doRequest(t, s, http.MethodPost, "/api/v1/visits/HTTP-COLL/collections/diagnosis", gin.H{
		"rows": []gin.H{{"entity_id": id, "is_primary": true}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, s, http.MethodGet, "/api/v1/visits/HTTP-COLL/collections/diagnosis", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows []visitdomain.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 1)
	assert.True(t, resp.Rows[0].IsPrimary)

	w = doRequest(t, s, http.MethodGet, "/api/v1/visits/HTTP-COLL/collections/vitals", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogSearch(t *testing.T) {
	s, _ := setupServer(t)

	// Below the two character gate.
	w := doRequest(t, s, http.MethodGet, "/api/v1/catalog/surgery?q=a", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp catalogdomain.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Entries)

	w = doRequest(t, s, http.MethodGet, "/api/v1/catalog/surgery?q=append", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Entries)
	assert.Equal(t, "Appendicectomy", resp.Entries[0].Name)
}

func TestGenerateLetter_FallsBackWithoutProvider(t *testing.T) {
	s, _ := setupServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/visits/HTTP-LETTER/letters", gin.H{
		"kind":      "discharge_summary",
		"patient":   gin.H{"name": "Ramesh Kumar", "claim_id": "ESIC-1"},
		"diagnoses": []string{"Acute Appendicitis"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Content  string `json:"content"`
		Fallback bool   `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Contains(t, resp.Content, "Ramesh Kumar")

	w = doRequest(t, s, http.MethodPost, "/api/v1/visits/HTTP-LETTER/letters", gin.H{"kind": "memo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
