package routes_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shopbill-api/internal/application/service"
	"github.com/sangkips/shopbill-api/internal/config"
	"github.com/sangkips/shopbill-api/internal/domain/entity"
	"github.com/sangkips/shopbill-api/internal/infrastructure/database"
	"github.com/sangkips/shopbill-api/internal/infrastructure/lock"
	"github.com/sangkips/shopbill-api/internal/infrastructure/repository"
	"github.com/sangkips/shopbill-api/internal/infrastructure/sequence"
	"github.com/sangkips/shopbill-api/internal/infrastructure/storage"
	"github.com/sangkips/shopbill-api/internal/presentation/http/handler"
	"github.com/sangkips/shopbill-api/internal/presentation/http/routes"
	"github.com/sangkips/shopbill-api/internal/testkit"
	"github.com/sangkips/shopbill-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  []json.RawMessage `json:"errors"`
	Error   string            `json:"error"`
}

type server struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators("IN"))

	db := testkit.NewDB(t)
	cfg := &config.Config{
		App:       config.AppConfig{Name: "shopbill-test"},
		Storage:   config.StorageConfig{Driver: "local", Path: t.TempDir(), PublicURL: "http://localhost:8080/files"},
		RateLimit: config.RateLimitConfig{Requests: 10000, Duration: 1},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Billing: config.BillingConfig{
			NumberPrefix:       "BILL",
			PhoneRegion:        "IN",
			RecentBillsLimit:   10,
			IdempotencyKeyTTL:  time.Hour,
			DefaultShopGSTRate: 18,
		},
	}

	disk, err := storage.NewLocalDisk(cfg.Storage.Path, cfg.Storage.PublicURL)
	require.NoError(t, err)

	shopRepo := repository.NewShopRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	billRepo := repository.NewBillRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	billService := service.NewBillService(
		billRepo, productRepo, shopRepo,
		sequence.NewGenerator(repository.NewCounterRepository(db), cfg.Billing.NumberPrefix),
		lock.NewLocalLocker(time.Second),
		disk,
	)

	handlers := &routes.Handlers{
		Shop:      handler.NewShopHandler(service.NewShopService(shopRepo, "IN", 18)),
		Category:  handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		Product:   handler.NewProductHandler(service.NewProductService(productRepo, categoryRepo)),
		Bill:      handler.NewBillHandler(billService),
		Report:    handler.NewReportHandler(service.NewReportService(repository.NewReportRepository(db), billRepo, shopRepo)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(billRepo, productRepo, 10)),
		Settings:  handler.NewSettingsHandler(service.NewSettingsService(repository.NewSettingsRepository(db))),
		Supplier:  handler.NewSupplierHandler(service.NewSupplierService(repository.NewSupplierRepository(db), shopRepo, "IN")),
		Admin: handler.NewAdminHandler(service.NewAdminService(
			repository.NewMaintenanceRepository(db, database.Models()), idempotencyRepo)),
	}

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Done:            done,
	})
	return &server{t: t, db: db, router: router}
}

func (s *server) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func billBody(shopID, productID uuid.UUID, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"shop_id": shopID,
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": quantity},
		},
		"payment_method": "cash",
	}
}

func TestBillLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	shop := testkit.Shop(t, s.db)
	product := testkit.Product(t, s.db, testkit.Category(t, s.db).ID, "100", "0", 100)

	rec := s.do(http.MethodPost, "/api/v1/bills", billBody(shop.ID, product.ID, 5), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var bill entity.Bill
	decode(t, rec, &bill)
	assert.True(t, decimal.NewFromInt(500).Equal(bill.TotalAmount))
	assert.Regexp(t, `^BILL-\d{8}-000001$`, bill.BillNumber)
	assert.Equal(t, 95, testkit.StockOf(t, s.db, product.ID))

	rec = s.do(http.MethodGet, "/api/v1/bills/number/"+bill.BillNumber, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/bills/"+bill.ID.String(), map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": product.ID, "quantity": 8}},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 92, testkit.StockOf(t, s.db, product.ID))

	rec = s.do(http.MethodDelete, "/api/v1/bills/"+bill.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 100, testkit.StockOf(t, s.db, product.ID))

	rec = s.do(http.MethodDelete, "/api/v1/bills/"+bill.ID.String(), nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_deleted", decode(t, rec, nil).Error)
	assert.Equal(t, 100, testkit.StockOf(t, s.db, product.ID))

	rec = s.do(http.MethodGet, "/api/v1/bills/number/"+bill.BillNumber, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBillInsufficientStockOverHTTP(t *testing.T) {
	s := newServer(t)
	shop := testkit.Shop(t, s.db)
	product := testkit.Product(t, s.db, testkit.Category(t, s.db).ID, "100", "0", 3)

	rec := s.do(http.MethodPost, "/api/v1/bills", billBody(shop.ID, product.ID, 4), nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient_stock", decode(t, rec, nil).Error)
	assert.Equal(t, 3, testkit.StockOf(t, s.db, product.ID))
}

func TestCreateBillRejectsInvalidBody(t *testing.T) {
	s := newServer(t)
	shop := testkit.Shop(t, s.db)

	rec := s.do(http.MethodPost, "/api/v1/bills", map[string]interface{}{
		"shop_id": shop.ID,
		"items":   []interface{}{},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid_request", env.Error)
	assert.NotEmpty(t, env.Errors)
}

func TestInvalidPathIDIsBadRequest(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/api/v1/bills/not-a-uuid", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIdempotentBillCreateReplaysResponse(t *testing.T) {
	s := newServer(t)
	shop := testkit.Shop(t, s.db)
	product := testkit.Product(t, s.db, testkit.Category(t, s.db).ID, "50", "0", 10)
	headers := map[string]string{"Idempotency-Key": "bill-1", "X-Shop-ID": shop.ID.String()}

	first := s.do(http.MethodPost, "/api/v1/bills", billBody(shop.ID, product.ID, 2), headers)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := s.do(http.MethodPost, "/api/v1/bills", billBody(shop.ID, product.ID, 2), headers)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	assert.Equal(t, 8, testkit.StockOf(t, s.db, product.ID))
	var count int64
	require.NoError(t, s.db.Model(&entity.Bill{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var bill entity.Bill
	decode(t, first, &bill)
	update := map[string]interface{}{"items": []map[string]interface{}{{"product_id": product.ID, "quantity": 5}}}
	reused := s.do(http.MethodPut, "/api/v1/bills/"+bill.ID.String(), update, headers)
	assert.Equal(t, http.StatusUnprocessableEntity, reused.Code, reused.Body.String())
	assert.Equal(t, 8, testkit.StockOf(t, s.db, product.ID))
}

func TestUploadBillPDF(t *testing.T) {
	s := newServer(t)
	shop := testkit.Shop(t, s.db)
	product := testkit.Product(t, s.db, testkit.Category(t, s.db).ID, "10", "0", 10)

	rec := s.do(http.MethodPost, "/api/v1/bills", billBody(shop.ID, product.ID, 1), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var bill entity.Bill
	decode(t, rec, &bill)

	pdf := []byte("%PDF-1.4 test document")

	t.Run("json base64", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/bills/"+bill.ID.String()+"/pdf", map[string]string{
			"pdf_content": base64.StdEncoding.EncodeToString(pdf),
		}, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var out struct {
			PDFURL string `json:"pdf_url"`
		}
		decode(t, rec, &out)
		assert.Equal(t, "http://localhost:8080/files/bills/"+bill.BillNumber+".pdf", out.PDFURL)
	})

	t.Run("multipart", func(t *testing.T) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile("file", "bill.pdf")
		require.NoError(t, err)
		_, err = part.Write(pdf)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bills/"+bill.ID.String()+"/pdf", &body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("not a pdf", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/bills/"+bill.ID.String()+"/pdf", map[string]string{
			"pdf_content": base64.StdEncoding.EncodeToString([]byte("hello")),
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportGenerateAndExport(t *testing.T) {
	s := newServer(t)
	shop := testkit.Shop(t, s.db)
	category := testkit.Category(t, s.db)
	cheap := testkit.Product(t, s.db, category.ID, "100", "0", 10)
	dear := testkit.Product(t, s.db, category.ID, "200", "0", 10)

	for _, p := range []*entity.Product{cheap, dear} {
		rec := s.do(http.MethodPost, "/api/v1/bills", billBody(shop.ID, p.ID, 1), nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	today := time.Now().UTC().Format("2006-01-02")
	rec := s.do(http.MethodPost, "/api/v1/reports", map[string]interface{}{
		"report_type": "daily_sales",
		"start_date":  today,
		"end_date":    today,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var report entity.Report
	decode(t, rec, &report)
	assert.Equal(t, "DAILY SALES Report", report.ReportName)
	assert.Equal(t, 2, report.Metrics.TotalBills)
	assert.True(t, decimal.NewFromInt(300).Equal(report.Metrics.TotalRevenue))
	assert.True(t, decimal.NewFromInt(150).Equal(report.Metrics.AverageBillValue))

	rec = s.do(http.MethodGet, "/api/v1/reports/"+report.ID.String()+"/export", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "daily_sales_"+today+".xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestShopRoutes(t *testing.T) {
	s := newServer(t)
	body := map[string]interface{}{
		"shop_name":  "Corner Store",
		"owner_name": "Asha",
		"email":      "asha@corner.store",
		"phone":      "+919876543210",
	}

	rec := s.do(http.MethodPost, "/api/v1/shops", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/shops", body, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_key", decode(t, rec, nil).Error)

	rec = s.do(http.MethodGet, "/api/v1/shops/mine", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body["shop_name"] = "Other Store"
	body["email"] = "other@corner.store"
	body["phone"] = "12"
	rec = s.do(http.MethodPost, "/api/v1/shops", body, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductRestockAndLowStock(t *testing.T) {
	s := newServer(t)
	product := testkit.Product(t, s.db, testkit.Category(t, s.db).ID, "10", "0", 2)

	rec := s.do(http.MethodGet, "/api/v1/products/low-stock", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var low []entity.Product
	decode(t, rec, &low)
	require.Len(t, low, 1)

	rec = s.do(http.MethodPost, "/api/v1/products/"+product.ID.String()+"/restock", map[string]int{"quantity": 10}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 12, testkit.StockOf(t, s.db, product.ID))

	rec = s.do(http.MethodPut, "/api/v1/products/"+product.ID.String(), map[string]interface{}{
		"stock": map[string]int{"current": 50},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 12, testkit.StockOf(t, s.db, product.ID))
}

func TestSettingsRoutes(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPut, "/api/v1/settings/receipt", map[string]interface{}{
		"value": map[string]interface{}{"footer": "Thank you"},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/settings/receipt", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var setting entity.Setting
	decode(t, rec, &setting)
	assert.JSONEq(t, `{"footer":"Thank you"}`, string(setting.Value))

	rec = s.do(http.MethodGet, "/api/v1/settings/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := s.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}

	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shopbill_http_requests_total")
}
