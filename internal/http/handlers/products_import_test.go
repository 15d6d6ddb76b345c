package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "laundry-admin/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func importRequest(t *testing.T, filename string, sheet []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file error: %v", err)
	}
	if _, err := part.Write(sheet); err != nil {
		t.Fatalf("form write error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("form close error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/product/import", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func productSheet(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	name := f.GetSheetName(0)
	rows := [][]any{
		{"productId", "name", "price", "category", "image", "description", "status"},
		{"GK01", "Giặt khô", 50000, "Giặt", "", "", "active"},
	}
	for i, row := range rows {
		for j, v := range row {
			cellName, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(name, cellName, v); err != nil {
				t.Fatalf("set cell error: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write sheet error: %v", err)
	}
	return buf.Bytes()
}

func TestImportProductsEndpoint(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	mock.ExpectQuery("FROM products WHERE product_id = \\?").
		WithArgs("GK01").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO products").
		WithArgs("GK01", "Giặt khô", 50000.0, "Giặt", nil, nil, "active", false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/product/import", ImportProducts)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, importRequest(t, "san-pham.xlsx", productSheet(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Imported int `json:"imported"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Imported != 1 {
		t.Fatalf("imported = %d, want 1", resp.Imported)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportProductsEndpointRequiresFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/product/import", ImportProducts)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/product/import", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
