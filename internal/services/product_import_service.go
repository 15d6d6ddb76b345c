package services

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"
	"laundry-admin/internal/repositories"
	"laundry-admin/internal/utils"

	"github.com/xuri/excelize/v2"
)

// ProductImportService loads products in bulk from an uploaded Excel
// sheet. Expected columns, in order: productId, name, price, category,
// image, description, status. The first row is the header.
type ProductImportService struct {
	ProductRepo repositories.ProductRepository
	DB          *sql.DB
	RequestID   string
}

func (s ProductImportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ProductImportService) products() repositories.ProductRepository {
	if s.ProductRepo.DB != nil {
		return s.ProductRepo
	}
	return repositories.ProductRepository{DB: s.db()}
}

// ImportFromExcel parses the sheet, validates every row and inserts the
// whole batch in one transaction. Any bad row rejects the entire file.
func (s ProductImportService) ImportFromExcel(filename string, r io.Reader) (int, error) {
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".xlsx") {
		return 0, domain.ValidationError{Field: "file", Msg: "Vui lòng chọn file Excel (.xlsx)"}
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, domain.ValidationError{Field: "file", Msg: "Không đọc được file Excel"}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	if len(rows) < 2 {
		return 0, domain.ValidationError{Field: "file", Msg: "File không có dữ liệu sản phẩm"}
	}

	list := make([]models.Product, 0, len(rows)-1)
	seen := map[string]bool{}
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header
		m, err := productFromRow(row, line)
		if err != nil {
			return 0, err
		}
		if seen[m.ProductID] {
			return 0, domain.ValidationError{
				Field: "productId",
				Msg:   fmt.Sprintf("Dòng %d: mã sản phẩm %s bị trùng trong file", line, m.ProductID),
			}
		}
		seen[m.ProductID] = true

		if _, err := s.products().GetByProductID(m.ProductID); err == nil {
			return 0, domain.ConflictError{Msg: fmt.Sprintf("Dòng %d: mã sản phẩm %s đã tồn tại", line, m.ProductID)}
		} else if !domain.IsNotFound(err) {
			return 0, domain.InternalError{Err: err}
		}

		list = append(list, m)
	}

	n, err := s.products().InsertMany(list)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "product", "import", fmt.Sprintf("rows=%d", n))
	return int(n), nil
}

func productFromRow(row []string, line int) (models.Product, error) {
	var m models.Product

	m.ProductID = strings.TrimSpace(cell(row, 0))
	if m.ProductID == "" {
		return m, domain.ValidationError{Field: "productId", Msg: fmt.Sprintf("Dòng %d: thiếu mã sản phẩm", line)}
	}
	m.Name = utils.NormalizeSpace(cell(row, 1))
	if m.Name == "" {
		return m, domain.ValidationError{Field: "name", Msg: fmt.Sprintf("Dòng %d: thiếu tên sản phẩm", line)}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(cell(row, 2)), 64)
	if err != nil || price <= 0 {
		return m, domain.ValidationError{Field: "price", Msg: fmt.Sprintf("Dòng %d: giá sản phẩm không hợp lệ", line)}
	}
	m.Price = price

	m.Category = strings.TrimSpace(cell(row, 3))
	m.Image = strings.TrimSpace(cell(row, 4))
	m.Description = strings.TrimSpace(cell(row, 5))

	m.Status = strings.TrimSpace(cell(row, 6))
	if m.Status == "" {
		m.Status = string(domain.ProductActive)
	}
	if !domain.ProductStatus(m.Status).Valid() {
		return m, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("Dòng %d: trạng thái sản phẩm không hợp lệ", line)}
	}
	return m, nil
}

// cell tolerates rows shorter than the header; trailing empty cells are
// dropped by the sheet reader.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
