package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain/models"
	"laundry-admin/internal/metrics"
	"laundry-admin/internal/repositories"
	"laundry-admin/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders printable order receipts for the 80mm roll printer.
type ReceiptService struct {
	OrderRepo repositories.OrderRepository
	DB        *sql.DB
	RequestID string

	StoreName  string
	StorePhone string
}

func (s ReceiptService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ReceiptService) orders() repositories.OrderRepository {
	if s.OrderRepo.DB != nil {
		return s.OrderRepo
	}
	return repositories.OrderRepository{DB: s.db()}
}

func (s ReceiptService) Generate(orderID int64) ([]byte, string, error) {
	o, err := s.orders().GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	metrics.ReceiptsGenerated.Inc()
	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("order_id=%d code=%s", o.ID, o.OrderID))
	return s.buildReceiptPDF(o)
}

func (s ReceiptService) buildReceiptPDF(o models.Order) ([]byte, string, error) {
	height := 120.0 + float64(len(o.Items))*6.0
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetTitle("Receipt", false)
	pdf.SetMargins(5, 5, 5)
	pdf.SetAutoPageBreak(true, 5)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, tr(orEmpty(s.StoreName, "Tiem Giat Ui")), "", 1, "C", false, 0, "")
	if p := strings.TrimSpace(s.StorePhone); p != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, "SDT: "+p, "", 1, "C", false, 0, "")
	}
	pdf.Ln(1)
	receiptRule(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr("Ma don: "+o.OrderID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Khach hang: "+o.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "SDT: "+o.Phone, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Ngay: "+o.CreatedAt, "", 1, "L", false, 0, "")
	receiptRule(pdf)

	for _, it := range o.Items {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, tr(it.ProductName), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		line := fmt.Sprintf("%s x %s", utils.FormatVND(it.Price), formatQty(it.Quantity))
		pdf.CellFormat(40, 5, tr(line), "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, tr(utils.FormatVND(it.Price*it.Quantity)), "", 1, "R", false, 0, "")
	}
	receiptRule(pdf)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 7, tr("Tong cong"), "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, tr(utils.FormatVND(o.Total)), "", 1, "R", false, 0, "")

	if note := strings.TrimSpace(o.Note); note != "" {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(0, 4, tr("Ghi chu: "+note), "", "L", false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 4, tr("Cam on quy khach!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("RECEIPT_%s.pdf", o.OrderID), nil
}

func receiptRule(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 3, strings.Repeat("-", 48), "", 1, "C", false, 0, "")
}

// formatQty trims trailing zeros so 2.000 prints as 2 and 1.500 as 1.5.
func formatQty(q float64) string {
	s := fmt.Sprintf("%.3f", q)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func orEmpty(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
