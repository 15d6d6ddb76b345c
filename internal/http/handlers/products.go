package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"
	"laundry-admin/internal/http/middleware"
	"laundry-admin/internal/repositories"
	"laundry-admin/internal/services"

	"github.com/gin-gonic/gin"
)

func listParamsFromQuery(c *gin.Context) repositories.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return repositories.ListParams{
		Page:      page,
		Limit:     limit,
		SortField: c.DefaultQuery("sort", "createdAt"),
		SortDir:   c.DefaultQuery("dir", "desc"),
		Search:    c.Query("q"),
		Status:    c.Query("status"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}
}

// GET /api/product
func ListProducts(c *gin.Context) {
	repo := repositories.ProductRepository{}
	list, total, err := repo.List(listParamsFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total})
}

// GET /api/product/active returns the catalog for the order dialog.
func ListActiveProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	repo := repositories.ProductRepository{}
	list, err := repo.ListActive(limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

// GET /api/product/:id
func GetProduct(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	repo := repositories.ProductRepository{}
	m, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func validateProduct(m models.Product) error {
	if strings.TrimSpace(m.ProductID) == "" {
		return domain.ValidationError{Field: "productId", Msg: "Vui lòng nhập mã sản phẩm"}
	}
	if strings.TrimSpace(m.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "Vui lòng nhập tên sản phẩm"}
	}
	if m.Price <= 0 {
		return domain.ValidationError{Field: "price", Msg: "Giá sản phẩm phải lớn hơn 0"}
	}
	if m.Status != "" && !domain.ProductStatus(m.Status).Valid() {
		return domain.ValidationError{Field: "status", Msg: "Trạng thái sản phẩm không hợp lệ"}
	}
	return nil
}

// POST /api/product
func CreateProduct(c *gin.Context) {
	var m models.Product
	if !BindJSONOrError(c, &m) {
		return
	}
	if m.Status == "" {
		m.Status = string(domain.ProductActive)
	}
	if err := validateProduct(m); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.ProductRepository{}
	if _, err := repo.GetByProductID(m.ProductID); err == nil {
		RespondDomainError(c, domain.ConflictError{Msg: "Mã sản phẩm đã tồn tại"})
		return
	} else if !domain.IsNotFound(err) {
		RespondDomainError(c, err)
		return
	}

	id, err := repo.Create(m)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	created, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/product/:id
func UpdateProduct(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	var m models.Product
	if !BindJSONOrError(c, &m) {
		return
	}

	repo := repositories.ProductRepository{}
	current, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	m.ProductID = current.ProductID
	if m.Status == "" {
		m.Status = current.Status
	}
	if err := validateProduct(m); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Update(id, m); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/product/:id
func DeleteProduct(c *gin.Context) {
	id, ok := IDParamOrError(c)
	if !ok {
		return
	}
	repo := repositories.ProductRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa sản phẩm"})
}

type removeManyRequest struct {
	IDs []int64 `json:"ids"`
}

// POST /api/product/removeMany
func DeleteProducts(c *gin.Context) {
	var req removeManyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if len(req.IDs) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "ids", Msg: "Vui lòng chọn sản phẩm cần xóa"})
		return
	}
	repo := repositories.ProductRepository{}
	affected, err := repo.DeleteMany(req.IDs)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã xóa sản phẩm", "deleted": affected})
}

// POST /api/product/import accepts an Excel sheet of products.
func ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Vui lòng chọn file cần nhập", err)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Không mở được file tải lên", err)
		return
	}
	defer f.Close()

	svc := services.ProductImportService{RequestID: middleware.GetRequestID(c)}
	n, err := svc.ImportFromExcel(fileHeader.Filename, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nhập dữ liệu sản phẩm thành công", "imported": n})
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

// PUT /api/product/:id/pin toggles the pin flag by business code.
func PinProduct(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	if productID == "" {
		RespondError(c, http.StatusBadRequest, "Thiếu mã sản phẩm", nil)
		return
	}
	var req pinRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.ProductRepository{}
	if err := repo.SetPinned(productID, req.Pinned); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã cập nhật ghim sản phẩm", "pinned": req.Pinned})
}
