package handlers

import (
	"net/http"

	intconfig "laundry-admin/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "laundry admin backend đang chạy"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chưa kết nối cơ sở dữ liệu: " + err.Error()})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "truy vấn cơ sở dữ liệu thất bại: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kết nối cơ sở dữ liệu OK", "products_in_db": count})
}
