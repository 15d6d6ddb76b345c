package handlers

import (
	"net/http"

	"laundry-admin/internal/http/middleware"
	"laundry-admin/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	token, user, err := svc.Login(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Đăng ký thành công", "user": user})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	rc, ok := middleware.GetAuthContext(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Vui lòng đăng nhập", nil)
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	user, err := svc.Me(rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// POST /api/auth/forgot-password
func ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	token, err := svc.ForgotPassword(req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// Same message whether or not the email is registered. The token
	// goes back in the body because there is no mail transport here.
	resp := gin.H{"message": "Nếu email đã được đăng ký, liên kết đặt lại mật khẩu sẽ được tạo"}
	if token != "" {
		resp["resetToken"] = token
	}
	c.JSON(http.StatusOK, resp)
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// POST /api/auth/reset-password?t=<token>
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token := c.Query("t")
	if token == "" {
		RespondError(c, http.StatusBadRequest, "Thiếu mã đặt lại mật khẩu", nil)
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	if err := svc.ResetPassword(token, req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đặt lại mật khẩu thành công"})
}
