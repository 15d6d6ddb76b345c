package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "laundry-admin/internal/config"
	"laundry-admin/internal/domain"
	"laundry-admin/internal/domain/models"
	"laundry-admin/internal/repositories"
	"laundry-admin/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTokenTTL = 24 * time.Hour
	resetTokenTTL   = 15 * time.Minute
)

type AuthService struct {
	UserRepo  repositories.UserRepository
	DB        *sql.DB
	JWTSecret []byte
	RequestID string
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) users() repositories.UserRepository {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepository{DB: s.db()}
}

// Login checks credentials against the stored bcrypt hash and returns a
// signed session token with the user profile.
func (s AuthService) Login(login, password string) (string, models.User, error) {
	var none models.User

	u, hash, err := s.users().GetByLogin(strings.TrimSpace(login))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", none, domain.ValidationError{Field: "email", Msg: "Email/tên đăng nhập hoặc mật khẩu không đúng"}
		}
		return "", none, domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", none, domain.ValidationError{Field: "password", Msg: "Email/tên đăng nhập hoặc mật khẩu không đúng"}
	}

	token, err := s.signToken(jwt.MapClaims{
		"user_id": u.ID,
		"role":    u.Role,
		"exp":     time.Now().Add(sessionTokenTTL).Unix(),
	})
	if err != nil {
		return "", none, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return token, u, nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (s AuthService) Register(in RegisterInput) (models.User, error) {
	var out models.User

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" {
		return out, domain.ValidationError{Field: "username", Msg: "Vui lòng nhập đủ thông tin đăng ký"}
	}
	if len(in.Password) < 6 {
		return out, domain.ValidationError{Field: "password", Msg: "Mật khẩu phải có ít nhất 6 ký tự"}
	}

	taken, err := s.users().Exists(in.Email, in.Username)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	if taken {
		return out, domain.ConflictError{Msg: "Email hoặc tên đăng nhập đã tồn tại"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	out = models.User{
		Name:     strings.TrimSpace(in.Name),
		Username: in.Username,
		Email:    in.Email,
		Phone:    strings.TrimSpace(in.Phone),
		Role:     "staff",
		Status:   "active",
	}
	id, err := s.users().Create(out, string(hash))
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	out.ID = id

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", id))
	return out, nil
}

// ForgotPassword issues a short-lived reset token for a known email. The
// caller is responsible for delivering it; mail transport lives outside
// this service. Unknown emails return an empty token with no error so
// the endpoint cannot be used to probe which addresses are registered.
func (s AuthService) ForgotPassword(email string) (string, error) {
	email = strings.TrimSpace(email)
	if _, _, err := s.users().GetByLogin(email); err != nil {
		if domain.IsNotFound(err) {
			return "", nil
		}
		return "", domain.InternalError{Err: err}
	}
	token, err := s.signToken(jwt.MapClaims{
		"email":   email,
		"purpose": "password_reset",
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	})
	if err != nil {
		return "", domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "forgot_password", "email="+email)
	return token, nil
}

func (s AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.ValidationError{Field: "password", Msg: "Mật khẩu phải có ít nhất 6 ký tự"}
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("phương thức ký không hợp lệ: %v", t.Header["alg"])
		}
		return s.secret(), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ValidationError{Field: "token", Msg: "Liên kết đặt lại mật khẩu không hợp lệ hoặc đã hết hạn"}
	}
	purpose, _ := claims["purpose"].(string)
	email, _ := claims["email"].(string)
	if purpose != "password_reset" || email == "" {
		return domain.ValidationError{Field: "token", Msg: "Liên kết đặt lại mật khẩu không hợp lệ hoặc đã hết hạn"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.users().UpdatePasswordByEmail(email, string(hash)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "reset_password", "email="+email)
	return nil
}

func (s AuthService) Me(userID int64) (models.User, error) {
	return s.users().GetByID(userID)
}

func (s AuthService) signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret())
}

func (s AuthService) secret() []byte {
	if len(s.JWTSecret) > 0 {
		return s.JWTSecret
	}
	return []byte(intconfig.LoadEnv().JWTSecret)
}
