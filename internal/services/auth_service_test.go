package services

import (
	"database/sql"
	"testing"

	"laundry-admin/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{"id", "name", "username", "email", "phone", "password_hash", "role", "status"}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users").
		WithArgs("nobody@tiemgiat.vn", "nobody@tiemgiat.vn").
		WillReturnError(sql.ErrNoRows)

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}, DB: db, JWTSecret: []byte("test-secret")}
	token, err := svc.ForgotPassword("nobody@tiemgiat.vn")
	if err != nil {
		t.Fatalf("unknown email must not surface an error, got %v", err)
	}
	if token != "" {
		t.Fatalf("unknown email must not get a token, got %q", token)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestForgotPasswordResetRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users").
		WithArgs("admin@tiemgiat.vn", "admin@tiemgiat.vn").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "Admin", "admin", "admin@tiemgiat.vn", "0901", string(hash), "admin", "active"))
	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs(sqlmock.AnyArg(), "admin@tiemgiat.vn").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}, DB: db, JWTSecret: []byte("test-secret")}
	token, err := svc.ForgotPassword("admin@tiemgiat.vn")
	if err != nil {
		t.Fatalf("forgot password error: %v", err)
	}
	if token == "" {
		t.Fatalf("registered email should get a reset token")
	}

	if err := svc.ResetPassword(token, "new-password"); err != nil {
		t.Fatalf("reset password error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users").
		WithArgs("admin@tiemgiat.vn", "admin@tiemgiat.vn").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "Admin", "admin", "admin@tiemgiat.vn", "0901", string(hash), "admin", "active"))

	svc := AuthService{UserRepo: repositories.UserRepository{DB: db}, DB: db, JWTSecret: []byte("test-secret")}
	sessionToken, _, err := svc.Login("admin@tiemgiat.vn", "secret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}

	// A login token lacks the reset purpose claim and must not reset
	// anyone's password.
	if err := svc.ResetPassword(sessionToken, "new-password"); err == nil {
		t.Fatalf("session token must not pass as a reset token")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
