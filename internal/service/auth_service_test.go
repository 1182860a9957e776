package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"arts-admin/backend/config"
	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/model"
	"arts-admin/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) (AuthService, *mockRepos) {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-auth-tests",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 168 * time.Hour,
		},
	}
	repo, mocks := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks
}

func seedAuthUser(t *testing.T, mocks *mockRepos, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("密码哈希失败: %v", err)
	}
	user := &model.User{
		UserID:       "user-001",
		Name:         "管理员",
		Phone:        "13800000001",
		Role:         model.RoleAdmin,
		PasswordHash: string(hash),
	}
	_ = mocks.user.Create(context.Background(), user)
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedAuthUser(t, mocks, "admin-pass")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone:    "13800000001",
		Password: "admin-pass",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("应返回 Token 对")
	}
	if result.User.Role != model.RoleAdmin {
		t.Errorf("期望角色=admin，实际=%s", result.User.Role)
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedAuthUser(t, mocks, "admin-pass")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone:    "13800000001",
		Password: "wrong-pass",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownPhone(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone:    "13999999999",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未注册手机号期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedAuthUser(t, mocks, "admin-pass")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone: "13800000001", Password: "admin-pass",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("刷新后应返回新 Token 对")
	}
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	seedAuthUser(t, mocks, "admin-pass")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone: "13800000001", Password: "admin-pass",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Access Token 不能用于刷新
	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not-a-jwt",
	})
	if !errors.Is(err, ErrRefreshInvalid) {
		t.Errorf("期望 ErrRefreshInvalid，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	user := seedAuthUser(t, mocks, "old-pass")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "old-pass",
		NewPassword: "new-pass-123",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码生效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Phone: "13800000001", Password: "new-pass-123",
	}); err != nil {
		t.Errorf("新密码应可登录: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	user := seedAuthUser(t, mocks, "old-pass")

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "bad-old",
		NewPassword: "new-pass-123",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

// ── GetCurrentUser 测试 ──

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	user := seedAuthUser(t, mocks, "admin-pass")

	result, err := svc.GetCurrentUser(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if result.Name != "管理员" {
		t.Errorf("期望Name=管理员，实际=%s", result.Name)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "user-ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
