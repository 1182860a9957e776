package jwt

import (
	"errors"
	"testing"
	"time"

	"arts-admin/backend/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-key-0123456789",
		AccessTokenTTL:          accessTTL,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	})
}

func TestManager_AccessTokenRoundtrip(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("user-001", "admin")
	if err != nil {
		t.Fatalf("生成 access token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 access token 失败: %v", err)
	}
	if claims.UserID != "user-001" || claims.Role != "admin" {
		t.Errorf("声明不符: %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("期望类型=%s，实际=%s", TokenTypeAccess, claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("jti 不应为空")
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateRefreshToken("user-001", "student", true)
	if err != nil {
		t.Fatalf("生成 refresh token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 refresh token 失败: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("期望类型=%s，实际=%s", TokenTypeRefresh, claims.TokenType)
	}
	if !claims.RememberMe {
		t.Error("remember_me 声明应为 true")
	}
}

func TestManager_ExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateAccessToken("user-001", "admin")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_WrongSecret(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	token, err := m.GenerateAccessToken("user-001", "admin")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-9876543210",
		AccessTokenTTL: 15 * time.Minute,
	})
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestManager_GarbageToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
