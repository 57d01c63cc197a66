package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("secret", "kitchen-ledger", 7, "session-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error = %v", err)
	}

	claims, err := ParseToken("secret", "kitchen-ledger", token)
	if err != nil {
		t.Fatalf("ParseToken error = %v", err)
	}
	if claims.UserID != 7 || claims.ID != "session-1" || claims.Issuer != "kitchen-ledger" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	good, _ := GenerateToken("secret", "kitchen-ledger", 1, "s", time.Hour)

	if _, err := ParseToken("other", "kitchen-ledger", good); err == nil {
		t.Error("错误密钥应校验失败")
	}
	if _, err := ParseToken("secret", "someone-else", good); err == nil {
		t.Error("签发方不一致应校验失败")
	}

	// 手工签发一个没有 jti 的 token
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, _ := bare.SignedString([]byte("secret"))
	if _, err := ParseToken("secret", "", raw); !errors.Is(err, ErrNoSession) {
		t.Errorf("没有会话 id error = %v, want ErrNoSession", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "s",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	raw, _ = expired.SignedString([]byte("secret"))
	if _, err := ParseToken("secret", "", raw); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("过期 token error = %v, want ErrTokenExpired", err)
	}
}

func TestGenerateToken_RequiresSession(t *testing.T) {
	if _, err := GenerateToken("secret", "", 1, "", time.Hour); !errors.Is(err, ErrNoSession) {
		t.Errorf("GenerateToken without session error = %v, want ErrNoSession", err)
	}
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	token, _ := GenerateToken("secret", "", 1, "s", -time.Hour)
	claims, err := ParseToken("secret", "", token)
	if err != nil {
		t.Fatalf("ParseToken error = %v", err)
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", ttl)
	}
}
