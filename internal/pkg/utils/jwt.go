package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 两类 Token 共用一个签名密钥，靠 audience 隔离：
// 管理员 Token 不能访问访客接口，访客 Token 也不能访问管理接口
const (
	AudienceAdmin  = "admin"
	AudienceViewer = "viewer"
)

// Claims 管理员 Token 的自定义声明
type Claims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// ViewerClaims 访客会话 Token 的自定义声明
// 只携带被分享的宝宝ID，不包含任何管理员身份信息
type ViewerClaims struct {
	BabyID uint64 `json:"baby_id"`
	jwt.RegisteredClaims
}

// GenerateToken 生成管理员 JWT Token
func GenerateToken(userID uint64, username, email, secretKey, issuer string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
			Audience:  []string{AudienceAdmin},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// GenerateViewerToken 生成访客会话 Token
// 在分享链接校验成功后签发，有效期内访客无需重复提交分享密码
func GenerateViewerToken(babyID uint64, secretKey, issuer string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := &ViewerClaims{
		BabyID: babyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("baby:%d", babyID),
			Audience:  []string{AudienceViewer},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign viewer token: %w", err)
	}
	return tokenString, nil
}

// ParseViewerToken 解析并校验访客会话 Token
// audience 必须是 viewer，管理员 Token 在这里会被拒绝
func ParseViewerToken(tokenString, secretKey string) (*ViewerClaims, error) {
	claims := &ViewerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	}, jwt.WithAudience(AudienceViewer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid viewer token")
	}
	return claims, nil
}
