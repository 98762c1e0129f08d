package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "social-wall/pkg/common/errors"
)

// Identity 认证后的用户身份，贯穿所有需要鉴权的操作
type Identity struct {
	ID       string
	Username string
	Email    string
}

// HashPassword 密码加密，bcrypt自带盐值且计算代价高，防离线爆破
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, "password hashing failed", err)
	}
	return string(hashed), nil
}

// VerifyPassword 校验明文密码与存储哈希是否匹配
func VerifyPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// Claims 令牌负载：用户id（Subject）+ 邮箱 + 用户名
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer 签发与验证JWT。签名密钥启动时加载一次，之后只读
type TokenIssuer struct {
	secret []byte
	expire time.Duration
	issuer string
}

func NewTokenIssuer(secret string, expire time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expire: expire,
		issuer: issuer,
	}
}

// Issue 生成 HS256 签名的时效令牌
func (t *TokenIssuer) Issue(ident Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    ident.Email,
		Username: ident.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, "token signing failed", err)
	}
	return signed, nil
}

// Verify 验证签名与有效期，任一失败都视为无效令牌
func (t *TokenIssuer) Verify(tokenString string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		// 只接受签发时使用的HMAC算法，防算法替换攻击
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apperrors.Wrap(apperrors.KindUnauthenticated, "Invalid/Expired token", err)
	}

	return Identity{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
