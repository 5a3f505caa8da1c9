package util

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"

	"organising-events-app/config"
	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
)

// VerifyIdentityToken 校验身份提供方签发的令牌并返回解码后的身份信息。
// 令牌缺失、无效或过期均返回认证错误，不会进入核心逻辑。
func VerifyIdentityToken(tokenString string) (*model.Identity, error) {
	if tokenString == "" {
		return nil, errors.New(errors.ErrUnauthorized, "未收到令牌")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("未知的签名算法: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.IdentitySecret), nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, errors.Wrap(errors.ErrTokenExpired, "令牌已过期", err)
		}
		return nil, errors.Wrap(errors.ErrInvalidToken, "无效的令牌", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New(errors.ErrInvalidToken, "无效的令牌")
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return nil, errors.New(errors.ErrInvalidToken, "令牌中缺少用户ID")
	}

	identity := &model.Identity{UID: uid}
	identity.DisplayName, _ = claims["name"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.PhotoURL, _ = claims["picture"].(string)
	return identity, nil
}
