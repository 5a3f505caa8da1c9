package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/util"
)

const (
	// ContextUID 当前请求用户的 uid 在 gin 上下文中的键
	ContextUID = "uid"
	// ContextIdentity 解码后的身份信息在 gin 上下文中的键
	ContextIdentity = "identity"
)

// AuthMiddleware 校验身份提供方签发的令牌并把当前用户写入上下文
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效的认证格式"))
			c.Abort()
			return
		}

		identity, err := util.VerifyIdentityToken(parts[1])
		if err != nil {
			errors.HandleError(c, err)
			c.Abort()
			return
		}

		util.Logger.Debug("令牌校验通过",
			zap.String("uid", identity.UID),
			zap.String("path", c.Request.URL.Path))

		c.Set(ContextUID, identity.UID)
		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

// CurrentUID 从上下文取出当前用户的 uid
func CurrentUID(c *gin.Context) string {
	uid, _ := c.Get(ContextUID)
	id, _ := uid.(string)
	return id
}

// CurrentIdentity 从上下文取出解码后的身份信息
func CurrentIdentity(c *gin.Context) *model.Identity {
	value, _ := c.Get(ContextIdentity)
	identity, _ := value.(*model.Identity)
	return identity
}
