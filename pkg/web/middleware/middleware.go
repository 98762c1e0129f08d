package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/hertz-contrib/cors"

	"social-wall/pkg/common/config"
	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/auth"
)

// 身份在RequestContext中的存放键
const identityKey = "identity"

// LoggerMiddleware 结构化的请求日志记录
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c) // 放行到后续处理器
		latency := time.Since(start)

		// 结构化日志输出
		hlog.CtxTracef(c, "| %3d | %13v | %15s | %-7s | %s | UA=%s",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			ctx.GetHeader("User-Agent"),
		)
	}
}

// RecoveryMiddleware 增强型异常捕获（带配置依赖版本）
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				// 获取调用堆栈
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] %v\n%s", err, stack)

				// 生产环境处理
				if cfg.IsProd() { // 使用注入的配置实例判断环境
					ctx.AbortWithStatusJSON(500, map[string]interface{}{
						"code":    string(apperrors.KindInternal),
						"message": "internal server error",
					})
				} else { // 开发环境显示详细错误
					ctx.AbortWithStatusJSON(500, map[string]interface{}{
						"code":  string(apperrors.KindInternal),
						"error": fmt.Sprintf("%v", err),
						"stack": strings.Split(stack, "\n"),
					})
				}
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware 安全的跨域配置
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	return cors.New(
		cors.Config{
			AllowOrigins:     corsConfig.AllowOrigins,
			AllowMethods:     corsConfig.AllowMethods,
			AllowHeaders:     corsConfig.AllowHeaders,
			ExposeHeaders:    corsConfig.ExposeHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAge,
			// 动态校验来源
			AllowOriginFunc: func(origin string) bool {
				for _, domain := range corsConfig.TrustedDomains {
					if strings.Contains(origin, domain) {
						return true
					}
				}
				return false
			},
		},
	)
}

// JWTAuthMiddleware 鉴权守卫：从Authorization头提取Bearer令牌并验证。
// 三种失败对外的文案不同：缺头、格式不对、令牌无效/过期
func JWTAuthMiddleware(issuer *auth.TokenIssuer) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		authHeader := string(ctx.GetHeader("Authorization"))
		if authHeader == "" {
			abortUnauthenticated(ctx, "Authorization header must be provided")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			abortUnauthenticated(ctx, "Authentication token must be 'Bearer [token]'")
			return
		}

		ident, err := issuer.Verify(token)
		if err != nil {
			abortUnauthenticated(ctx, "Invalid/Expired token")
			return
		}

		ctx.Set(identityKey, ident)
		ctx.Next(c)
	}
}

func abortUnauthenticated(ctx *app.RequestContext, message string) {
	ctx.AbortWithStatusJSON(401, utils.H{
		"code":    string(apperrors.KindUnauthenticated),
		"message": message,
	})
}

// IdentityFrom 取出守卫写入的已认证身份
func IdentityFrom(ctx *app.RequestContext) (auth.Identity, bool) {
	value, exists := ctx.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	ident, ok := value.(auth.Identity)
	return ident, ok
}
