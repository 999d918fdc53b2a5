package public

import (
	"errors"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

// 顺序敏感：来源配置错误同时也是目录不可用
var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrCatalogSourceInvalid, code: response.CodeInternal, msg: "catalog source misconfigured"},
	{target: service.ErrCatalogUnavailable, code: response.CodeServiceUnavailable, msg: "catalog unavailable"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, err)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func respondCatalogError(c *gin.Context, err error) {
	respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "catalog request failed")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
