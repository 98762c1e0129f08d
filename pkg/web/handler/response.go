package handler

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"

	apperrors "social-wall/pkg/common/errors"
)

// respondError 统一错误响应：状态码由错误类别决定，
// 内部错误只记日志，对外不透出细节
func respondError(c *app.RequestContext, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		hlog.Errorf("internal error: path=%s err=%v", c.Path(), err)
	}

	body := utils.H{
		"code":    string(kind),
		"message": apperrors.MessageOf(err),
	}
	if fields := apperrors.FieldsOf(err); len(fields) > 0 {
		body["errors"] = fields
	}

	c.JSON(apperrors.HTTPStatus(kind), body)
}
