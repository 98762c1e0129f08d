package errors

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// WrapGormError 将底层数据库错误转变为业务可识别错误
// 参数说明：
//   - rawErr: 原始GORM错误
//
// 返回值：
//   - error: 归类后的标准化错误
func WrapGormError(rawErr error) error {
	if rawErr == nil {
		return nil
	}

	// 处理预定义的GORM错误
	switch {
	case errors.Is(rawErr, gorm.ErrRecordNotFound):
		return New(KindNotFound, "record not found")
	case errors.Is(rawErr, gorm.ErrDuplicatedKey):
		return New(KindConflict, "duplicate entry")
	}

	// 处理MySQL驱动错误
	var mysqlErr *mysql.MySQLError
	if errors.As(rawErr, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062: // 唯一性约束冲突
			return Wrap(KindConflict, "duplicate entry", rawErr)
		case 1045, 1049, 1146: // 数据库连接、表不存在等错误
			return Wrap(KindInternal, "database internal error", rawErr)
		}
	}

	// 兜底处理：附加原始错误信息
	return Wrap(KindInternal, "database internal error", rawErr)
}

// IsDuplicateError 判断是否为重复记录错误
func IsDuplicateError(err error) bool {
	return KindOf(err) == KindConflict || errors.Is(err, gorm.ErrDuplicatedKey)
}
