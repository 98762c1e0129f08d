package auth

import (
	"regexp"
	"strings"
)

// 邮箱规则：存在@且两侧非空，不做更严格的RFC校验
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+$`)

const minPasswordLength = 6

// ValidateRegisterInput 注册入参校验，纯函数，无任何IO
// 返回是否通过以及字段名到提示信息的映射
func ValidateRegisterInput(username, email, password, confirmPassword string) (bool, map[string]string) {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(username) == "" {
		fieldErrors["username"] = "Username must not be empty"
	}

	if strings.TrimSpace(email) == "" {
		fieldErrors["email"] = "Email must not be empty"
	} else if !emailRegex.MatchString(email) {
		fieldErrors["email"] = "Email must be a valid email address"
	}

	if password == "" {
		fieldErrors["password"] = "Password must not be empty"
	} else if len(password) < minPasswordLength {
		fieldErrors["password"] = "Password must be at least 6 characters"
	} else if password != confirmPassword {
		fieldErrors["confirmPassword"] = "Passwords must match"
	}

	return len(fieldErrors) == 0, fieldErrors
}

// ValidateLoginInput 登录入参校验
func ValidateLoginInput(username, password string) (bool, map[string]string) {
	fieldErrors := map[string]string{}

	if strings.TrimSpace(username) == "" {
		fieldErrors["username"] = "Username must not be empty"
	}

	if password == "" {
		fieldErrors["password"] = "Password must not be empty"
	}

	return len(fieldErrors) == 0, fieldErrors
}
