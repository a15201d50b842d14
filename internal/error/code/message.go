package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTooManyRequests: "请求频率过高",

	// 房间相关错误码
	ErrRoomNotFound:      "房间不存在",
	ErrRoomAlreadyExist:  "房间已存在",
	ErrRoomStatusInvalid: "房间状态非法",

	// 租户相关错误码
	ErrTenantNotFound:      "租户不存在",
	ErrTenantAlreadyExist:  "租户已存在",
	ErrTenantStatusInvalid: "租户支付状态非法",

	// 收款相关错误码
	ErrPaymentNotFound: "收款记录不存在",
	ErrPaymentInvalid:  "收款金额非法",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTooManyRequests: StatusTooManyRequests,

	// 房间相关错误码
	ErrRoomNotFound:      StatusNotFound,
	ErrRoomAlreadyExist:  StatusBadRequest,
	ErrRoomStatusInvalid: StatusBadRequest,

	// 租户相关错误码
	ErrTenantNotFound:      StatusNotFound,
	ErrTenantAlreadyExist:  StatusBadRequest,
	ErrTenantStatusInvalid: StatusBadRequest,

	// 收款相关错误码
	ErrPaymentNotFound: StatusNotFound,
	ErrPaymentInvalid:  StatusBadRequest,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
