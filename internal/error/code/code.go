package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 房间相关错误码 (102xxx).
const (
	// ErrRoomNotFound - 404: 房间不存在.
	ErrRoomNotFound int = iota + 102000
	// ErrRoomAlreadyExist - 400: 房间已存在.
	ErrRoomAlreadyExist
	// ErrRoomStatusInvalid - 400: 房间状态非法.
	ErrRoomStatusInvalid
)

// 租户相关错误码 (103xxx).
const (
	// ErrTenantNotFound - 404: 租户不存在.
	ErrTenantNotFound int = iota + 103000
	// ErrTenantAlreadyExist - 400: 租户已存在.
	ErrTenantAlreadyExist
	// ErrTenantStatusInvalid - 400: 租户支付状态非法.
	ErrTenantStatusInvalid
)

// 收款相关错误码 (104xxx).
const (
	// ErrPaymentNotFound - 404: 收款记录不存在.
	ErrPaymentNotFound int = iota + 104000
	// ErrPaymentInvalid - 400: 收款金额非法.
	ErrPaymentInvalid
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
