package share

// ValidationStatus 是一次分享链接校验的结果类别
type ValidationStatus int

const (
	// StatusDenied 拒绝访问
	StatusDenied ValidationStatus = iota
	// StatusPasswordRequired 链接有效但需要密码，调用方应提示输入而不是报错
	StatusPasswordRequired
	// StatusGranted 校验通过
	StatusGranted
)

// DenyReason 拒绝访问的具体原因
type DenyReason string

const (
	DenyInvalidOrExpired  DenyReason = "invalid_or_expired"
	DenyExpired           DenyReason = "expired"
	DenyIncorrectPassword DenyReason = "incorrect_password"
	DenyValidationError   DenyReason = "validation_error"
)

// ValidationResult 是 Validate 的返回值
// 用类型化的结果代替错误字符串，三种结果只会出现一种：
// Granted 时 BabyID 有效，Denied 时 Reason 有效。
type ValidationResult struct {
	Status ValidationStatus
	BabyID uint64
	Reason DenyReason
}

func granted(babyID uint64) ValidationResult {
	return ValidationResult{Status: StatusGranted, BabyID: babyID}
}

func passwordRequired() ValidationResult {
	return ValidationResult{Status: StatusPasswordRequired}
}

func denied(reason DenyReason) ValidationResult {
	return ValidationResult{Status: StatusDenied, Reason: reason}
}
