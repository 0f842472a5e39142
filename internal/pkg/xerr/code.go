package xerr

// 定义了统一的业务错误码
const (
	SuccessCode = 20000 // 通用成功码

	// --- 客户端请求错误系列 (400xx) ---
	InvalidParamsCode       = 40000 // 无效的请求参数
	ValidationFailedCode    = 40001 // 参数验证失败
	PhotoTooLargeCode       = 40002 // 照片文件过大
	PhotoFormatInvalidCode  = 40003 // 无法识别的图片格式
	MeasurementInvalidCode  = 40004 // 体重/身高超出合理范围
	MeasurementEmptyCode    = 40005 // 体重和身高至少填写一项
	CaptionTooLongCode      = 40006 // 照片描述过长
	NotesTooLongCode        = 40007 // 测量备注过长
	SharePasswordShortCode  = 40008 // 分享密码过短

	// --- 认证与授权错误系列 (401xx) ---
	UnauthorizedCode       = 40100 // 通用未授权
	TokenInvalidCode       = 40101 // Token 无效或过期
	InvalidCredentialsCode = 40102 // 邮箱或密码错误
	ViewerTokenInvalidCode = 40103 // 访客会话无效或过期
	ShareRevokedCode       = 40104 // 分享已被撤销，访客会话失效

	// --- 权限错误系列 (403xx) ---
	ForbiddenCode              = 40300 // 通用无权限
	PermissionDeniedCode       = 40301 // 非宝宝创建者
	SharePasswordRequiredCode  = 40302 // 分享需要密码
	SharePasswordIncorrectCode = 40303 // 分享密码不正确
	ShareExpiredCode           = 40304 // 分享链接已过期

	// --- 资源未找到错误系列 (404xx) ---
	NotFoundCode            = 40400 // 通用资源未找到
	UserNotFoundCode        = 40401 // 用户不存在
	BabyNotFoundCode        = 40402 // 宝宝档案不存在
	PhotoNotFoundCode       = 40403 // 照片不存在
	MeasurementNotFoundCode = 40404 // 成长记录不存在
	ShareNotFoundCode       = 40405 // 分享链接不存在或已失效

	// --- 业务逻辑冲突系列 (409xx) ---
	UserAlreadyExistsCode  = 40900 // 用户名已存在
	EmailAlreadyExistsCode = 40901 // 邮箱已存在

	// --- 限流系列 (429xx) ---
	TooManyRequestsCode = 42900 // 请求过于频繁

	// --- 服务器内部错误系列 (500xx) ---
	InternalServerErrorCode = 50000 // 服务器内部通用错误
	DatabaseErrorCode       = 50001 // 数据库操作失败
	StorageErrorCode        = 50002 // 存储服务操作失败（如MinIO）
	SearchErrorCode         = 50003 // 搜索服务操作失败
)
