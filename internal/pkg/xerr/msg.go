package xerr

import "errors"

var (
	// 通用错误
	ErrInternalServer = errors.New("服务器内部错误")
	ErrInvalidParams  = errors.New("无效的请求参数")

	// 认证与授权错误
	ErrUnauthorized       = errors.New("用户未授权")
	ErrTokenInvalid       = errors.New("认证 Token 无效或已过期")
	ErrInvalidCredentials = errors.New("邮箱或密码不正确")
	ErrUserAlreadyExists  = errors.New("该用户名已被注册")
	ErrEmailAlreadyExists = errors.New("邮箱已被注册")

	// 权限错误
	ErrPermissionDenied       = errors.New("您没有操作此宝宝档案的权限")
	ErrSharePasswordRequired  = errors.New("分享链接需要密码")
	ErrSharePasswordIncorrect = errors.New("分享密码不正确")
	ErrShareExpired           = errors.New("分享链接已过期")
	ErrViewerTokenInvalid     = errors.New("访客会话无效或已过期")

	// 资源未找到错误
	ErrUserNotFound        = errors.New("用户不存在")
	ErrBabyNotFound        = errors.New("宝宝档案不存在")
	ErrPhotoNotFound       = errors.New("照片不存在")
	ErrMeasurementNotFound = errors.New("成长记录不存在")
	ErrShareNotFound       = errors.New("分享链接不存在或已失效")

	// 业务校验错误
	ErrPhotoTooLarge       = errors.New("照片文件过大，超出上传限制")
	ErrPhotoFormatInvalid  = errors.New("无法识别的图片格式")
	ErrMeasurementEmpty    = errors.New("体重和身高至少填写一项")
	ErrWeightOutOfRange    = errors.New("体重必须在 0.5 到 50 kg 之间")
	ErrHeightOutOfRange    = errors.New("身高必须在 30 到 200 cm 之间")
	ErrNotesTooLong        = errors.New("备注过长，最多500字")
	ErrCaptionTooLong      = errors.New("照片描述过长，最多500字")
	ErrSharePasswordShort  = errors.New("分享密码过短")

	// 数据库与外部服务错误
	ErrDatabaseError = errors.New("数据库操作失败")
	ErrStorageError  = errors.New("存储服务操作失败")
	ErrSearchError   = errors.New("搜索服务操作失败")
)
