package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/andrebarros6/lil-heart/internal/config"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/utils"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/services/share"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShareHandler struct {
	shareService share.ShareService
	cfg          *config.Config
}

func NewShareHandler(shareService share.ShareService, cfg *config.Config) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		cfg:          cfg,
	}
}

type IssueShareRequest struct {
	Password         *string `json:"password"`           // 可选的访问密码
	ExpiresInMinutes *int    `json:"expires_in_minutes"` // 可选的有效期（分钟）
}

type ValidateShareRequest struct {
	Token    string  `json:"token" binding:"required"`
	Password *string `json:"password"`
}

// @Summary 创建分享链接
// @Description 为宝宝相册签发新的分享链接，旧链接同时失效，可设置密码和有效期
// @Tags 分享
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Param request body IssueShareRequest true "分享设置"
// @Success 200 {object} xerr.Response "分享链接创建成功"
// @Failure 400 {object} xerr.Response "密码过短"
// @Failure 403 {object} xerr.Response "无权操作"
// @Failure 404 {object} xerr.Response "宝宝档案不存在"
// @Router /api/v1/babies/{baby_id}/shares [post]
func (h *ShareHandler) IssueShare(c *gin.Context) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	var req IssueShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "请求参数解析失败: "+err.Error())
		return
	}

	if req.Password != nil && utf8.RuneCountInString(*req.Password) < h.cfg.Album.MinSharePasswordLn {
		xerr.Error(c, http.StatusBadRequest, xerr.SharePasswordShortCode,
			fmt.Sprintf("%s（至少%d位）", xerr.ErrSharePasswordShort.Error(), h.cfg.Album.MinSharePasswordLn))
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	link, err := h.shareService.IssueShareLink(c.Request.Context(), userID, babyID, req.Password, req.ExpiresInMinutes)
	if err != nil {
		respondShareError(c, "IssueShare", err)
		return
	}

	xerr.Success(c, http.StatusOK, "分享链接创建成功", gin.H{
		"share":     link,
		"share_url": h.shareURL(link.Token),
	})
}

// @Summary 查看当前分享链接
// @Description 返回宝宝相册当前生效的分享链接，没有则返回空
// @Tags 分享
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Success 200 {object} xerr.Response "当前分享链接"
// @Failure 403 {object} xerr.Response "无权操作"
// @Failure 404 {object} xerr.Response "宝宝档案不存在"
// @Router /api/v1/babies/{baby_id}/shares/active [get]
func (h *ShareHandler) GetActiveShare(c *gin.Context) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	link, err := h.shareService.GetActiveShareLink(c.Request.Context(), userID, babyID)
	if err != nil {
		respondShareError(c, "GetActiveShare", err)
		return
	}
	if link == nil {
		xerr.Success(c, http.StatusOK, "当前没有生效的分享链接", nil)
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{
		"share":     link,
		"share_url": h.shareURL(link.Token),
	})
}

// @Summary 撤销分享链接
// @Description 让宝宝相册的所有分享链接立即失效，重复调用是安全的
// @Tags 分享
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Success 200 {object} xerr.Response "撤销成功，返回失效的链接数"
// @Failure 403 {object} xerr.Response "无权操作"
// @Failure 404 {object} xerr.Response "宝宝档案不存在"
// @Router /api/v1/babies/{baby_id}/shares [delete]
func (h *ShareHandler) RevokeShares(c *gin.Context) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	revoked, err := h.shareService.RevokeShareLinks(c.Request.Context(), userID, babyID)
	if err != nil {
		respondShareError(c, "RevokeShares", err)
		return
	}

	xerr.Success(c, http.StatusOK, "撤销成功", gin.H{"revoked_count": revoked})
}

// @Summary 校验分享链接
// @Description 访客用分享token换取访客会话。链接设有密码时第一次不带密码的请求会提示需要密码
// @Tags 分享
// @Accept json
// @Produce json
// @Param request body ValidateShareRequest true "分享token和可选密码"
// @Success 200 {object} xerr.Response "校验通过，返回访客token"
// @Failure 403 {object} xerr.Response "需要密码/密码不正确/链接已过期"
// @Failure 404 {object} xerr.Response "链接不存在或已失效"
// @Failure 429 {object} xerr.Response "请求过于频繁"
// @Router /api/v1/share/validate [post]
func (h *ShareHandler) ValidateShare(c *gin.Context) {
	var req ValidateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "请求参数解析失败: "+err.Error())
		return
	}

	result := h.shareService.Validate(c.Request.Context(), req.Token, req.Password)
	switch result.Status {
	case share.StatusGranted:
		viewerToken, err := utils.GenerateViewerToken(
			result.BabyID,
			h.cfg.JWT.SecretKey,
			h.cfg.JWT.Issuer,
			h.cfg.JWT.ViewerExpiresIn,
		)
		if err != nil {
			logger.Error("ValidateShare: 签发访客Token失败", zap.Uint64("babyID", result.BabyID), zap.Error(err))
			xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "签发访客会话失败")
			return
		}
		xerr.Success(c, http.StatusOK, "校验通过", gin.H{
			"status":       "granted",
			"baby_id":      result.BabyID,
			"viewer_token": viewerToken,
		})

	case share.StatusPasswordRequired:
		// 不是错误，提示访客输入密码后重试
		xerr.JSONResponse(c, http.StatusForbidden, xerr.SharePasswordRequiredCode,
			xerr.ErrSharePasswordRequired.Error(), gin.H{"status": "password_required"})

	default:
		h.respondDenied(c, result.Reason)
	}
}

// respondDenied 把拒绝原因映射成HTTP响应，正文里保留机器可读的reason
func (h *ShareHandler) respondDenied(c *gin.Context, reason share.DenyReason) {
	data := gin.H{"status": "denied", "reason": string(reason)}
	switch reason {
	case share.DenyExpired:
		xerr.JSONResponse(c, http.StatusForbidden, xerr.ShareExpiredCode, xerr.ErrShareExpired.Error(), data)
	case share.DenyIncorrectPassword:
		xerr.JSONResponse(c, http.StatusForbidden, xerr.SharePasswordIncorrectCode, xerr.ErrSharePasswordIncorrect.Error(), data)
	case share.DenyValidationError:
		xerr.JSONResponse(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "分享链接校验失败", data)
	default:
		xerr.JSONResponse(c, http.StatusNotFound, xerr.ShareNotFoundCode, xerr.ErrShareNotFound.Error(), data)
	}
}

// shareURL 拼出访客打开的完整分享地址
func (h *ShareHandler) shareURL(token string) string {
	return fmt.Sprintf("%s/?%s=%s", h.cfg.Server.BaseURL, h.cfg.Album.ShareTokenParam, token)
}

func respondShareError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, xerr.ErrBabyNotFound):
		xerr.Error(c, http.StatusNotFound, xerr.BabyNotFoundCode, err.Error())
	case errors.Is(err, xerr.ErrPermissionDenied):
		xerr.Error(c, http.StatusForbidden, xerr.PermissionDeniedCode, err.Error())
	default:
		logger.Error(op+": 分享操作失败", zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "分享操作失败")
	}
}
