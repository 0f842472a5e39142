package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/utils"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/services/album"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BabyHandler struct {
	babyService   album.BabyService
	exportService album.ExportService
}

func NewBabyHandler(babyService album.BabyService, exportService album.ExportService) *BabyHandler {
	return &BabyHandler{
		babyService:   babyService,
		exportService: exportService,
	}
}

type CreateBabyRequest struct {
	Name      string `json:"name" binding:"required,max=64"`
	Birthdate string `json:"birthdate" binding:"required"` // YYYY-MM-DD
}

type UpdateBabyRequest struct {
	Name            *string `json:"name"`
	Birthdate       *string `json:"birthdate"` // YYYY-MM-DD
	ProfilePhotoURL *string `json:"profile_photo_url"`
}

// @Summary 创建宝宝档案
// @Description 创建一条新的宝宝档案（时间线）
// @Tags 宝宝档案
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body CreateBabyRequest true "宝宝信息"
// @Success 200 {object} xerr.Response "创建成功"
// @Failure 400 {object} xerr.Response "参数错误"
// @Router /api/v1/babies [post]
func (h *BabyHandler) CreateBaby(c *gin.Context) {
	var req CreateBabyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "出生日期格式应为 YYYY-MM-DD")
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	baby, err := h.babyService.CreateBaby(userID, req.Name, birthdate)
	if err != nil {
		if errors.Is(err, xerr.ErrInvalidParams) {
			xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		} else {
			logger.Error("CreateBaby: 创建宝宝档案失败", zap.Error(err))
			xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "创建宝宝档案失败")
		}
		return
	}

	xerr.Success(c, http.StatusOK, "创建成功", baby)
}

// @Summary 宝宝档案列表
// @Description 返回当前用户创建的所有宝宝档案
// @Tags 宝宝档案
// @Produce json
// @Security BearerAuth
// @Success 200 {object} xerr.Response "档案列表"
// @Router /api/v1/babies [get]
func (h *BabyHandler) ListBabies(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	babies, err := h.babyService.ListBabies(userID)
	if err != nil {
		logger.Error("ListBabies: 查询宝宝档案列表失败", zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询宝宝档案列表失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"babies": babies})
}

// @Summary 宝宝档案详情
// @Description 返回宝宝档案、当前年龄和照片/成长记录统计
// @Tags 宝宝档案
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Success 200 {object} xerr.Response "档案详情"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "档案不存在"
// @Router /api/v1/babies/{baby_id} [get]
func (h *BabyHandler) GetBaby(c *gin.Context) {
	babyID, userID, ok := h.ownedBabyID(c)
	if !ok {
		return
	}

	profile, err := h.babyService.Profile(babyID)
	if err != nil {
		logger.Error("GetBaby: 查询宝宝档案失败",
			zap.Uint64("babyID", babyID), zap.Uint64("userID", userID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询宝宝档案失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", profile)
}

// @Summary 修改宝宝档案
// @Description 修改宝宝的名字、出生日期或头像
// @Tags 宝宝档案
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Param data body UpdateBabyRequest true "要修改的字段"
// @Success 200 {object} xerr.Response "修改成功"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "档案不存在"
// @Router /api/v1/babies/{baby_id} [put]
func (h *BabyHandler) UpdateBaby(c *gin.Context) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	var req UpdateBabyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	var birthdate *time.Time
	if req.Birthdate != nil {
		parsed, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil {
			xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "出生日期格式应为 YYYY-MM-DD")
			return
		}
		birthdate = &parsed
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	baby, err := h.babyService.UpdateBaby(userID, babyID, req.Name, birthdate, req.ProfilePhotoURL)
	if err != nil {
		respondBabyError(c, "UpdateBaby", err)
		return
	}

	xerr.Success(c, http.StatusOK, "修改成功", baby)
}

// @Summary 导出相册
// @Description 把宝宝的全部照片和成长记录打包为ZIP下载
// @Tags 宝宝档案
// @Produce application/zip
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Success 200 {file} binary "ZIP文件流"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "档案不存在"
// @Router /api/v1/babies/{baby_id}/export [get]
func (h *BabyHandler) ExportAlbum(c *gin.Context) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	reader, zipName, err := h.exportService.ExportAlbum(c.Request.Context(), userID, babyID)
	if err != nil {
		respondBabyError(c, "ExportAlbum", err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(zipName)))

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// 响应头已经发出，只能记录日志
		logger.Error("ExportAlbum: 写出ZIP流失败", zap.Uint64("babyID", babyID), zap.Error(err))
	}
}

// ownedBabyID 解析路径参数并校验当前用户是该宝宝的创建者
func (h *BabyHandler) ownedBabyID(c *gin.Context) (babyID, userID uint64, ok bool) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return 0, 0, false
	}

	userID, idOK := utils.GetUserIDFromContext(c)
	if !idOK {
		return 0, 0, false
	}

	if _, err := h.babyService.GetBaby(userID, babyID); err != nil {
		respondBabyError(c, "ownedBabyID", err)
		return 0, 0, false
	}
	return babyID, userID, true
}

// respondBabyError 宝宝档案相关错误到HTTP响应的映射
func respondBabyError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, xerr.ErrBabyNotFound):
		xerr.Error(c, http.StatusNotFound, xerr.BabyNotFoundCode, err.Error())
	case errors.Is(err, xerr.ErrPermissionDenied):
		xerr.Error(c, http.StatusForbidden, xerr.PermissionDeniedCode, err.Error())
	case errors.Is(err, xerr.ErrInvalidParams):
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
	default:
		logger.Error(op+": 操作失败", zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "操作失败")
	}
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("无效的 %s", name)
	}
	return id, nil
}
