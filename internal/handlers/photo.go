package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/utils"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/services/album"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PhotoHandler struct {
	photoService album.PhotoService
	babyService  album.BabyService
}

func NewPhotoHandler(photoService album.PhotoService, babyService album.BabyService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		babyService:  babyService,
	}
}

type UpdateCaptionRequest struct {
	Caption *string `json:"caption"` // null 表示清除描述
}

// @Summary 上传照片
// @Description 上传一张照片到宝宝相册，服务端会压缩为JPEG
// @Tags 照片
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Param file formData file true "照片文件"
// @Param caption formData string false "照片描述（最多500字）"
// @Param photo_date formData string false "拍摄日期 YYYY-MM-DD，默认今天"
// @Success 200 {object} xerr.Response "上传成功"
// @Failure 400 {object} xerr.Response "文件过大或格式无法识别"
// @Failure 403 {object} xerr.Response "无权访问"
// @Router /api/v1/babies/{baby_id}/photos [post]
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "缺少照片文件: "+err.Error())
		return
	}

	var caption *string
	if v := c.PostForm("caption"); v != "" {
		caption = &v
	}

	photoDate := time.Now()
	if v := c.PostForm("photo_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "拍摄日期格式应为 YYYY-MM-DD")
			return
		}
		photoDate = parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("UploadPhoto: 打开上传文件失败", zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "读取上传文件失败")
		return
	}
	defer file.Close()

	photo, err := h.photoService.UploadPhoto(c.Request.Context(), userID, album.UploadPhotoInput{
		BabyID:    babyID,
		FileName:  fileHeader.Filename,
		Size:      fileHeader.Size,
		Reader:    file,
		Caption:   caption,
		PhotoDate: photoDate,
	})
	if err != nil {
		respondPhotoError(c, "UploadPhoto", err)
		return
	}

	xerr.Success(c, http.StatusOK, "上传成功", photo)
}

// @Summary 照片列表
// @Description 按拍摄日期倒序返回宝宝的照片
// @Tags 照片
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Param limit query int false "返回条数，默认不限制"
// @Success 200 {object} xerr.Response "照片列表"
// @Failure 403 {object} xerr.Response "无权访问"
// @Router /api/v1/babies/{baby_id}/photos [get]
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	babyID, ok := h.ownedBaby(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	photos, err := h.photoService.ListPhotos(c.Request.Context(), babyID, limit)
	if err != nil {
		logger.Error("ListPhotos: 查询照片列表失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询照片列表失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"photos": photos})
}

// @Summary 搜索照片
// @Description 在宝宝照片的描述里做全文搜索
// @Tags 照片
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Param q query string true "搜索关键词"
// @Param limit query int false "返回条数"
// @Success 200 {object} xerr.Response "命中的照片"
// @Failure 403 {object} xerr.Response "无权访问"
// @Router /api/v1/babies/{baby_id}/photos/search [get]
func (h *PhotoHandler) SearchPhotos(c *gin.Context) {
	babyID, ok := h.ownedBaby(c)
	if !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, "搜索关键词不能为空")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	photos, err := h.photoService.SearchPhotos(c.Request.Context(), babyID, query, limit)
	if err != nil {
		if errors.Is(err, xerr.ErrSearchError) {
			xerr.Error(c, http.StatusInternalServerError, xerr.SearchErrorCode, err.Error())
		} else {
			logger.Error("SearchPhotos: 搜索照片失败", zap.Uint64("babyID", babyID), zap.Error(err))
			xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "搜索照片失败")
		}
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"photos": photos})
}

// @Summary 修改照片描述
// @Tags 照片
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param photo_id path int true "照片ID"
// @Param data body UpdateCaptionRequest true "新描述"
// @Success 200 {object} xerr.Response "修改成功"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "照片不存在"
// @Router /api/v1/photos/{photo_id} [put]
func (h *PhotoHandler) UpdateCaption(c *gin.Context) {
	photoID, err := parseIDParam(c, "photo_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	var req UpdateCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	photo, err := h.photoService.UpdateCaption(c.Request.Context(), userID, photoID, req.Caption)
	if err != nil {
		respondPhotoError(c, "UpdateCaption", err)
		return
	}

	xerr.Success(c, http.StatusOK, "修改成功", photo)
}

// @Summary 删除照片
// @Description 删除照片记录和对应的存储对象
// @Tags 照片
// @Produce json
// @Security BearerAuth
// @Param photo_id path int true "照片ID"
// @Success 200 {object} xerr.Response "删除成功"
// @Failure 403 {object} xerr.Response "无权访问"
// @Failure 404 {object} xerr.Response "照片不存在"
// @Router /api/v1/photos/{photo_id} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	photoID, err := parseIDParam(c, "photo_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), userID, photoID); err != nil {
		respondPhotoError(c, "DeletePhoto", err)
		return
	}

	xerr.Success(c, http.StatusOK, "删除成功", nil)
}

// @Summary 刷新照片访问URL
// @Description 照片的预签名URL过期后重新获取
// @Tags 照片
// @Produce json
// @Security BearerAuth
// @Param photo_id path int true "照片ID"
// @Success 200 {object} xerr.Response "新的访问URL"
// @Failure 404 {object} xerr.Response "照片不存在"
// @Router /api/v1/photos/{photo_id}/url [get]
func (h *PhotoHandler) RefreshPhotoURL(c *gin.Context) {
	photoID, err := parseIDParam(c, "photo_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	fileURL, err := h.photoService.RefreshPhotoURL(c.Request.Context(), photoID)
	if err != nil {
		respondPhotoError(c, "RefreshPhotoURL", err)
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"file_url": fileURL})
}

// ownedBaby 解析 baby_id 并校验归属
func (h *PhotoHandler) ownedBaby(c *gin.Context) (uint64, bool) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return 0, false
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return 0, false
	}

	if _, err := h.babyService.GetBaby(userID, babyID); err != nil {
		respondBabyError(c, "ownedBaby", err)
		return 0, false
	}
	return babyID, true
}

func respondPhotoError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, xerr.ErrBabyNotFound):
		xerr.Error(c, http.StatusNotFound, xerr.BabyNotFoundCode, err.Error())
	case errors.Is(err, xerr.ErrPhotoNotFound):
		xerr.Error(c, http.StatusNotFound, xerr.PhotoNotFoundCode, err.Error())
	case errors.Is(err, xerr.ErrPermissionDenied):
		xerr.Error(c, http.StatusForbidden, xerr.PermissionDeniedCode, err.Error())
	case errors.Is(err, xerr.ErrPhotoTooLarge):
		xerr.Error(c, http.StatusBadRequest, xerr.PhotoTooLargeCode, err.Error())
	case errors.Is(err, xerr.ErrPhotoFormatInvalid):
		xerr.Error(c, http.StatusBadRequest, xerr.PhotoFormatInvalidCode, err.Error())
	case errors.Is(err, xerr.ErrCaptionTooLong):
		xerr.Error(c, http.StatusBadRequest, xerr.CaptionTooLongCode, err.Error())
	default:
		logger.Error(op+": 照片操作失败", zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "照片操作失败")
	}
}
