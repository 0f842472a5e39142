package handlers

import (
	"net/http"
	"strconv"

	"github.com/andrebarros6/lil-heart/internal/middlewares"
	"github.com/andrebarros6/lil-heart/internal/pkg/logger"
	"github.com/andrebarros6/lil-heart/internal/pkg/xerr"
	"github.com/andrebarros6/lil-heart/internal/services/album"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViewerHandler 访客端的只读接口，访问范围由访客会话绑定的宝宝决定
type ViewerHandler struct {
	babyService        album.BabyService
	photoService       album.PhotoService
	measurementService album.MeasurementService
	timelineService    album.TimelineService
}

func NewViewerHandler(
	babyService album.BabyService,
	photoService album.PhotoService,
	measurementService album.MeasurementService,
	timelineService album.TimelineService,
) *ViewerHandler {
	return &ViewerHandler{
		babyService:        babyService,
		photoService:       photoService,
		measurementService: measurementService,
		timelineService:    timelineService,
	}
}

// @Summary 访客查看宝宝档案
// @Description 返回分享给访客的宝宝档案和统计信息
// @Tags 访客
// @Produce json
// @Security ViewerAuth
// @Success 200 {object} xerr.Response "档案详情"
// @Failure 401 {object} xerr.Response "访客会话无效"
// @Router /api/v1/viewer/profile [get]
func (h *ViewerHandler) Profile(c *gin.Context) {
	babyID, ok := h.grantedBaby(c)
	if !ok {
		return
	}

	profile, err := h.babyService.Profile(babyID)
	if err != nil {
		logger.Error("ViewerProfile: 查询宝宝档案失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询宝宝档案失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", profile)
}

// @Summary 访客查看时间线
// @Description 照片和成长记录合并成的时间线，按日期倒序
// @Tags 访客
// @Produce json
// @Security ViewerAuth
// @Param limit query int false "返回条数"
// @Success 200 {object} xerr.Response "时间线"
// @Failure 401 {object} xerr.Response "访客会话无效"
// @Router /api/v1/viewer/timeline [get]
func (h *ViewerHandler) Timeline(c *gin.Context) {
	babyID, ok := h.grantedBaby(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	entries, err := h.timelineService.Timeline(c.Request.Context(), babyID, limit)
	if err != nil {
		logger.Error("ViewerTimeline: 查询时间线失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询时间线失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"timeline": entries})
}

// @Summary 访客查看照片
// @Tags 访客
// @Produce json
// @Security ViewerAuth
// @Param limit query int false "返回条数"
// @Success 200 {object} xerr.Response "照片列表"
// @Failure 401 {object} xerr.Response "访客会话无效"
// @Router /api/v1/viewer/photos [get]
func (h *ViewerHandler) Photos(c *gin.Context) {
	babyID, ok := h.grantedBaby(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	photos, err := h.photoService.ListPhotos(c.Request.Context(), babyID, limit)
	if err != nil {
		logger.Error("ViewerPhotos: 查询照片列表失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询照片列表失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"photos": photos})
}

// @Summary 访客查看成长记录
// @Tags 访客
// @Produce json
// @Security ViewerAuth
// @Param ascending query bool false "是否按日期升序"
// @Success 200 {object} xerr.Response "成长记录列表"
// @Failure 401 {object} xerr.Response "访客会话无效"
// @Router /api/v1/viewer/measurements [get]
func (h *ViewerHandler) Measurements(c *gin.Context) {
	babyID, ok := h.grantedBaby(c)
	if !ok {
		return
	}

	ascending := c.DefaultQuery("ascending", "true") == "true"
	ms, err := h.measurementService.ListMeasurements(babyID, 0, ascending)
	if err != nil {
		logger.Error("ViewerMeasurements: 查询成长记录失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询成长记录失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"measurements": ms})
}

// @Summary 访客查看成长统计
// @Tags 访客
// @Produce json
// @Security ViewerAuth
// @Success 200 {object} xerr.Response "统计结果"
// @Failure 401 {object} xerr.Response "访客会话无效"
// @Router /api/v1/viewer/statistics [get]
func (h *ViewerHandler) Statistics(c *gin.Context) {
	babyID, ok := h.grantedBaby(c)
	if !ok {
		return
	}

	stats, err := h.measurementService.Statistics(babyID)
	if err != nil {
		logger.Error("ViewerStatistics: 统计成长数据失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "统计成长数据失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", stats)
}

// grantedBaby 取出访客会话绑定的宝宝ID，会话缺失或未授权时中止请求
func (h *ViewerHandler) grantedBaby(c *gin.Context) (uint64, bool) {
	session, ok := middlewares.GetViewerSession(c)
	if !ok {
		xerr.AbortWithError(c, http.StatusUnauthorized, xerr.ViewerTokenInvalidCode, xerr.ErrViewerTokenInvalid.Error())
		return 0, false
	}
	babyID, granted := session.CurrentSubject()
	if !granted {
		xerr.AbortWithError(c, http.StatusUnauthorized, xerr.ViewerTokenInvalidCode, xerr.ErrViewerTokenInvalid.Error())
		return 0, false
	}
	return babyID, true
}
