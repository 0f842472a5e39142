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

type MeasurementHandler struct {
	measurementService album.MeasurementService
	babyService        album.BabyService
}

func NewMeasurementHandler(measurementService album.MeasurementService, babyService album.BabyService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
		babyService:        babyService,
	}
}

type MeasurementRequest struct {
	MeasurementDate string   `json:"measurement_date"` // YYYY-MM-DD，默认今天
	WeightKg        *float64 `json:"weight_kg"`
	HeightCm        *float64 `json:"height_cm"`
	Notes           *string  `json:"notes"`
}

func (r *MeasurementRequest) toInput() (album.MeasurementInput, error) {
	input := album.MeasurementInput{
		WeightKg: r.WeightKg,
		HeightCm: r.HeightCm,
		Notes:    r.Notes,
	}
	if r.MeasurementDate != "" {
		parsed, err := time.Parse("2006-01-02", r.MeasurementDate)
		if err != nil {
			return input, errors.New("测量日期格式应为 YYYY-MM-DD")
		}
		input.MeasurementDate = parsed
	}
	return input, nil
}

// @Summary 新增成长记录
// @Description 记录某一天的体重和身高，至少填写一项
// @Tags 成长记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Param data body MeasurementRequest true "测量数据"
// @Success 200 {object} xerr.Response "创建成功"
// @Failure 400 {object} xerr.Response "数据超出合理范围"
// @Failure 403 {object} xerr.Response "无权访问"
// @Router /api/v1/babies/{baby_id}/measurements [post]
func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	babyID, err := parseIDParam(c, "baby_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	m, err := h.measurementService.AddMeasurement(userID, babyID, input)
	if err != nil {
		respondMeasurementError(c, "CreateMeasurement", err)
		return
	}

	xerr.Success(c, http.StatusOK, "创建成功", m)
}

// @Summary 成长记录列表
// @Description 返回宝宝的成长记录，ascending=true 按日期升序（成长曲线用）
// @Tags 成长记录
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Param limit query int false "返回条数"
// @Param ascending query bool false "是否按日期升序"
// @Success 200 {object} xerr.Response "成长记录列表"
// @Failure 403 {object} xerr.Response "无权访问"
// @Router /api/v1/babies/{baby_id}/measurements [get]
func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	babyID, ok := h.ownedBaby(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	ascending := c.DefaultQuery("ascending", "false") == "true"

	ms, err := h.measurementService.ListMeasurements(babyID, limit, ascending)
	if err != nil {
		logger.Error("ListMeasurements: 查询成长记录失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "查询成长记录失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", gin.H{"measurements": ms})
}

// @Summary 成长数据统计
// @Description 汇总首末记录之间的体重和身高变化
// @Tags 成长记录
// @Produce json
// @Security BearerAuth
// @Param baby_id path int true "宝宝ID"
// @Success 200 {object} xerr.Response "统计结果"
// @Failure 403 {object} xerr.Response "无权访问"
// @Router /api/v1/babies/{baby_id}/measurements/statistics [get]
func (h *MeasurementHandler) Statistics(c *gin.Context) {
	babyID, ok := h.ownedBaby(c)
	if !ok {
		return
	}

	stats, err := h.measurementService.Statistics(babyID)
	if err != nil {
		logger.Error("Statistics: 统计成长数据失败", zap.Uint64("babyID", babyID), zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "统计成长数据失败")
		return
	}

	xerr.Success(c, http.StatusOK, "查询成功", stats)
}

// @Summary 修改成长记录
// @Tags 成长记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param measurement_id path int true "记录ID"
// @Param data body MeasurementRequest true "测量数据"
// @Success 200 {object} xerr.Response "修改成功"
// @Failure 404 {object} xerr.Response "记录不存在"
// @Router /api/v1/measurements/{measurement_id} [put]
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	measurementID, err := parseIDParam(c, "measurement_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}
	input, err := req.toInput()
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	m, err := h.measurementService.UpdateMeasurement(userID, measurementID, input)
	if err != nil {
		respondMeasurementError(c, "UpdateMeasurement", err)
		return
	}

	xerr.Success(c, http.StatusOK, "修改成功", m)
}

// @Summary 删除成长记录
// @Tags 成长记录
// @Produce json
// @Security BearerAuth
// @Param measurement_id path int true "记录ID"
// @Success 200 {object} xerr.Response "删除成功"
// @Failure 404 {object} xerr.Response "记录不存在"
// @Router /api/v1/measurements/{measurement_id} [delete]
func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	measurementID, err := parseIDParam(c, "measurement_id")
	if err != nil {
		xerr.Error(c, http.StatusBadRequest, xerr.InvalidParamsCode, err.Error())
		return
	}

	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.measurementService.DeleteMeasurement(userID, measurementID); err != nil {
		respondMeasurementError(c, "DeleteMeasurement", err)
		return
	}

	xerr.Success(c, http.StatusOK, "删除成功", nil)
}

func (h *MeasurementHandler) ownedBaby(c *gin.Context) (uint64, bool) {
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

func respondMeasurementError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, xerr.ErrBabyNotFound):
		xerr.Error(c, http.StatusNotFound, xerr.BabyNotFoundCode, err.Error())
	case errors.Is(err, xerr.ErrMeasurementNotFound):
		xerr.Error(c, http.StatusNotFound, xerr.MeasurementNotFoundCode, err.Error())
	case errors.Is(err, xerr.ErrPermissionDenied):
		xerr.Error(c, http.StatusForbidden, xerr.PermissionDeniedCode, err.Error())
	case errors.Is(err, xerr.ErrMeasurementEmpty):
		xerr.Error(c, http.StatusBadRequest, xerr.MeasurementEmptyCode, err.Error())
	case errors.Is(err, xerr.ErrWeightOutOfRange), errors.Is(err, xerr.ErrHeightOutOfRange):
		xerr.Error(c, http.StatusBadRequest, xerr.MeasurementInvalidCode, err.Error())
	case errors.Is(err, xerr.ErrNotesTooLong):
		xerr.Error(c, http.StatusBadRequest, xerr.NotesTooLongCode, err.Error())
	default:
		logger.Error(op+": 成长记录操作失败", zap.Error(err))
		xerr.Error(c, http.StatusInternalServerError, xerr.InternalServerErrorCode, "成长记录操作失败")
	}
}
