package http

import (
	"errors"
	"net/http"
	"strconv"

	"reporting-service/domain/dto"
	"reporting-service/infrastructure/logger"
	"reporting-service/usecase"

	"github.com/gin-gonic/gin"
)

type IReportHandler interface {
	Summary(c *gin.Context)
	UserActivity(c *gin.Context)
}

type ReportHandler struct {
	reportUsecase usecase.IReportUsecase
}

func NewReportHandler(reportUsecase usecase.IReportUsecase) IReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// Summary handles GET /api/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	report, err := h.reportUsecase.BuildSummaryReport(c.Request.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while building summary report")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// UserActivity handles GET /api/reports/user/:user_id
func (h *ReportHandler) UserActivity(c *gin.Context) {
	userID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user_id must be an integer"})
		return
	}

	report, err := h.reportUsecase.BuildUserActivityReport(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: usecase.ErrUserNotFound.Error()})
			return
		}
		logger.GetLogger().WithField("userId", userID).WithField("error", err).Error("Error while building user activity report")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// parseUserID accepts unsigned decimal ids only; "-1" and "+1" are rejected.
func parseUserID(raw string) (int, error) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize-1)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}
