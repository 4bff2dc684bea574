package controller

import (
	"errors"
	"strconv"
	"workshop_hub_backend/internal/service"
	"workshop_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// LearnerController 报名流程相关接口
type LearnerController struct {
	EnrollmentService *service.EnrollmentService
}

func NewLearnerController(enrollmentService *service.EnrollmentService) *LearnerController {
	return &LearnerController{EnrollmentService: enrollmentService}
}

// EnrollRequest 报名请求体
// swagger:model EnrollRequest
type EnrollRequest struct {
	WorkshopID uint `json:"workshopId" binding:"required"`
}

// Enroll godoc
// @Summary 学员报名工作坊
// @Description 创建 pending 报名记录并通知工作坊导师（尽力而为）
// @Tags 学员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId query int true "学员ID"
// @Param   body body EnrollRequest true "目标工作坊"
// @Success 200 {object} util.Response{data=service.EnrollmentRequestResult} "成功"
// @Failure 400 {object} util.Response "已报名该工作坊"
// @Failure 404 {object} util.Response "工作坊或用户不存在"
// @Router /api/learners/enroll [post]
func (c *LearnerController) Enroll(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Query("userId"))
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.EnrollmentService.Request(uint(userID), req.WorkshopID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrWorkshopNotFound):
			util.NotFound(ctx, "Workshop not found.")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found.")
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.BadRequest(ctx, "User is already enrolled in this workshop.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// ConfirmEnrollmentRequest 确认报名请求体
// swagger:model ConfirmEnrollmentRequest
type ConfirmEnrollmentRequest struct {
	LearnerID uint `json:"learnerId" binding:"required"`
}

// ConfirmEnrollment godoc
// @Summary 导师确认报名
// @Description 将匹配 (learnerId, workshopId) 的报名置为 enrolled 并通知学员（尽力而为）
// @Tags 学员
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   workshopId query int true "工作坊ID"
// @Param   body body ConfirmEnrollmentRequest true "学员"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 404 {object} util.Response "报名记录或用户不存在"
// @Router /api/learners/confirm-enrollment [post]
func (c *LearnerController) ConfirmEnrollment(ctx *gin.Context) {
	workshopID, err := strconv.Atoi(ctx.Query("workshopId"))
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	var req ConfirmEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Confirm(uint(workshopID), req.LearnerID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx, "Enrollment not found.")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}

// ListEnrolled godoc
// @Summary 查看学员已报名的工作坊
// @Description 展开学员报名的全部工作坊，活动一并返回
// @Tags 学员
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId query int true "学员ID"
// @Success 200 {object} util.Response{data=[]model.Workshop} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/learners/enrolled [get]
func (c *LearnerController) ListEnrolled(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Query("userId"))
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	workshops, err := c.EnrollmentService.ListEnrolled(uint(userID))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, workshops)
}
