package controller

import (
	"errors"
	"strconv"
	"time"
	"workshop_hub_backend/internal/service"
	"workshop_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorkshopController struct {
	WorkshopService *service.WorkshopService
}

func NewWorkshopController(workshopService *service.WorkshopService) *WorkshopController {
	return &WorkshopController{WorkshopService: workshopService}
}

// List godoc
// @Summary 获取全部工作坊
// @Description 按标题排序返回所有工作坊
// @Tags 工作坊
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Workshop} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/workshops [get]
func (c *WorkshopController) List(ctx *gin.Context) {
	workshops, err := c.WorkshopService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, workshops)
}

// Get godoc
// @Summary 获取单个工作坊
// @Description 返回工作坊及其活动列表
// @Tags 工作坊
// @Produce  json
// @Param   workshopId path int true "工作坊ID"
// @Success 200 {object} util.Response{data=model.Workshop} "成功"
// @Failure 404 {object} util.Response "工作坊不存在"
// @Router /api/workshops/{workshopId} [get]
func (c *WorkshopController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("workshopId"))
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	workshop, err := c.WorkshopService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrWorkshopNotFound) {
			util.NotFound(ctx, "Workshop not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, workshop)
}

// CreateWorkshopRequest 创建工作坊请求
// swagger:model CreateWorkshopRequest
type CreateWorkshopRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// Create godoc
// @Summary 创建工作坊（仅导师）
// @Description 以当前登录导师身份创建工作坊
// @Tags 工作坊
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateWorkshopRequest true "工作坊信息"
// @Success 200 {object} util.Response{data=model.Workshop} "成功"
// @Failure 400 {object} util.Response "标题和描述必填"
// @Failure 401 {object} util.Response "未授权"
// @Failure 403 {object} util.Response "角色无权限"
// @Router /api/workshops [post]
func (c *WorkshopController) Create(ctx *gin.Context) {
	var req CreateWorkshopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Title and description are required")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	workshop, err := c.WorkshopService.Create(claims.UserID, req.Title, req.Description)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, workshop)
}

// ActivityRequest 活动的创建/更新请求
// swagger:model ActivityRequest
type ActivityRequest struct {
	Title       string    `json:"title" binding:"required,min=5,max=50"`
	Description string    `json:"description" binding:"required,min=10,max=255"`
	Schedule    time.Time `json:"schedule" binding:"required"`
}

// AddActivity godoc
// @Summary 为工作坊添加活动（仅导师）
// @Description 新建活动并追加到工作坊的活动列表
// @Tags 活动
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   workshopId query int true "工作坊ID"
// @Param   body body ActivityRequest true "活动信息"
// @Success 200 {object} util.Response{data=model.Activity} "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "工作坊不存在"
// @Router /api/workshops/activities [post]
func (c *WorkshopController) AddActivity(ctx *gin.Context) {
	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Title, description, and schedule are required")
		return
	}

	workshopID, err := strconv.Atoi(ctx.Query("workshopId"))
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	activity, err := c.WorkshopService.AddActivity(uint(workshopID), req.Title, req.Description, req.Schedule)
	if err != nil {
		if errors.Is(err, util.ErrWorkshopNotFound) {
			util.NotFound(ctx, "Workshop not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, activity)
}

// UpdateActivity godoc
// @Summary 更新活动（仅导师）
// @Description 整体替换活动的标题、描述和时间
// @Tags 活动
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   activityId path int true "活动ID"
// @Param   body body ActivityRequest true "活动信息"
// @Success 200 {object} util.Response{data=model.Activity} "成功"
// @Failure 404 {object} util.Response "活动不存在"
// @Router /api/workshops/activities/{activityId} [put]
func (c *WorkshopController) UpdateActivity(ctx *gin.Context) {
	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Title, description, and schedule are required")
		return
	}

	id, err := strconv.Atoi(ctx.Param("activityId"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	activity, err := c.WorkshopService.UpdateActivity(uint(id), req.Title, req.Description, req.Schedule)
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx, "The activity with the given ID was not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, activity)
}

// DeleteActivity godoc
// @Summary 删除活动（仅导师）
// @Description 删除活动并级联清理所有工作坊对它的引用
// @Tags 活动
// @Produce  json
// @Security ApiKeyAuth
// @Param   activityId path int true "活动ID"
// @Success 200 {object} util.Response{data=model.Activity} "成功"
// @Failure 404 {object} util.Response "活动不存在"
// @Router /api/workshops/activities/{activityId} [delete]
func (c *WorkshopController) DeleteActivity(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("activityId"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	activity, err := c.WorkshopService.DeleteActivity(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx, "The activity with the given ID was not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, activity)
}

// GetActivity godoc
// @Summary 获取单个活动
// @Description 根据ID返回活动
// @Tags 活动
// @Produce  json
// @Param   activityId path int true "活动ID"
// @Success 200 {object} util.Response{data=model.Activity} "成功"
// @Failure 404 {object} util.Response "活动不存在"
// @Router /api/workshops/activities/{activityId} [get]
func (c *WorkshopController) GetActivity(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("activityId"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	activity, err := c.WorkshopService.GetActivity(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrActivityNotFound) {
			util.NotFound(ctx, "The activity with the given ID was not found.")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, activity)
}
