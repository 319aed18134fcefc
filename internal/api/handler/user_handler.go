package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/service"
	"skillswap/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile 获取当前用户资料
// GET /api/users/profile/
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// UpdateProfile 更新当前用户资料（仅更新请求中出现的字段）
// PUT /api/users/profile/
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// Browse 浏览公开用户（找搭子），支持搜索与分页
// GET /api/users/list/?search=&page=&page_size=
func (h *UserHandler) Browse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userSvc.Browse(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// ListOfferedSkills 当前用户可教授技能列表
// GET /api/users/skills/offered/
func (h *UserHandler) ListOfferedSkills(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	skills, err := h.userSvc.ListOfferedSkills(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, skills)
}

// ListWantedSkills 当前用户求学技能列表
// GET /api/users/skills/wanted/
func (h *UserHandler) ListWantedSkills(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	skills, err := h.userSvc.ListWantedSkills(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, skills)
}

// AddOfferedSkill 添加可教授技能（按名称取或建）
// POST /api/users/skills/offered/
func (h *UserHandler) AddOfferedSkill(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddOfferedSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	skill, err := h.userSvc.AddOfferedSkill(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, skill)
}

// AddWantedSkill 添加求学技能（按名称取或建）
// POST /api/users/skills/wanted/
func (h *UserHandler) AddWantedSkill(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddWantedSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	skill, err := h.userSvc.AddWantedSkill(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, skill)
}

// RemoveSkill 移除用户技能关联
// DELETE /api/users/skills/:type/:id/
func (h *UserHandler) RemoveSkill(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	skillType := c.Param("type")
	if skillType != "offered" && skillType != "wanted" {
		response.BadRequest(c, 10001, "技能类型仅支持 offered / wanted")
		return
	}

	err := h.userSvc.RemoveSkill(c.Request.Context(), userID, skillType, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserSkillNotFound) {
			response.NotFound(c, 20002, "未找到该技能关联")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
