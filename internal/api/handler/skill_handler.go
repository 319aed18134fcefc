package handler

import (
	"github.com/gin-gonic/gin"

	"skillswap/backend/internal/service"
	"skillswap/backend/pkg/response"
)

// SkillHandler 技能模块 HTTP 处理器
type SkillHandler struct {
	skillSvc service.SkillService
}

// NewSkillHandler 创建 SkillHandler
func NewSkillHandler(skillSvc service.SkillService) *SkillHandler {
	return &SkillHandler{skillSvc: skillSvc}
}

// List 技能目录
// GET /api/skills/?search=
func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.skillSvc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, skills)
}

// ListOffered 至少被一名用户登记为可教授的技能
// GET /api/skills/offered/
func (h *SkillHandler) ListOffered(c *gin.Context) {
	skills, err := h.skillSvc.ListOffered(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, skills)
}

// ListWanted 至少被一名用户登记为求学的技能
// GET /api/skills/wanted/
func (h *SkillHandler) ListWanted(c *gin.Context) {
	skills, err := h.skillSvc.ListWanted(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, skills)
}

// Create 创建技能（名称重复时返回已有记录）
// POST /api/skills/
func (h *SkillHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"        binding:"required,min=1,max=100"`
		Description string `json:"description" binding:"omitempty,max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	skill, err := h.skillSvc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, skill)
}
