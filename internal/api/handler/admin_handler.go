package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/service"
	"skillswap/backend/pkg/response"
)

// AdminHandler 管理模块 HTTP 处理器
type AdminHandler struct {
	adminSvc  service.AdminService
	exportSvc service.ExportService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService, exportSvc service.ExportService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, exportSvc: exportSvc}
}

// ListUsers 全量用户列表
// GET /api/users/admin/users/?search=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req dto.AdminUserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, err := h.adminSvc.ListUsers(c.Request.Context(), req.Search)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, users)
}

// SetBanned 封禁/解封用户
// PATCH /api/users/admin/users/:id/
func (h *AdminHandler) SetBanned(c *gin.Context) {
	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AdminBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.adminSvc.SetBanned(c.Request.Context(), adminID, c.Param("id"), *req.IsBanned)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCannotBanSelf):
			response.BadRequest(c, 60001, "不能封禁自己的账号")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// ListSkills 管理端技能列表
// GET /api/skills/admin/?search=
func (h *AdminHandler) ListSkills(c *gin.Context) {
	var req dto.AdminSkillListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	skills, err := h.adminSvc.ListSkills(c.Request.Context(), req.Search)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, skills)
}

// DeleteSkill 删除技能（请求体携带 id）
// DELETE /api/skills/admin/
func (h *AdminHandler) DeleteSkill(c *gin.Context) {
	var req dto.AdminSkillDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.adminSvc.DeleteSkill(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			response.NotFound(c, 30001, "技能不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ListSwaps 管理端申请列表
// GET /api/swaps/admin/?status=
func (h *AdminHandler) ListSwaps(c *gin.Context) {
	var req dto.AdminSwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	swaps, err := h.adminSvc.ListSwaps(c.Request.Context(), req.Status)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, swaps)
}

// Broadcast 平台公告群发
// POST /api/users/admin/messages/
func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.adminSvc.Broadcast(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ExportReport 报表导出
// GET /api/users/admin/reports/?type=users|swaps|feedback&format=csv|xlsx
func (h *AdminHandler) ExportReport(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	file, err := h.exportSvc.Report(c.Request.Context(), req.Type, req.Format)
	if err != nil {
		if errors.Is(err, service.ErrUnknownReportType) {
			response.BadRequest(c, 10001, "不支持的报表类型")
			return
		}
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(file.Filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, file.ContentType, file.Content.Bytes())
}
