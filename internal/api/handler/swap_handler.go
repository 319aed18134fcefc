package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/service"
	pkgerrors "skillswap/backend/pkg/errors"
	"skillswap/backend/pkg/response"
)

// SwapHandler 换技能申请模块 HTTP 处理器
type SwapHandler struct {
	swapSvc service.SwapService
}

// NewSwapHandler 创建 SwapHandler
func NewSwapHandler(swapSvc service.SwapService) *SwapHandler {
	return &SwapHandler{swapSvc: swapSvc}
}

// Create 发起换技能申请
// POST /api/swaps/
func (h *SwapHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	swap, err := h.swapSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfSwap):
			response.BadRequest(c, 40002, "不能向自己发起换技能申请")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "用户不存在")
		case errors.Is(err, service.ErrDuplicatePending):
			response.Error(c, http.StatusConflict, 40003, "已有待处理的申请，请勿重复发起")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, swap)
}

// List 当前用户参与的申请列表
// GET /api/swaps/?direction=&status=
func (h *SwapHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SwapListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	swaps, err := h.swapSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, swaps)
}

// UpdateStatus 流转申请状态
// PATCH /api/swaps/:id/
func (h *SwapHandler) UpdateStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSwapStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	swap, err := h.swapSvc.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSwapNotFound):
			response.NotFound(c, 40001, "换技能申请不存在")
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 40004, "无权执行该操作")
		case errors.Is(err, service.ErrInvalidTransition):
			response.BadRequest(c, 40005, "当前状态不允许该操作")
		case errors.Is(err, pkgerrors.ErrStateConflict):
			response.Error(c, http.StatusConflict, 40006, "申请状态已变更，请刷新后重试")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, swap)
}

// Rate 对已完成申请的对方评分
// POST /api/swaps/:id/rate/
func (h *SwapHandler) Rate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rating, err := h.swapSvc.Rate(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSwapNotFound):
			response.NotFound(c, 40001, "换技能申请不存在")
		case errors.Is(err, service.ErrForbidden):
			response.Forbidden(c, 40004, "无权执行该操作")
		case errors.Is(err, service.ErrSwapNotCompleted):
			response.BadRequest(c, 40007, "仅已完成的申请可以评分")
		case errors.Is(err, service.ErrAlreadyRated):
			response.BadRequest(c, 40008, "你已评价过该申请")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, rating)
}

// Stats 面板统计
// GET /api/swaps/stats/
func (h *SwapHandler) Stats(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	stats, err := h.swapSvc.Stats(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// Recent 最近发出的申请
// GET /api/swaps/recent/
func (h *SwapHandler) Recent(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	swaps, err := h.swapSvc.Recent(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, swaps)
}
