package dto

// ── 管理模块 DTO ──

// AdminUserListRequest 管理端用户列表查询参数
type AdminUserListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
}

// AdminBanRequest 封禁/解封用户请求
// is_banned=true 时置 is_active=false，不做物理删除
type AdminBanRequest struct {
	IsBanned *bool `json:"is_banned" binding:"required"`
}

// AdminSkillListRequest 管理端技能列表查询参数
type AdminSkillListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
}

// AdminSkillDeleteRequest 管理端删除技能请求（请求体携带 id）
type AdminSkillDeleteRequest struct {
	ID string `json:"id" binding:"required,uuid"`
}

// AdminSwapListRequest 管理端申请列表查询参数
type AdminSwapListRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=pending accepted rejected completed"`
}

// BroadcastRequest 平台广播请求
type BroadcastRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=2000"`
}

// ReportRequest 报表导出查询参数
type ReportRequest struct {
	Type   string `form:"type"   binding:"omitempty,oneof=users swaps feedback"`
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}
