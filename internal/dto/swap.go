package dto

// ── 换技能申请模块 DTO ──

// CreateSwapRequest 发起换技能申请请求
// 技能集合允许为空（与前端行为一致），未知技能 ID 创建时静默忽略
type CreateSwapRequest struct {
	ToUserID      string   `json:"to_user_id"     binding:"required,uuid"`
	SkillsOffered []string `json:"skills_offered" binding:"omitempty,dive,uuid"`
	SkillsWanted  []string `json:"skills_wanted"  binding:"omitempty,dive,uuid"`
	Message       string   `json:"message"        binding:"omitempty,max=2000"`
}

// UpdateSwapStatusRequest 流转申请状态请求
type UpdateSwapStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected completed"`
}

// RateSwapRequest 评分请求
type RateSwapRequest struct {
	Score   int    `json:"rating"  binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}

// SwapListRequest 申请列表查询参数
// direction=sent/received 过滤发出/收到的申请，缺省返回两者并集
type SwapListRequest struct {
	Direction string `form:"direction" binding:"omitempty,oneof=sent received"`
	Status    string `form:"status"    binding:"omitempty,oneof=pending accepted rejected completed"`
}
