package dto

// ── 用户模块 DTO ──

// UpdateProfileRequest 更新个人资料请求（仅更新非 nil 字段）
type UpdateProfileRequest struct {
	Name         *string   `json:"name"         binding:"omitempty,min=2,max=50"`
	Location     *string   `json:"location"     binding:"omitempty,max=100"`
	Bio          *string   `json:"bio"          binding:"omitempty,max=1000"`
	PhotoURL     *string   `json:"photo_url"    binding:"omitempty,max=500"`
	IsPublic     *bool     `json:"is_public"`
	Availability *[]string `json:"availability" binding:"omitempty,dive,oneof=weekdays weekends evenings mornings"`
	// 技能 ID 集合整体重设；nil 表示不变更
	SkillsOfferedIDs *[]string `json:"skills_offered_ids" binding:"omitempty,dive,uuid"`
	SkillsWantedIDs  *[]string `json:"skills_wanted_ids"  binding:"omitempty,dive,uuid"`
}

// BrowseRequest 用户浏览（找搭子）查询参数
// Search 对姓名与可教授/求学技能名做大小写不敏感子串匹配
type BrowseRequest struct {
	PaginationRequest
	Search string `form:"search" binding:"omitempty,max=100"`
}

// AddOfferedSkillRequest 添加可教授技能请求
type AddOfferedSkillRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Level       string `json:"level"       binding:"omitempty,oneof=Beginner Intermediate Advanced Expert Any"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// AddWantedSkillRequest 添加求学技能请求
type AddWantedSkillRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Level       string `json:"level"       binding:"omitempty,oneof=Beginner Intermediate Advanced Expert Any"`
	Priority    string `json:"priority"    binding:"omitempty,oneof=Low Medium High"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}
