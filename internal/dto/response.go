package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Location      string              `json:"location"`
	Bio           string              `json:"bio"`
	PhotoURL      string              `json:"photo_url"`
	Availability  []string            `json:"availability"`
	Rating        float64             `json:"rating"`
	IsPublic      bool                `json:"is_public"`
	Role          string              `json:"role"`
	IsActive      bool                `json:"is_active"`
	SkillsOffered []UserSkillResponse `json:"skills_offered"`
	SkillsWanted  []UserSkillResponse `json:"skills_wanted"`
	CreatedAt     string              `json:"created_at"`
}

// UserBrief 用户简要信息（嵌入申请响应）
type UserBrief struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	PhotoURL string  `json:"photo_url"`
	Rating   float64 `json:"rating"`
}

// UserSkillResponse 用户技能关联响应
type UserSkillResponse struct {
	ID          string `json:"id"` // 技能 ID
	Name        string `json:"name"`
	Level       string `json:"level"`
	Priority    string `json:"priority,omitempty"` // 仅求学技能
	Description string `json:"description"`
}

// ── 技能模块响应 ──

// SkillResponse 技能信息响应
type SkillResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// ── 换技能申请模块响应 ──

// SwapResponse 换技能申请响应
// CanRate 按请求方视角推导：仅 status=completed 且本人尚未评分时为 true
type SwapResponse struct {
	ID            string           `json:"id"`
	FromUser      UserBrief        `json:"from_user"`
	ToUser        UserBrief        `json:"to_user"`
	SkillsOffered []SkillResponse  `json:"skills_offered"`
	SkillsWanted  []SkillResponse  `json:"skills_wanted"`
	Message       string           `json:"message"`
	Status        string           `json:"status"`
	Ratings       []RatingResponse `json:"ratings"`
	CanRate       bool             `json:"can_rate"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

// RatingResponse 评分响应
type RatingResponse struct {
	ID            string `json:"id"`
	SwapRequestID string `json:"swap_request_id"`
	RaterID       string `json:"rater_id"`
	RatedUserID   string `json:"rated_user_id"`
	Score         int    `json:"rating"`
	Comment       string `json:"comment"`
	CreatedAt     string `json:"created_at"`
}

// SwapStatsResponse 面板统计响应
type SwapStatsResponse struct {
	TotalSwaps     int64   `json:"total_swaps"`
	CompletedSwaps int64   `json:"completed_swaps"`
	PendingSwaps   int64   `json:"pending_swaps"`
	AverageRating  float64 `json:"average_rating"`
}

// ── 通知模块响应 ──

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// ── 管理模块响应 ──

// BroadcastResponse 平台广播响应
type BroadcastResponse struct {
	UsersNotified int `json:"users_notified"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
