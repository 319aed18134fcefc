package model

import "time"

// 换技能申请状态
// pending → accepted → completed，pending → rejected 为备选终态
// rejected / completed 为终态，不允许任何后续流转
const (
	SwapStatusPending   = "pending"
	SwapStatusAccepted  = "accepted"
	SwapStatusRejected  = "rejected"
	SwapStatusCompleted = "completed"
)

// swapTransitions 状态机合法边
var swapTransitions = map[string][]string{
	SwapStatusPending:  {SwapStatusAccepted, SwapStatusRejected},
	SwapStatusAccepted: {SwapStatusCompleted},
}

// CanTransition 判断 from → to 是否为合法状态流转
func CanTransition(from, to string) bool {
	for _, next := range swapTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SwapRequest 换技能申请表 — 对应 swap_requests
// 技能集合存 UUID[]，申请行自包含，不随技能表后续变更漂移
type SwapRequest struct {
	SwapRequestID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_request_id"`
	FromUserID    string      `gorm:"type:uuid;not null"                             json:"from_user_id"`
	ToUserID      string      `gorm:"type:uuid;not null"                             json:"to_user_id"`
	SkillsOffered StringArray `gorm:"type:uuid[];not null;default:'{}'"              json:"skills_offered"`
	SkillsWanted  StringArray `gorm:"type:uuid[];not null;default:'{}'"              json:"skills_wanted"`
	Message       string      `gorm:"type:text;not null;default:''"                  json:"message"`
	Status        string      `gorm:"type:varchar(10);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	FromUser *User    `gorm:"foreignKey:FromUserID;references:UserID"            json:"from_user,omitempty"`
	ToUser   *User    `gorm:"foreignKey:ToUserID;references:UserID"              json:"to_user,omitempty"`
	Ratings  []Rating `gorm:"foreignKey:SwapRequestID;references:SwapRequestID"  json:"ratings,omitempty"`
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }

// IsParticipant 判断用户是否为申请参与方
func (s *SwapRequest) IsParticipant(userID string) bool {
	return s.FromUserID == userID || s.ToUserID == userID
}

// Counterparty 返回参与方 userID 的对方；非参与方返回空串
func (s *SwapRequest) Counterparty(userID string) string {
	switch userID {
	case s.FromUserID:
		return s.ToUserID
	case s.ToUserID:
		return s.FromUserID
	}
	return ""
}

// Rating 评分表 — 对应 ratings
// 每个 (申请, 评分人, 被评人) 组合只允许一条记录
type Rating struct {
	RatingID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                json:"rating_id"`
	SwapRequestID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_swap_rater_rated"          json:"swap_request_id"`
	RaterID       string    `gorm:"type:uuid;not null;uniqueIndex:uniq_swap_rater_rated"          json:"rater_id"`
	RatedUserID   string    `gorm:"type:uuid;not null;uniqueIndex:uniq_swap_rater_rated"          json:"rated_user_id"`
	Score         int       `gorm:"type:smallint;not null"                                        json:"score"` // 1-5
	Comment       string    `gorm:"type:text;not null;default:''"                                 json:"comment"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                            json:"created_at"`

	Rater     *User `gorm:"foreignKey:RaterID;references:UserID"     json:"rater,omitempty"`
	RatedUser *User `gorm:"foreignKey:RatedUserID;references:UserID" json:"rated_user,omitempty"`
}

// TableName 指定表名
func (Rating) TableName() string { return "ratings" }
