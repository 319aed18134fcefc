package model

// 用户角色
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// 技能熟练度等级
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
	LevelAny          = "Any"
)

// 求学技能优先级
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// User 用户表 — 对应 users
// 封禁为软标记（is_active=false），用户不做物理删除
type User struct {
	UserID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null"                     json:"-"`
	Location     string      `gorm:"type:varchar(100);not null;default:''"          json:"location"`
	Bio          string      `gorm:"type:text;not null;default:''"                  json:"bio"`
	PhotoURL     string      `gorm:"type:varchar(500);not null;default:''"          json:"photo_url"`
	Availability StringArray `gorm:"type:text[];not null;default:'{}'"              json:"availability"` // weekdays | weekends | evenings | mornings
	Rating       float64     `gorm:"type:numeric(3,2);not null;default:0"           json:"rating"`
	IsPublic     bool        `gorm:"not null;default:true"                          json:"is_public"`
	Role         string      `gorm:"type:varchar(20);not null;default:'member'"     json:"role"`
	IsActive     bool        `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	SkillsOffered []OfferedSkill `gorm:"foreignKey:UserID;references:UserID" json:"skills_offered,omitempty"`
	SkillsWanted  []WantedSkill  `gorm:"foreignKey:UserID;references:UserID" json:"skills_wanted,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// OfferedSkill 用户可教授技能关联表 — 对应 user_offered_skills
type OfferedSkill struct {
	UserID  string `gorm:"type:uuid;primaryKey" json:"user_id"`
	SkillID string `gorm:"type:uuid;primaryKey" json:"skill_id"`
	Level   string `gorm:"type:varchar(20);not null;default:'Beginner'" json:"level"`

	Skill *Skill `gorm:"foreignKey:SkillID;references:SkillID" json:"skill,omitempty"`
}

// TableName 指定表名
func (OfferedSkill) TableName() string { return "user_offered_skills" }

// WantedSkill 用户求学技能关联表 — 对应 user_wanted_skills
type WantedSkill struct {
	UserID   string `gorm:"type:uuid;primaryKey" json:"user_id"`
	SkillID  string `gorm:"type:uuid;primaryKey" json:"skill_id"`
	Level    string `gorm:"type:varchar(20);not null;default:'Any'"    json:"level"`
	Priority string `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`

	Skill *Skill `gorm:"foreignKey:SkillID;references:SkillID" json:"skill,omitempty"`
}

// TableName 指定表名
func (WantedSkill) TableName() string { return "user_wanted_skills" }
