package model

// Skill 技能表 — 对应 skills
// 技能按名称全局去重，用户通过关联表挂接
type Skill struct {
	SkillID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"skill_id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	BaseModel
}

// TableName 指定表名
func (Skill) TableName() string { return "skills" }
