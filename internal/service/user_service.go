package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/model"
	"skillswap/backend/internal/repository"
)

var ErrUserSkillNotFound = errors.New("未找到该技能关联")

// UserService 用户业务接口
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// Browse 浏览公开用户，支持搜索与分页；不包含浏览者本人与被封禁用户
	Browse(ctx context.Context, viewerID string, req *dto.BrowseRequest) ([]dto.UserResponse, int64, error)
	ListOfferedSkills(ctx context.Context, userID string) ([]dto.UserSkillResponse, error)
	ListWantedSkills(ctx context.Context, userID string) ([]dto.UserSkillResponse, error)
	// AddOfferedSkill / AddWantedSkill 按名称取或建技能后挂接到用户
	AddOfferedSkill(ctx context.Context, userID string, req *dto.AddOfferedSkillRequest) (*dto.UserSkillResponse, error)
	AddWantedSkill(ctx context.Context, userID string, req *dto.AddWantedSkillRequest) (*dto.UserSkillResponse, error)
	// RemoveSkill skillType 取 "offered" | "wanted"
	RemoveSkill(ctx context.Context, userID, skillType, skillID string) error
}

// userService UserService 实现
type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 仅更新请求中出现的字段
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}
	if req.Availability != nil {
		user.Availability = model.StringArray(*req.Availability)
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, err
	}

	// 技能 ID 集合整体重设
	if req.SkillsOfferedIDs != nil {
		if err := s.repo.UserSkill.ReplaceOffered(ctx, userID, *req.SkillsOfferedIDs); err != nil {
			return nil, err
		}
	}
	if req.SkillsWantedIDs != nil {
		if err := s.repo.UserSkill.ReplaceWanted(ctx, userID, *req.SkillsWantedIDs); err != nil {
			return nil, err
		}
	}

	// 回读以携带最新技能关联
	updated, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(updated), nil
}

// matchesQuery 大小写不敏感子串匹配：姓名或任一技能名命中即为命中
func matchesQuery(user *model.User, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(user.Name), q) {
		return true
	}
	for _, assoc := range user.SkillsOffered {
		if assoc.Skill != nil && strings.Contains(strings.ToLower(assoc.Skill.Name), q) {
			return true
		}
	}
	for _, assoc := range user.SkillsWanted {
		if assoc.Skill != nil && strings.Contains(strings.ToLower(assoc.Skill.Name), q) {
			return true
		}
	}
	return false
}

// paginateUsers 内存分页；页码超界返回空列表而非报错
func paginateUsers(users []model.User, page, pageSize int) []model.User {
	start := (page - 1) * pageSize
	if start >= len(users) {
		return []model.User{}
	}
	end := start + pageSize
	if end > len(users) {
		end = len(users)
	}
	return users[start:end]
}

func (s *userService) Browse(ctx context.Context, viewerID string, req *dto.BrowseRequest) ([]dto.UserResponse, int64, error) {
	users, err := s.repo.User.ListPublic(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]model.User, 0, len(users))
	for i := range users {
		if matchesQuery(&users[i], req.Search) {
			filtered = append(filtered, users[i])
		}
	}

	total := int64(len(filtered))
	pageItems := paginateUsers(filtered, req.GetPage(), req.GetPageSize())

	result := make([]dto.UserResponse, 0, len(pageItems))
	for i := range pageItems {
		result = append(result, *toUserResponse(&pageItems[i]))
	}
	return result, total, nil
}

func (s *userService) ListOfferedSkills(ctx context.Context, userID string) ([]dto.UserSkillResponse, error) {
	assocs, err := s.repo.UserSkill.ListOffered(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.UserSkillResponse, 0, len(assocs))
	for _, assoc := range assocs {
		item := dto.UserSkillResponse{ID: assoc.SkillID, Level: assoc.Level}
		if assoc.Skill != nil {
			item.Name = assoc.Skill.Name
			item.Description = assoc.Skill.Description
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *userService) ListWantedSkills(ctx context.Context, userID string) ([]dto.UserSkillResponse, error) {
	assocs, err := s.repo.UserSkill.ListWanted(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.UserSkillResponse, 0, len(assocs))
	for _, assoc := range assocs {
		item := dto.UserSkillResponse{ID: assoc.SkillID, Level: assoc.Level, Priority: assoc.Priority}
		if assoc.Skill != nil {
			item.Name = assoc.Skill.Name
			item.Description = assoc.Skill.Description
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *userService) AddOfferedSkill(ctx context.Context, userID string, req *dto.AddOfferedSkillRequest) (*dto.UserSkillResponse, error) {
	skill, err := s.repo.Skill.GetOrCreate(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	level := req.Level
	if level == "" {
		level = model.LevelBeginner
	}

	assoc := &model.OfferedSkill{UserID: userID, SkillID: skill.SkillID, Level: level}
	if err := s.repo.UserSkill.AddOffered(ctx, assoc); err != nil {
		return nil, err
	}

	return &dto.UserSkillResponse{
		ID:          skill.SkillID,
		Name:        skill.Name,
		Level:       level,
		Description: skill.Description,
	}, nil
}

func (s *userService) AddWantedSkill(ctx context.Context, userID string, req *dto.AddWantedSkillRequest) (*dto.UserSkillResponse, error) {
	skill, err := s.repo.Skill.GetOrCreate(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	level := req.Level
	if level == "" {
		level = model.LevelAny
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	assoc := &model.WantedSkill{UserID: userID, SkillID: skill.SkillID, Level: level, Priority: priority}
	if err := s.repo.UserSkill.AddWanted(ctx, assoc); err != nil {
		return nil, err
	}

	return &dto.UserSkillResponse{
		ID:          skill.SkillID,
		Name:        skill.Name,
		Level:       level,
		Priority:    priority,
		Description: skill.Description,
	}, nil
}

func (s *userService) RemoveSkill(ctx context.Context, userID, skillType, skillID string) error {
	var (
		affected int64
		err      error
	)
	switch skillType {
	case "offered":
		affected, err = s.repo.UserSkill.RemoveOffered(ctx, userID, skillID)
	case "wanted":
		affected, err = s.repo.UserSkill.RemoveWanted(ctx, userID, skillID)
	default:
		return ErrUserSkillNotFound
	}
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}
