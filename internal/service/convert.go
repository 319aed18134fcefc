package service

import (
	"time"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/model"
)

// ── model → dto 转换辅助（各 Service 共用） ──

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// toUserResponse 将 model.User 转换为 dto.UserResponse
func toUserResponse(user *model.User) *dto.UserResponse {
	offered := make([]dto.UserSkillResponse, 0, len(user.SkillsOffered))
	for _, assoc := range user.SkillsOffered {
		item := dto.UserSkillResponse{
			ID:    assoc.SkillID,
			Level: assoc.Level,
		}
		if assoc.Skill != nil {
			item.Name = assoc.Skill.Name
			item.Description = assoc.Skill.Description
		}
		offered = append(offered, item)
	}

	wanted := make([]dto.UserSkillResponse, 0, len(user.SkillsWanted))
	for _, assoc := range user.SkillsWanted {
		item := dto.UserSkillResponse{
			ID:       assoc.SkillID,
			Level:    assoc.Level,
			Priority: assoc.Priority,
		}
		if assoc.Skill != nil {
			item.Name = assoc.Skill.Name
			item.Description = assoc.Skill.Description
		}
		wanted = append(wanted, item)
	}

	return &dto.UserResponse{
		ID:            user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		Location:      user.Location,
		Bio:           user.Bio,
		PhotoURL:      user.PhotoURL,
		Availability:  append([]string{}, user.Availability...),
		Rating:        user.Rating,
		IsPublic:      user.IsPublic,
		Role:          user.Role,
		IsActive:      user.IsActive,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		CreatedAt:     formatTime(user.CreatedAt),
	}
}

// toUserBrief 将 model.User 转换为 dto.UserBrief
func toUserBrief(user *model.User) dto.UserBrief {
	if user == nil {
		return dto.UserBrief{}
	}
	return dto.UserBrief{
		ID:       user.UserID,
		Name:     user.Name,
		Email:    user.Email,
		PhotoURL: user.PhotoURL,
		Rating:   user.Rating,
	}
}

// toSkillResponse 将 model.Skill 转换为 dto.SkillResponse
func toSkillResponse(skill *model.Skill) dto.SkillResponse {
	return dto.SkillResponse{
		ID:          skill.SkillID,
		Name:        skill.Name,
		Description: skill.Description,
		CreatedAt:   formatTime(skill.CreatedAt),
	}
}

// toRatingResponse 将 model.Rating 转换为 dto.RatingResponse
func toRatingResponse(rating *model.Rating) dto.RatingResponse {
	return dto.RatingResponse{
		ID:            rating.RatingID,
		SwapRequestID: rating.SwapRequestID,
		RaterID:       rating.RaterID,
		RatedUserID:   rating.RatedUserID,
		Score:         rating.Score,
		Comment:       rating.Comment,
		CreatedAt:     formatTime(rating.CreatedAt),
	}
}

// toNotificationResponse 将 model.Notification 转换为 dto.NotificationResponse
func toNotificationResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.NotificationID,
		Message:   n.Message,
		Read:      n.IsRead,
		CreatedAt: formatTime(n.CreatedAt),
	}
}
