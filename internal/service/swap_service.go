package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillswap/backend/config"
	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/model"
	"skillswap/backend/internal/repository"
	pkgerrors "skillswap/backend/pkg/errors"
	"skillswap/backend/pkg/mailer"
)

var (
	ErrSwapNotFound      = errors.New("换技能申请不存在")
	ErrSelfSwap          = errors.New("不能向自己发起换技能申请")
	ErrDuplicatePending  = errors.New("已有待处理的申请，请勿重复发起")
	ErrForbidden         = errors.New("无权执行该操作")
	ErrInvalidTransition = errors.New("当前状态不允许该操作")
	ErrSwapNotCompleted  = errors.New("仅已完成的申请可以评分")
	ErrAlreadyRated      = errors.New("你已评价过该申请")
)

// SwapService 换技能申请业务接口
type SwapService interface {
	Create(ctx context.Context, fromUserID string, req *dto.CreateSwapRequest) (*dto.SwapResponse, error)
	// List 当前用户参与的申请；direction/status 过滤为内存操作
	List(ctx context.Context, userID string, req *dto.SwapListRequest) ([]dto.SwapResponse, error)
	// UpdateStatus 流转申请状态
	// accepted/rejected 仅接收方可操作且要求当前为 pending
	// completed 双方均可操作且要求当前为 accepted，重复标记完成幂等成功
	UpdateStatus(ctx context.Context, userID, swapID, status string) (*dto.SwapResponse, error)
	// Rate 对已完成申请的对方参与者评分，并刷新其平均分
	Rate(ctx context.Context, raterID, swapID string, req *dto.RateSwapRequest) (*dto.RatingResponse, error)
	// Stats 面板统计：参与的申请总数、完成数、待处理数、本人平均评分
	Stats(ctx context.Context, userID string) (*dto.SwapStatsResponse, error)
	// Recent 最近发出的 5 条申请
	Recent(ctx context.Context, userID string) ([]dto.SwapResponse, error)
}

// swapService SwapService 实现
type swapService struct {
	cfg    *config.Config
	repo   *repository.Repository
	mail   *mailer.Mailer // 可为 nil，邮件通知降级
	logger *zap.Logger
}

// NewSwapService 创建换技能申请服务
func NewSwapService(cfg *config.Config, repo *repository.Repository, mail *mailer.Mailer, logger *zap.Logger) SwapService {
	return &swapService{cfg: cfg, repo: repo, mail: mail, logger: logger}
}

// round2 保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// canRate 请求方视角：仅 completed 且本人尚未给对方评分时可评
func canRate(swap *model.SwapRequest, viewerID string) bool {
	if swap.Status != model.SwapStatusCompleted || !swap.IsParticipant(viewerID) {
		return false
	}
	counterparty := swap.Counterparty(viewerID)
	for _, rating := range swap.Ratings {
		if rating.RaterID == viewerID && rating.RatedUserID == counterparty {
			return false
		}
	}
	return true
}

// assembleSwapResponse 组装申请响应，解析技能 ID 集合并推导 can_rate
// 管理端列表复用，viewerID 传空串时 can_rate 恒为 false
func assembleSwapResponse(ctx context.Context, repo *repository.Repository, swap *model.SwapRequest, viewerID string) (*dto.SwapResponse, error) {
	ids := make([]string, 0, len(swap.SkillsOffered)+len(swap.SkillsWanted))
	ids = append(ids, swap.SkillsOffered...)
	ids = append(ids, swap.SkillsWanted...)

	skillByID := make(map[string]*model.Skill, len(ids))
	if len(ids) > 0 {
		skills, err := repo.Skill.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range skills {
			skillByID[skills[i].SkillID] = &skills[i]
		}
	}

	// 已被删除的技能 ID 静默跳过
	resolve := func(ids model.StringArray) []dto.SkillResponse {
		result := make([]dto.SkillResponse, 0, len(ids))
		for _, id := range ids {
			if skill, ok := skillByID[id]; ok {
				result = append(result, toSkillResponse(skill))
			}
		}
		return result
	}

	ratings := make([]dto.RatingResponse, 0, len(swap.Ratings))
	for i := range swap.Ratings {
		ratings = append(ratings, toRatingResponse(&swap.Ratings[i]))
	}

	return &dto.SwapResponse{
		ID:            swap.SwapRequestID,
		FromUser:      toUserBrief(swap.FromUser),
		ToUser:        toUserBrief(swap.ToUser),
		SkillsOffered: resolve(swap.SkillsOffered),
		SkillsWanted:  resolve(swap.SkillsWanted),
		Message:       swap.Message,
		Status:        swap.Status,
		Ratings:       ratings,
		CanRate:       canRate(swap, viewerID),
		CreatedAt:     formatTime(swap.CreatedAt),
		UpdatedAt:     formatTime(swap.UpdatedAt),
	}, nil
}

func (s *swapService) buildSwapResponse(ctx context.Context, swap *model.SwapRequest, viewerID string) (*dto.SwapResponse, error) {
	return assembleSwapResponse(ctx, s.repo, swap, viewerID)
}

// notify 创建站内通知；通知失败不阻断主流程
func (s *swapService) notify(ctx context.Context, userID, message string) {
	n := &model.Notification{UserID: userID, Message: message}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Warn("创建通知失败",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

// filterExistingSkillIDs 过滤掉不存在的技能 ID
func (s *swapService) filterExistingSkillIDs(ctx context.Context, ids []string) (model.StringArray, error) {
	if len(ids) == 0 {
		return model.StringArray{}, nil
	}
	skills, err := s.repo.Skill.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(skills))
	for i := range skills {
		existing[skills[i].SkillID] = true
	}

	result := make(model.StringArray, 0, len(ids))
	for _, id := range ids {
		if existing[id] {
			result = append(result, id)
		}
	}
	return result, nil
}

func (s *swapService) Create(ctx context.Context, fromUserID string, req *dto.CreateSwapRequest) (*dto.SwapResponse, error) {
	if req.ToUserID == fromUserID {
		return nil, ErrSelfSwap
	}

	toUser, err := s.repo.User.GetByID(ctx, req.ToUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	// 被封禁用户不可作为申请对象
	if !toUser.IsActive {
		return nil, ErrUserNotFound
	}

	exists, err := s.repo.Swap.ExistsPending(ctx, fromUserID, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePending
	}

	fromUser, err := s.repo.User.GetByID(ctx, fromUserID)
	if err != nil {
		return nil, err
	}

	offered, err := s.filterExistingSkillIDs(ctx, req.SkillsOffered)
	if err != nil {
		return nil, err
	}
	wanted, err := s.filterExistingSkillIDs(ctx, req.SkillsWanted)
	if err != nil {
		return nil, err
	}

	swap := &model.SwapRequest{
		FromUserID:    fromUserID,
		ToUserID:      req.ToUserID,
		SkillsOffered: offered,
		SkillsWanted:  wanted,
		Message:       req.Message,
		Status:        model.SwapStatusPending,
	}
	if err := s.repo.Swap.Create(ctx, swap); err != nil {
		return nil, err
	}

	s.logger.Info("换技能申请已创建",
		zap.String("swap_id", swap.SwapRequestID),
		zap.String("from", fromUserID),
		zap.String("to", req.ToUserID),
	)

	s.notify(ctx, req.ToUserID, fmt.Sprintf("%s 向你发起了换技能申请！", fromUser.Name))

	swap.FromUser = fromUser
	swap.ToUser = toUser
	return s.buildSwapResponse(ctx, swap, fromUserID)
}

func (s *swapService) List(ctx context.Context, userID string, req *dto.SwapListRequest) ([]dto.SwapResponse, error) {
	swaps, err := s.repo.Swap.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SwapResponse, 0, len(swaps))
	for i := range swaps {
		swap := &swaps[i]
		if req.Direction == "sent" && swap.FromUserID != userID {
			continue
		}
		if req.Direction == "received" && swap.ToUserID != userID {
			continue
		}
		if req.Status != "" && swap.Status != req.Status {
			continue
		}

		resp, err := s.buildSwapResponse(ctx, swap, userID)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *swapService) UpdateStatus(ctx context.Context, userID, swapID, status string) (*dto.SwapResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}
	if !swap.IsParticipant(userID) {
		return nil, ErrForbidden
	}

	// 权限：accepted/rejected 仅接收方；completed 双方均可
	switch status {
	case model.SwapStatusAccepted, model.SwapStatusRejected:
		if swap.ToUserID != userID {
			return nil, ErrForbidden
		}
	case model.SwapStatusCompleted:
		// 双方同时标记完成时，后到的一方幂等成功
		if swap.Status == model.SwapStatusCompleted {
			return s.buildSwapResponse(ctx, swap, userID)
		}
	default:
		return nil, ErrInvalidTransition
	}

	if !model.CanTransition(swap.Status, status) {
		return nil, ErrInvalidTransition
	}

	affected, err := s.repo.Swap.UpdateStatus(ctx, swapID, swap.Status, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 条件更新失败：状态已被并发流转，回查判定
		current, err := s.repo.Swap.GetByID(ctx, swapID)
		if err != nil {
			return nil, err
		}
		if current.Status == status {
			return s.buildSwapResponse(ctx, current, userID)
		}
		return nil, pkgerrors.ErrStateConflict
	}

	s.logger.Info("换技能申请状态流转",
		zap.String("swap_id", swapID),
		zap.String("from_status", swap.Status),
		zap.String("to_status", status),
		zap.String("operator", userID),
	)

	s.sendTransitionNotifications(ctx, swap, status, userID)

	updated, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	return s.buildSwapResponse(ctx, updated, userID)
}

// sendTransitionNotifications 按流转结果通知相关方
func (s *swapService) sendTransitionNotifications(ctx context.Context, swap *model.SwapRequest, status, operatorID string) {
	operatorName := operatorID
	if swap.FromUser != nil && swap.FromUserID == operatorID {
		operatorName = swap.FromUser.Name
	} else if swap.ToUser != nil && swap.ToUserID == operatorID {
		operatorName = swap.ToUser.Name
	}

	switch status {
	case model.SwapStatusAccepted:
		s.notify(ctx, swap.FromUserID, fmt.Sprintf("%s 接受了你的换技能申请！", operatorName))

		if s.cfg.Feature.MailOnAccept && s.mail != nil && swap.FromUser != nil {
			email, name := swap.FromUser.Email, swap.FromUser.Name
			go func() {
				_ = s.mail.SendSwapAccepted(email, name, operatorName)
			}()
		}
	case model.SwapStatusRejected:
		s.notify(ctx, swap.FromUserID, fmt.Sprintf("%s 拒绝了你的换技能申请。", operatorName))
	case model.SwapStatusCompleted:
		s.notify(ctx, swap.Counterparty(operatorID), fmt.Sprintf("%s 将你们的换技能申请标记为已完成。", operatorName))
	}
}

func (s *swapService) Rate(ctx context.Context, raterID, swapID string, req *dto.RateSwapRequest) (*dto.RatingResponse, error) {
	swap, err := s.repo.Swap.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwapNotFound
		}
		return nil, err
	}
	if !swap.IsParticipant(raterID) {
		return nil, ErrForbidden
	}
	if swap.Status != model.SwapStatusCompleted {
		return nil, ErrSwapNotCompleted
	}

	ratedUserID := swap.Counterparty(raterID)

	exists, err := s.repo.Rating.Exists(ctx, swapID, raterID, ratedUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRated
	}

	rating := &model.Rating{
		SwapRequestID: swapID,
		RaterID:       raterID,
		RatedUserID:   ratedUserID,
		Score:         req.Score,
		Comment:       req.Comment,
	}
	if err := s.repo.Rating.Create(ctx, rating); err != nil {
		return nil, err
	}

	// 刷新被评人平均分（保留两位小数）
	avg, err := s.repo.Rating.AverageForUser(ctx, ratedUserID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.User.UpdateRating(ctx, ratedUserID, round2(avg)); err != nil {
		return nil, err
	}

	s.logger.Info("评分已提交",
		zap.String("swap_id", swapID),
		zap.String("rater", raterID),
		zap.String("rated_user", ratedUserID),
		zap.Int("score", req.Score),
	)

	raterName := raterID
	if swap.FromUser != nil && swap.FromUserID == raterID {
		raterName = swap.FromUser.Name
	} else if swap.ToUser != nil && swap.ToUserID == raterID {
		raterName = swap.ToUser.Name
	}
	s.notify(ctx, ratedUserID, fmt.Sprintf("%s 给你留下了评价。", raterName))

	resp := toRatingResponse(rating)
	return &resp, nil
}

func (s *swapService) Stats(ctx context.Context, userID string) (*dto.SwapStatsResponse, error) {
	swaps, err := s.repo.Swap.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &dto.SwapStatsResponse{TotalSwaps: int64(len(swaps))}
	for i := range swaps {
		switch swaps[i].Status {
		case model.SwapStatusCompleted:
			stats.CompletedSwaps++
		case model.SwapStatusPending:
			stats.PendingSwaps++
		}
	}

	avg, err := s.repo.Rating.AverageForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.AverageRating = round2(avg)

	return stats, nil
}

const recentSwapLimit = 5

func (s *swapService) Recent(ctx context.Context, userID string) ([]dto.SwapResponse, error) {
	swaps, err := s.repo.Swap.ListRecentSent(ctx, userID, recentSwapLimit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SwapResponse, 0, len(swaps))
	for i := range swaps {
		resp, err := s.buildSwapResponse(ctx, &swaps[i], userID)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}
