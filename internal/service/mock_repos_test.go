package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"skillswap/backend/config"
	"skillswap/backend/internal/model"
	"skillswap/backend/internal/repository"
)

// ── Mock Repositories ──
// 与 GORM 实现保持相同的接口契约，数据存内存，供 Service 层单元测试使用

// mockClock 递增时钟，保证排序稳定
type mockClock struct {
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *mockClock) next() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type mockUserRepo struct {
	users map[string]*model.User
	order []string // 插入顺序，列表按倒序返回
	seq   int
	clock *mockClock
}

func newMockUserRepo(clock *mockClock) *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User), clock: clock}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%04d", m.seq)
	}
	user.CreatedAt = m.clock.next()
	user.UpdatedAt = user.CreatedAt
	m.users[user.UserID] = user
	m.order = append(m.order, user.UserID)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = m.clock.next()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateRating(_ context.Context, userID string, rating float64) error {
	u, ok := m.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Rating = rating
	return nil
}

// listOrdered 按插入倒序返回（与 created_at DESC 一致）
func (m *mockUserRepo) listOrdered() []model.User {
	result := make([]model.User, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		result = append(result, *m.users[m.order[i]])
	}
	return result
}

func (m *mockUserRepo) ListPublic(_ context.Context, excludeID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.listOrdered() {
		if u.IsPublic && u.IsActive && u.UserID != excludeID {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	return m.listOrdered(), nil
}

func (m *mockUserRepo) ListActive(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.listOrdered() {
		if u.IsActive {
			result = append(result, u)
		}
	}
	return result, nil
}

type mockSkillRepo struct {
	skills map[string]*model.Skill
	seq    int
	clock  *mockClock
	assocs *mockUserSkillRepo // 目录过滤用，构造 testEnv 后回填
}

func newMockSkillRepo(clock *mockClock) *mockSkillRepo {
	return &mockSkillRepo{skills: make(map[string]*model.Skill), clock: clock}
}

func (m *mockSkillRepo) Create(_ context.Context, skill *model.Skill) error {
	if skill.SkillID == "" {
		m.seq++
		skill.SkillID = fmt.Sprintf("skill-%04d", m.seq)
	}
	skill.CreatedAt = m.clock.next()
	m.skills[skill.SkillID] = skill
	return nil
}

func (m *mockSkillRepo) GetByID(_ context.Context, id string) (*model.Skill, error) {
	if s, ok := m.skills[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSkillRepo) GetByName(_ context.Context, name string) (*model.Skill, error) {
	for _, s := range m.skills {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSkillRepo) GetOrCreate(ctx context.Context, name, description string) (*model.Skill, error) {
	if s, err := m.GetByName(ctx, name); err == nil {
		return s, nil
	}
	skill := &model.Skill{Name: name, Description: description}
	if err := m.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (m *mockSkillRepo) List(_ context.Context, search string) ([]model.Skill, error) {
	var result []model.Skill
	for _, s := range m.skills {
		if search == "" || strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSkillRepo) SearchAll(_ context.Context, search string) ([]model.Skill, error) {
	var result []model.Skill
	q := strings.ToLower(search)
	for _, s := range m.skills {
		if search == "" ||
			strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Description), q) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSkillRepo) ListByIDs(_ context.Context, ids []string) ([]model.Skill, error) {
	var result []model.Skill
	for _, id := range ids {
		if s, ok := m.skills[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSkillRepo) ListOfferedByAnyUser(_ context.Context) ([]model.Skill, error) {
	seen := make(map[string]bool)
	var result []model.Skill
	for _, a := range m.assocs.offered {
		if seen[a.SkillID] {
			continue
		}
		seen[a.SkillID] = true
		if s, ok := m.skills[a.SkillID]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSkillRepo) ListWantedByAnyUser(_ context.Context) ([]model.Skill, error) {
	seen := make(map[string]bool)
	var result []model.Skill
	for _, a := range m.assocs.wanted {
		if seen[a.SkillID] {
			continue
		}
		seen[a.SkillID] = true
		if s, ok := m.skills[a.SkillID]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSkillRepo) Delete(_ context.Context, id string) error {
	delete(m.skills, id)
	return nil
}

type mockUserSkillRepo struct {
	offered []model.OfferedSkill
	wanted  []model.WantedSkill
	skills  *mockSkillRepo // 供 Preload("Skill") 等价行为使用
}

func newMockUserSkillRepo(skills *mockSkillRepo) *mockUserSkillRepo {
	return &mockUserSkillRepo{skills: skills}
}

func (m *mockUserSkillRepo) attach(skillID string) *model.Skill {
	if s, ok := m.skills.skills[skillID]; ok {
		return s
	}
	return nil
}

func (m *mockUserSkillRepo) ListOffered(_ context.Context, userID string) ([]model.OfferedSkill, error) {
	var result []model.OfferedSkill
	for _, a := range m.offered {
		if a.UserID == userID {
			a.Skill = m.attach(a.SkillID)
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockUserSkillRepo) ListWanted(_ context.Context, userID string) ([]model.WantedSkill, error) {
	var result []model.WantedSkill
	for _, a := range m.wanted {
		if a.UserID == userID {
			a.Skill = m.attach(a.SkillID)
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockUserSkillRepo) AddOffered(_ context.Context, assoc *model.OfferedSkill) error {
	for _, a := range m.offered {
		if a.UserID == assoc.UserID && a.SkillID == assoc.SkillID {
			return nil // 冲突时幂等
		}
	}
	m.offered = append(m.offered, *assoc)
	return nil
}

func (m *mockUserSkillRepo) AddWanted(_ context.Context, assoc *model.WantedSkill) error {
	for _, a := range m.wanted {
		if a.UserID == assoc.UserID && a.SkillID == assoc.SkillID {
			return nil
		}
	}
	m.wanted = append(m.wanted, *assoc)
	return nil
}

func (m *mockUserSkillRepo) RemoveOffered(_ context.Context, userID, skillID string) (int64, error) {
	for i, a := range m.offered {
		if a.UserID == userID && a.SkillID == skillID {
			m.offered = append(m.offered[:i], m.offered[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockUserSkillRepo) RemoveWanted(_ context.Context, userID, skillID string) (int64, error) {
	for i, a := range m.wanted {
		if a.UserID == userID && a.SkillID == skillID {
			m.wanted = append(m.wanted[:i], m.wanted[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockUserSkillRepo) ReplaceOffered(_ context.Context, userID string, skillIDs []string) error {
	var kept []model.OfferedSkill
	for _, a := range m.offered {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	for _, id := range skillIDs {
		kept = append(kept, model.OfferedSkill{UserID: userID, SkillID: id, Level: model.LevelBeginner})
	}
	m.offered = kept
	return nil
}

func (m *mockUserSkillRepo) ReplaceWanted(_ context.Context, userID string, skillIDs []string) error {
	var kept []model.WantedSkill
	for _, a := range m.wanted {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	for _, id := range skillIDs {
		kept = append(kept, model.WantedSkill{UserID: userID, SkillID: id, Level: model.LevelAny, Priority: model.PriorityMedium})
	}
	m.wanted = kept
	return nil
}

type mockSwapRepo struct {
	swaps   map[string]*model.SwapRequest
	order   []string
	seq     int
	clock   *mockClock
	users   *mockUserRepo   // 供 Preload("FromUser"/"ToUser") 等价行为使用
	ratings *mockRatingRepo // 供 Preload("Ratings") 等价行为使用
}

func newMockSwapRepo(clock *mockClock, users *mockUserRepo, ratings *mockRatingRepo) *mockSwapRepo {
	return &mockSwapRepo{
		swaps:   make(map[string]*model.SwapRequest),
		clock:   clock,
		users:   users,
		ratings: ratings,
	}
}

// load 返回带关联的副本，模拟 GORM 预加载
func (m *mockSwapRepo) load(id string) *model.SwapRequest {
	src, ok := m.swaps[id]
	if !ok {
		return nil
	}
	swap := *src
	swap.FromUser = m.users.users[swap.FromUserID]
	swap.ToUser = m.users.users[swap.ToUserID]
	swap.Ratings = nil
	for _, r := range m.ratings.ratings {
		if r.SwapRequestID == swap.SwapRequestID {
			swap.Ratings = append(swap.Ratings, r)
		}
	}
	return &swap
}

func (m *mockSwapRepo) Create(_ context.Context, swap *model.SwapRequest) error {
	if swap.SwapRequestID == "" {
		m.seq++
		swap.SwapRequestID = fmt.Sprintf("swap-%04d", m.seq)
	}
	swap.CreatedAt = m.clock.next()
	swap.UpdatedAt = swap.CreatedAt
	stored := *swap
	m.swaps[swap.SwapRequestID] = &stored
	m.order = append(m.order, swap.SwapRequestID)
	return nil
}

func (m *mockSwapRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	if swap := m.load(id); swap != nil {
		return swap, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRepo) ListByUser(_ context.Context, userID string) ([]model.SwapRequest, error) {
	var result []model.SwapRequest
	for i := len(m.order) - 1; i >= 0; i-- {
		swap := m.load(m.order[i])
		if swap.FromUserID == userID || swap.ToUserID == userID {
			result = append(result, *swap)
		}
	}
	return result, nil
}

func (m *mockSwapRepo) ListRecentSent(_ context.Context, userID string, limit int) ([]model.SwapRequest, error) {
	var result []model.SwapRequest
	for i := len(m.order) - 1; i >= 0 && len(result) < limit; i-- {
		swap := m.load(m.order[i])
		if swap.FromUserID == userID {
			result = append(result, *swap)
		}
	}
	return result, nil
}

func (m *mockSwapRepo) ListAll(_ context.Context, status string) ([]model.SwapRequest, error) {
	var result []model.SwapRequest
	for i := len(m.order) - 1; i >= 0; i-- {
		swap := m.load(m.order[i])
		if status == "" || swap.Status == status {
			result = append(result, *swap)
		}
	}
	return result, nil
}

func (m *mockSwapRepo) UpdateStatus(_ context.Context, id, fromStatus, toStatus string) (int64, error) {
	swap, ok := m.swaps[id]
	if !ok || swap.Status != fromStatus {
		return 0, nil
	}
	swap.Status = toStatus
	swap.UpdatedAt = m.clock.next()
	return 1, nil
}

func (m *mockSwapRepo) ExistsPending(_ context.Context, fromUserID, toUserID string) (bool, error) {
	for _, swap := range m.swaps {
		if swap.FromUserID == fromUserID && swap.ToUserID == toUserID && swap.Status == model.SwapStatusPending {
			return true, nil
		}
	}
	return false, nil
}

type mockRatingRepo struct {
	ratings []model.Rating
	seq     int
	clock   *mockClock
	users   *mockUserRepo
}

func newMockRatingRepo(clock *mockClock, users *mockUserRepo) *mockRatingRepo {
	return &mockRatingRepo{clock: clock, users: users}
}

func (m *mockRatingRepo) Create(_ context.Context, rating *model.Rating) error {
	if rating.RatingID == "" {
		m.seq++
		rating.RatingID = fmt.Sprintf("rating-%04d", m.seq)
	}
	rating.CreatedAt = m.clock.next()
	m.ratings = append(m.ratings, *rating)
	return nil
}

func (m *mockRatingRepo) Exists(_ context.Context, swapID, raterID, ratedUserID string) (bool, error) {
	for _, r := range m.ratings {
		if r.SwapRequestID == swapID && r.RaterID == raterID && r.RatedUserID == ratedUserID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRatingRepo) AverageForUser(_ context.Context, userID string) (float64, error) {
	var sum, count float64
	for _, r := range m.ratings {
		if r.RatedUserID == userID {
			sum += float64(r.Score)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

func (m *mockRatingRepo) ListAll(_ context.Context) ([]model.Rating, error) {
	result := make([]model.Rating, 0, len(m.ratings))
	for i := len(m.ratings) - 1; i >= 0; i-- {
		r := m.ratings[i]
		r.Rater = m.users.users[r.RaterID]
		r.RatedUser = m.users.users[r.RatedUserID]
		result = append(result, r)
	}
	return result, nil
}

type mockNotificationRepo struct {
	items []model.Notification
	seq   int
	clock *mockClock
}

func newMockNotificationRepo(clock *mockClock) *mockNotificationRepo {
	return &mockNotificationRepo{clock: clock}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	m.seq++
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("notif-%04d", m.seq)
	}
	n.CreatedAt = m.clock.next()
	m.items = append(m.items, *n)
	return nil
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	for i := range ns {
		if err := m.Create(ctx, &ns[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for i := len(m.items) - 1; i >= 0 && len(result) < limit; i-- {
		if m.items[i].UserID == userID {
			result = append(result, m.items[i])
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for i := range m.items {
		if m.items[i].UserID == userID {
			m.items[i].IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, userID string) (int64, error) {
	for i := range m.items {
		if m.items[i].NotificationID == id && m.items[i].UserID == userID {
			m.items[i].IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

// countFor 统计某用户的通知条数（测试断言用）
func (m *mockNotificationRepo) countFor(userID string) int {
	count := 0
	for _, n := range m.items {
		if n.UserID == userID {
			count++
		}
	}
	return count
}

// lastFor 返回某用户最新一条通知内容（测试断言用）
func (m *mockNotificationRepo) lastFor(userID string) string {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].UserID == userID {
			return m.items[i].Message
		}
	}
	return ""
}

// ── 测试环境 ──

type testEnv struct {
	cfg           *config.Config
	repo          *repository.Repository
	users         *mockUserRepo
	skills        *mockSkillRepo
	userSkills    *mockUserSkillRepo
	swaps         *mockSwapRepo
	ratings       *mockRatingRepo
	notifications *mockNotificationRepo
}

func newTestEnv() *testEnv {
	clock := newMockClock()
	users := newMockUserRepo(clock)
	skills := newMockSkillRepo(clock)
	ratings := newMockRatingRepo(clock, users)

	env := &testEnv{
		cfg: &config.Config{
			Auth: config.AuthConfig{
				JWTSecret:       "test-secret-key-for-unit-testing-2026",
				AccessTokenTTL:  30 * time.Minute,
				RefreshTokenTTL: 168 * time.Hour,
			},
		},
		users:         users,
		skills:        skills,
		userSkills:    newMockUserSkillRepo(skills),
		swaps:         newMockSwapRepo(clock, users, ratings),
		ratings:       ratings,
		notifications: newMockNotificationRepo(clock),
	}

	skills.assocs = env.userSkills

	env.repo = &repository.Repository{
		User:         env.users,
		Skill:        env.skills,
		UserSkill:    env.userSkills,
		Swap:         env.swaps,
		Rating:       env.ratings,
		Notification: env.notifications,
	}
	return env
}

// addUser 创建一个公开、未封禁的普通用户
func (env *testEnv) addUser(name, email string) *model.User {
	user := &model.User{
		Name:     name,
		Email:    email,
		IsPublic: true,
		Role:     model.RoleMember,
		IsActive: true,
	}
	_ = env.users.Create(context.Background(), user)
	return user
}

// addSkill 创建一个技能
func (env *testEnv) addSkill(name string) *model.Skill {
	skill := &model.Skill{Name: name}
	_ = env.skills.Create(context.Background(), skill)
	return skill
}
