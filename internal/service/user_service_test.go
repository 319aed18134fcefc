package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"skillswap/backend/internal/dto"
	"skillswap/backend/internal/model"
)

func setupTestUserService() (UserService, *testEnv) {
	env := newTestEnv()
	return NewUserService(env.repo, zap.NewNop()), env
}

// attachOffered 给用户挂接可教授技能（并同步进浏览列表的预加载关联）
func attachOffered(env *testEnv, user *model.User, skill *model.Skill) {
	assoc := model.OfferedSkill{UserID: user.UserID, SkillID: skill.SkillID, Level: model.LevelBeginner, Skill: skill}
	_ = env.userSkills.AddOffered(context.Background(), &assoc)
	user.SkillsOffered = append(user.SkillsOffered, assoc)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	svc, env := setupTestUserService()
	user := env.addUser("王芳", "wangfang@test.com")
	user.Location = "上海"

	bio := "喜欢教人弹吉他"
	result, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		Bio: &bio,
	})
	if err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}

	if result.Bio != bio {
		t.Errorf("Bio 应更新为 %q，实际 %q", bio, result.Bio)
	}
	// 未提交的字段保持不变
	if result.Location != "上海" {
		t.Errorf("Location 不应被覆盖，实际 %q", result.Location)
	}
	if result.Name != "王芳" {
		t.Errorf("Name 不应被覆盖，实际 %q", result.Name)
	}
}

func TestUpdateProfile_ReplaceSkillSets(t *testing.T) {
	svc, env := setupTestUserService()
	user := env.addUser("王芳", "wangfang@test.com")
	s1 := env.addSkill("吉他")
	s2 := env.addSkill("钢琴")

	ids := []string{s1.SkillID, s2.SkillID}
	if _, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		SkillsOfferedIDs: &ids,
	}); err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}

	offered, _ := env.userSkills.ListOffered(context.Background(), user.UserID)
	if len(offered) != 2 {
		t.Fatalf("期望 2 条可教授技能，实际 %d", len(offered))
	}

	// 再次整体重设为单个技能
	ids = []string{s2.SkillID}
	if _, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		SkillsOfferedIDs: &ids,
	}); err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}

	offered, _ = env.userSkills.ListOffered(context.Background(), user.UserID)
	if len(offered) != 1 || offered[0].SkillID != s2.SkillID {
		t.Errorf("技能集合应整体重设为 [%s]", s2.SkillID)
	}
}

func TestBrowse_ExcludesViewerAndHiddenUsers(t *testing.T) {
	svc, env := setupTestUserService()
	viewer := env.addUser("本人", "me@test.com")
	env.addUser("公开用户", "visible@test.com")
	hidden := env.addUser("隐身用户", "hidden@test.com")
	hidden.IsPublic = false
	banned := env.addUser("封禁用户", "banned@test.com")
	banned.IsActive = false

	users, total, err := svc.Browse(context.Background(), viewer.UserID, &dto.BrowseRequest{})
	if err != nil {
		t.Fatalf("Browse 应成功: %v", err)
	}
	if total != 1 || len(users) != 1 {
		t.Fatalf("期望仅 1 个可见用户，实际 total=%d len=%d", total, len(users))
	}
	if users[0].Name != "公开用户" {
		t.Errorf("期望返回公开用户，实际 %s", users[0].Name)
	}
}

func TestBrowse_SearchMatchesSkillSubstring(t *testing.T) {
	svc, env := setupTestUserService()
	viewer := env.addUser("本人", "me@test.com")

	js := env.addSkill("JavaScript")
	cooking := env.addSkill("烹饪")

	dev := env.addUser("前端开发者", "dev@test.com")
	attachOffered(env, dev, js)
	chef := env.addUser("厨师", "chef@test.com")
	attachOffered(env, chef, cooking)

	// "java" 应命中教 JavaScript 的用户（大小写不敏感子串匹配）
	users, total, err := svc.Browse(context.Background(), viewer.UserID, &dto.BrowseRequest{Search: "java"})
	if err != nil {
		t.Fatalf("Browse 应成功: %v", err)
	}
	if total != 1 || len(users) != 1 {
		t.Fatalf("期望命中 1 个用户，实际 total=%d len=%d", total, len(users))
	}
	if users[0].Name != "前端开发者" {
		t.Errorf("期望命中前端开发者，实际 %s", users[0].Name)
	}

	// 按姓名匹配
	users, _, err = svc.Browse(context.Background(), viewer.UserID, &dto.BrowseRequest{Search: "厨"})
	if err != nil {
		t.Fatalf("Browse 应成功: %v", err)
	}
	if len(users) != 1 || users[0].Name != "厨师" {
		t.Errorf("按姓名搜索应命中厨师")
	}

	// 无命中
	_, total, err = svc.Browse(context.Background(), viewer.UserID, &dto.BrowseRequest{Search: "rust"})
	if err != nil {
		t.Fatalf("Browse 应成功: %v", err)
	}
	if total != 0 {
		t.Errorf("期望无命中，实际 total=%d", total)
	}
}

func TestBrowse_Pagination(t *testing.T) {
	svc, env := setupTestUserService()
	viewer := env.addUser("本人", "me@test.com")
	for i := 0; i < 14; i++ {
		env.addUser(fmt.Sprintf("用户%02d", i), fmt.Sprintf("u%02d@test.com", i))
	}

	// 14 条、每页 3 条：第 5 页应有 2 条
	page5 := dto.BrowseRequest{}
	page5.Page, page5.PageSize = 5, 3
	users, total, err := svc.Browse(context.Background(), viewer.UserID, &page5)
	if err != nil {
		t.Fatalf("Browse 应成功: %v", err)
	}
	if total != 14 {
		t.Errorf("期望 total=14，实际 %d", total)
	}
	if len(users) != 2 {
		t.Errorf("第 5 页期望 2 条，实际 %d", len(users))
	}

	// 超界页返回空列表而非错误
	page6 := dto.BrowseRequest{}
	page6.Page, page6.PageSize = 6, 3
	users, total, err = svc.Browse(context.Background(), viewer.UserID, &page6)
	if err != nil {
		t.Fatalf("超界页不应报错: %v", err)
	}
	if total != 14 || len(users) != 0 {
		t.Errorf("第 6 页期望空列表，实际 len=%d", len(users))
	}
}

func TestAddOfferedSkill_GetOrCreateByName(t *testing.T) {
	svc, env := setupTestUserService()
	u1 := env.addUser("甲", "a@test.com")
	u2 := env.addUser("乙", "b@test.com")

	r1, err := svc.AddOfferedSkill(context.Background(), u1.UserID, &dto.AddOfferedSkillRequest{
		Name: "吉他", Level: model.LevelAdvanced,
	})
	if err != nil {
		t.Fatalf("AddOfferedSkill 应成功: %v", err)
	}

	// 同名技能不重复建档
	r2, err := svc.AddOfferedSkill(context.Background(), u2.UserID, &dto.AddOfferedSkillRequest{
		Name: "吉他",
	})
	if err != nil {
		t.Fatalf("AddOfferedSkill 应成功: %v", err)
	}
	if r1.ID != r2.ID {
		t.Errorf("同名技能应复用同一条记录: %s != %s", r1.ID, r2.ID)
	}
	if r2.Level != model.LevelBeginner {
		t.Errorf("缺省等级应为 Beginner，实际 %s", r2.Level)
	}
}

func TestAddWantedSkill_Defaults(t *testing.T) {
	svc, env := setupTestUserService()
	user := env.addUser("甲", "a@test.com")

	result, err := svc.AddWantedSkill(context.Background(), user.UserID, &dto.AddWantedSkillRequest{
		Name: "钢琴",
	})
	if err != nil {
		t.Fatalf("AddWantedSkill 应成功: %v", err)
	}
	if result.Level != model.LevelAny || result.Priority != model.PriorityMedium {
		t.Errorf("缺省应为 Any/Medium，实际 %s/%s", result.Level, result.Priority)
	}
}

func TestRemoveSkill(t *testing.T) {
	svc, env := setupTestUserService()
	user := env.addUser("甲", "a@test.com")

	added, err := svc.AddOfferedSkill(context.Background(), user.UserID, &dto.AddOfferedSkillRequest{Name: "吉他"})
	if err != nil {
		t.Fatalf("AddOfferedSkill 应成功: %v", err)
	}

	if err := svc.RemoveSkill(context.Background(), user.UserID, "offered", added.ID); err != nil {
		t.Fatalf("RemoveSkill 应成功: %v", err)
	}

	// 再次移除同一关联应报不存在
	err = svc.RemoveSkill(context.Background(), user.UserID, "offered", added.ID)
	if !errors.Is(err, ErrUserSkillNotFound) {
		t.Errorf("期望 ErrUserSkillNotFound，实际: %v", err)
	}
}
