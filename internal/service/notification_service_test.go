package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"skillswap/backend/internal/model"
)

func setupTestNotificationService() (NotificationService, *testEnv) {
	env := newTestEnv()
	return NewNotificationService(env.repo, zap.NewNop()), env
}

func TestNotificationList_LatestTenNewestFirst(t *testing.T) {
	svc, env := setupTestNotificationService()
	user := env.addUser("甲", "a@test.com")

	for i := 0; i < 12; i++ {
		_ = env.notifications.Create(context.Background(), &model.Notification{
			UserID:  user.UserID,
			Message: fmt.Sprintf("通知 %02d", i),
		})
	}

	ns, err := svc.List(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(ns) != 10 {
		t.Fatalf("期望最近 10 条，实际 %d", len(ns))
	}
	if ns[0].Message != "通知 11" {
		t.Errorf("应按时间倒序，第一条期望「通知 11」，实际 %q", ns[0].Message)
	}
}

func TestNotificationList_OnlyOwn(t *testing.T) {
	svc, env := setupTestNotificationService()
	u1 := env.addUser("甲", "a@test.com")
	u2 := env.addUser("乙", "b@test.com")

	_ = env.notifications.Create(context.Background(), &model.Notification{UserID: u1.UserID, Message: "给甲的"})
	_ = env.notifications.Create(context.Background(), &model.Notification{UserID: u2.UserID, Message: "给乙的"})

	ns, err := svc.List(context.Background(), u1.UserID)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(ns) != 1 || ns[0].Message != "给甲的" {
		t.Error("只应返回本人的通知")
	}
}

func TestMarkAllRead(t *testing.T) {
	svc, env := setupTestNotificationService()
	user := env.addUser("甲", "a@test.com")

	for i := 0; i < 3; i++ {
		_ = env.notifications.Create(context.Background(), &model.Notification{UserID: user.UserID, Message: "未读"})
	}

	if err := svc.MarkAllRead(context.Background(), user.UserID); err != nil {
		t.Fatalf("MarkAllRead 失败: %v", err)
	}

	ns, _ := svc.List(context.Background(), user.UserID)
	for _, n := range ns {
		if !n.Read {
			t.Error("全部通知应已置为已读")
		}
	}
}

func TestMarkRead_SingleAndOwnership(t *testing.T) {
	svc, env := setupTestNotificationService()
	u1 := env.addUser("甲", "a@test.com")
	u2 := env.addUser("乙", "b@test.com")

	n := &model.Notification{UserID: u1.UserID, Message: "给甲的"}
	_ = env.notifications.Create(context.Background(), n)

	// 非本人操作视为不存在
	err := svc.MarkRead(context.Background(), u2.UserID, n.NotificationID)
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际: %v", err)
	}

	if err := svc.MarkRead(context.Background(), u1.UserID, n.NotificationID); err != nil {
		t.Fatalf("本人置已读应成功: %v", err)
	}
	ns, _ := svc.List(context.Background(), u1.UserID)
	if !ns[0].Read {
		t.Error("该通知应已置为已读")
	}
}
