package errors

import "errors"

// ErrStateConflict 状态冲突：记录已被其他操作修改（如两个参与者同时流转申请状态）
var ErrStateConflict = errors.New("数据已被其他操作修改，请刷新后重试")
