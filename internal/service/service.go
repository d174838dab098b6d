// Package service 实现业务逻辑层
package service

import "time"

// Clock supplies the current time; tests replace it with a fixed clock
// Clock 提供当前时间，测试中替换为固定时钟
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 系统时钟
var SystemClock Clock = systemClock{}

// ClockFunc adapts a function to Clock
// ClockFunc 将函数适配为 Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
