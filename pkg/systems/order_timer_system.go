package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
)

// TimerEvent 订单倒计时事件
type TimerEvent int

const (
	TimerEventNone TimerEvent = iota
	// TimerEventLowTime 剩余时间首次低于阈值
	TimerEventLowTime
	// TimerEventFailed 倒计时归零，订单失败
	TimerEventFailed
)

func (e TimerEvent) String() string {
	switch e {
	case TimerEventNone:
		return "None"
	case TimerEventLowTime:
		return "LowTime"
	case TimerEventFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// OrderTimerSystem 订单倒计时系统
//
// 倒计时不受打字机等输入屏蔽状态影响。
// 同一帧内先检查失败，再检查低时间警告；警告每张订单只触发一次。
type OrderTimerSystem struct {
	entityManager    *ecs.EntityManager
	presenter        game.Presenter
	cues             game.CuePlayer
	lowTimeThreshold float64
	lastDisplayed    int
}

// NewOrderTimerSystem 创建订单倒计时系统
func NewOrderTimerSystem(em *ecs.EntityManager, presenter game.Presenter, cues game.CuePlayer, lowTimeThreshold float64) *OrderTimerSystem {
	return &OrderTimerSystem{
		entityManager:    em,
		presenter:        presenter,
		cues:             cues,
		lowTimeThreshold: lowTimeThreshold,
		lastDisplayed:    -1,
	}
}

// Update 推进所有进行中订单的倒计时
func (s *OrderTimerSystem) Update(dt float64) TimerEvent {
	event := TimerEventNone

	for _, entityID := range ecs.GetEntitiesWith1[*components.OrderSessionComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(entityID) {
			continue
		}
		session, _ := ecs.GetComponent[*components.OrderSessionComponent](s.entityManager, entityID)
		if session.Completed || session.Failed {
			continue
		}

		session.TimeRemaining -= dt

		if session.TimeRemaining <= 0 {
			session.TimeRemaining = 0
			session.Failed = true
			s.displayTime(0)
			s.presenter.DisplayText(game.TargetFeedback, FeedbackTimeUp)
			s.cues.PlayCue(game.CueFail)
			s.entityManager.DestroyEntity(entityID)
			log.Printf("[OrderTimerSystem] Order %s failed: time is up", session.DrinkName)
			event = TimerEventFailed
			continue
		}

		if !session.LowTimeWarned && session.TimeRemaining < s.lowTimeThreshold {
			session.LowTimeWarned = true
			s.cues.PlayCue(game.CueLowTime)
			log.Printf("[OrderTimerSystem] Low time warning: %.2fs left", session.TimeRemaining)
			if event == TimerEventNone {
				event = TimerEventLowTime
			}
		}

		s.displayTime(int(math.Ceil(session.TimeRemaining)))
	}

	s.entityManager.RemoveMarkedEntities()
	return event
}

// displayTime 只在整数秒变化时刷新显示
func (s *OrderTimerSystem) displayTime(seconds int) {
	if seconds == s.lastDisplayed {
		return
	}
	s.lastDisplayed = seconds
	s.presenter.DisplayText(game.TargetTimer, fmt.Sprintf("Time: %d", seconds))
}
