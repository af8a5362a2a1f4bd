package systems

import (
	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/ecs"
)

// TimerSystem 通用计时器系统
// 负责推进 TimerComponent，到期后设置 IsReady，由使用方读取并销毁
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// Start 创建一个新的计时器实体
func (s *TimerSystem) Start(name string, seconds float64) ecs.EntityID {
	entityID := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, entityID, &components.TimerComponent{
		Name:       name,
		TargetTime: seconds,
		IsReady:    seconds <= 0,
	})
	return entityID
}

// Update 推进所有计时器
func (s *TimerSystem) Update(dt float64) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, entityID)
		if timer.IsReady {
			continue
		}
		timer.CurrentTime += dt
		if timer.CurrentTime >= timer.TargetTime {
			timer.IsReady = true
		}
	}
}

// Consume 如果名为 name 的计时器已完成，销毁它并返回 true
func (s *TimerSystem) Consume(name string) bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, entityID)
		if timer.Name == name && timer.IsReady && !s.entityManager.IsPendingDestroy(entityID) {
			s.entityManager.DestroyEntity(entityID)
			s.entityManager.RemoveMarkedEntities()
			return true
		}
	}
	return false
}

// Cancel 销毁名为 name 的所有计时器
func (s *TimerSystem) Cancel(name string) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, entityID)
		if timer.Name == name {
			s.entityManager.DestroyEntity(entityID)
		}
	}
	s.entityManager.RemoveMarkedEntities()
}

// Active 是否存在名为 name 的计时器
func (s *TimerSystem) Active(name string) bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, entityID)
		if timer.Name == name && !s.entityManager.IsPendingDestroy(entityID) {
			return true
		}
	}
	return false
}
