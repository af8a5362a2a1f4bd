package systems

import (
	"log"

	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
)

// TransitionSystem 延迟场景切换系统
//
// 终局或失败事件发生后，给玩家留出阅读最后一条信息的时间再切换场景。
// 玩家手动重新加载时可以取消尚未触发的切换。
type TransitionSystem struct {
	entityManager *ecs.EntityManager
	loader        game.SceneLoader
}

// NewTransitionSystem 创建场景切换系统
func NewTransitionSystem(em *ecs.EntityManager, loader game.SceneLoader) *TransitionSystem {
	return &TransitionSystem{
		entityManager: em,
		loader:        loader,
	}
}

// Schedule 在 delay 秒后请求加载 scene
// delay <= 0 时在下一次 Update 中切换
func (s *TransitionSystem) Schedule(scene string, delay float64) ecs.EntityID {
	entityID := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, entityID, &components.SceneTransitionComponent{
		TargetScene: scene,
		Delay:       delay,
	})
	log.Printf("[TransitionSystem] Scheduled %s in %.1fs", scene, delay)
	return entityID
}

// Update 推进计时，到期后请求切换（每个切换只触发一次）
func (s *TransitionSystem) Update(dt float64) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.SceneTransitionComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(entityID) {
			continue
		}
		tr, _ := ecs.GetComponent[*components.SceneTransitionComponent](s.entityManager, entityID)
		if tr.Fired {
			continue
		}

		tr.Elapsed += dt
		if tr.Elapsed >= tr.Delay {
			tr.Fired = true
			s.entityManager.DestroyEntity(entityID)
			log.Printf("[TransitionSystem] Loading %s", tr.TargetScene)
			s.loader.LoadScene(tr.TargetScene)
		}
	}
	s.entityManager.RemoveMarkedEntities()
}

// CancelAll 取消所有尚未触发的切换
func (s *TransitionSystem) CancelAll() int {
	cancelled := 0
	for _, entityID := range ecs.GetEntitiesWith1[*components.SceneTransitionComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.SceneTransitionComponent](s.entityManager, entityID)
		if tr.Fired || s.entityManager.IsPendingDestroy(entityID) {
			continue
		}
		s.entityManager.DestroyEntity(entityID)
		cancelled++
	}
	s.entityManager.RemoveMarkedEntities()
	if cancelled > 0 {
		log.Printf("[TransitionSystem] Cancelled %d pending transition(s)", cancelled)
	}
	return cancelled
}

// Pending 是否有尚未触发的切换
func (s *TransitionSystem) Pending() bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.SceneTransitionComponent](s.entityManager) {
		tr, _ := ecs.GetComponent[*components.SceneTransitionComponent](s.entityManager, entityID)
		if !tr.Fired && !s.entityManager.IsPendingDestroy(entityID) {
			return true
		}
	}
	return false
}
