package systems

import (
	"log"

	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
)

// TalkCueEvery 每显示多少个字播放一次说话音效
const TalkCueEvery = 2

// TypewriterSystem 打字机文本系统
//
// 职责：
//   - 按固定间隔逐字扩展文本，每一步调用一次 DisplayText
//   - 每 TalkCueEvery 个字播放一次说话音效
//   - 完整文本显示后再等待一个间隔，然后恰好触发一次完成回调
//
// 同一显示目标上开始新文本会取消旧的文本（不触发旧回调）。
type TypewriterSystem struct {
	entityManager *ecs.EntityManager
	presenter     game.Presenter
	cues          game.CuePlayer
	interval      float64
}

// NewTypewriterSystem 创建打字机系统
//
// 参数：
//   - interval: 每个字的间隔（秒），通常来自 GameSettings.TypeSpeed
func NewTypewriterSystem(em *ecs.EntityManager, presenter game.Presenter, cues game.CuePlayer, interval float64) *TypewriterSystem {
	if interval <= 0 {
		interval = game.DefaultTypeSpeed
	}
	return &TypewriterSystem{
		entityManager: em,
		presenter:     presenter,
		cues:          cues,
		interval:      interval,
	}
}

// Start 在 target 上开始逐字显示 text
// 立即显示空文本（第 0 步），之后每个间隔显示一个字
func (s *TypewriterSystem) Start(target game.TextTarget, text string, onComplete func()) ecs.EntityID {
	s.cancelTarget(string(target))

	entityID := s.entityManager.CreateEntity()
	tw := &components.TypewriterComponent{
		Target:      string(target),
		Runes:       []rune(text),
		Interval:    s.interval,
		CueEvery:    TalkCueEvery,
		IsRevealing: true,
		OnComplete:  onComplete,
	}
	ecs.AddComponent(s.entityManager, entityID, tw)

	s.emit(tw)
	return entityID
}

// Update 推进所有打字机
func (s *TypewriterSystem) Update(dt float64) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TypewriterComponent](s.entityManager) {
		if s.entityManager.IsPendingDestroy(entityID) {
			continue
		}
		tw, _ := ecs.GetComponent[*components.TypewriterComponent](s.entityManager, entityID)
		if !tw.IsRevealing {
			continue
		}

		tw.Elapsed += dt
		for tw.IsRevealing && tw.Elapsed >= tw.Interval {
			tw.Elapsed -= tw.Interval
			if tw.Revealed < len(tw.Runes) {
				tw.Revealed++
				s.emit(tw)
				continue
			}
			s.complete(entityID, tw)
		}
	}
	s.entityManager.RemoveMarkedEntities()
}

// Finish 立即显示完整文本并触发完成回调
func (s *TypewriterSystem) Finish(entityID ecs.EntityID) {
	tw, ok := ecs.GetComponent[*components.TypewriterComponent](s.entityManager, entityID)
	if !ok || !tw.IsRevealing {
		return
	}
	if tw.Revealed < len(tw.Runes) {
		tw.Revealed = len(tw.Runes)
		s.presenter.DisplayText(game.TextTarget(tw.Target), string(tw.Runes))
	}
	s.complete(entityID, tw)
}

// Cancel 停止显示，不触发完成回调
func (s *TypewriterSystem) Cancel(entityID ecs.EntityID) {
	tw, ok := ecs.GetComponent[*components.TypewriterComponent](s.entityManager, entityID)
	if !ok {
		return
	}
	tw.IsRevealing = false
	s.entityManager.DestroyEntity(entityID)
}

// IsRevealing 是否有文本正在逐字显示
func (s *TypewriterSystem) IsRevealing() bool {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TypewriterComponent](s.entityManager) {
		tw, _ := ecs.GetComponent[*components.TypewriterComponent](s.entityManager, entityID)
		if tw.IsRevealing {
			return true
		}
	}
	return false
}

func (s *TypewriterSystem) emit(tw *components.TypewriterComponent) {
	s.presenter.DisplayText(game.TextTarget(tw.Target), string(tw.Runes[:tw.Revealed]))
	if tw.CueEvery > 0 && tw.Revealed%tw.CueEvery == 0 {
		s.cues.PlayCue(game.CueTalk)
	}
}

func (s *TypewriterSystem) complete(entityID ecs.EntityID, tw *components.TypewriterComponent) {
	if tw.Completed {
		return
	}
	tw.IsRevealing = false
	tw.Completed = true
	s.entityManager.DestroyEntity(entityID)

	if tw.OnComplete != nil {
		tw.OnComplete()
	}
}

func (s *TypewriterSystem) cancelTarget(target string) {
	for _, entityID := range ecs.GetEntitiesWith1[*components.TypewriterComponent](s.entityManager) {
		tw, _ := ecs.GetComponent[*components.TypewriterComponent](s.entityManager, entityID)
		if tw.Target == target && tw.IsRevealing {
			log.Printf("[TypewriterSystem] Cancel reveal on %s (%d/%d)", target, tw.Revealed, len(tw.Runes))
			s.Cancel(entityID)
		}
	}
}
