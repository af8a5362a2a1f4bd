package systems

import (
	"log"

	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
)

// ChoiceMenuSystem 玩家选项菜单系统
//
// 职责：
//   - 把选项放到显示槽位上（两个选项用 0/2 槽，三个选项用 0/1/2 槽）
//   - 选项逐个出现时每个播放一次出现音效，全部出现后才接受输入
//   - 上下导航（循环）并更新高亮，确认后隐藏选项并返回被选中的下标
//
// 同一时刻只存在一个菜单。
type ChoiceMenuSystem struct {
	entityManager *ecs.EntityManager
	presenter     game.Presenter
	cues          game.CuePlayer
	menuEntity    ecs.EntityID
}

// NewChoiceMenuSystem 创建选项菜单系统
func NewChoiceMenuSystem(em *ecs.EntityManager, presenter game.Presenter, cues game.CuePlayer) *ChoiceMenuSystem {
	return &ChoiceMenuSystem{
		entityManager: em,
		presenter:     presenter,
		cues:          cues,
	}
}

// Show 显示新的选项菜单
//
// 参数：
//   - options: 选项文本
//   - revealInterval: 选项逐个出现的间隔（秒），0 表示全部立即出现并可选择
func (s *ChoiceMenuSystem) Show(options []string, revealInterval float64) {
	s.Hide()

	menu := &components.ChoiceMenuComponent{
		Options:        options,
		Slots:          config.OptionSlots(len(options)),
		RevealInterval: revealInterval,
	}
	s.menuEntity = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.menuEntity, menu)

	if revealInterval <= 0 {
		for menu.Visible < len(menu.Slots) {
			s.revealNext(menu)
		}
		s.activate(menu)
		return
	}

	// 第一个选项立即出现
	s.revealNext(menu)
}

// Update 推进选项出现并处理输入
//
// 返回：
//   - int: 被确认的选项下标
//   - bool: 本帧是否确认了选项
func (s *ChoiceMenuSystem) Update(dt float64, input game.InputEvent) (int, bool) {
	menu, ok := s.menu()
	if !ok {
		return 0, false
	}

	if !menu.Active {
		menu.RevealElapsed += dt
		for !menu.Active && menu.RevealElapsed >= menu.RevealInterval {
			menu.RevealElapsed -= menu.RevealInterval
			if menu.Visible < len(menu.Slots) {
				s.revealNext(menu)
			} else {
				s.activate(menu)
			}
		}
		// 选项出现期间忽略输入
		return 0, false
	}

	count := len(menu.Slots)
	switch input {
	case game.InputNavigateUp:
		menu.Selected = (menu.Selected - 1 + count) % count
		s.cues.PlayCue(game.CueNavigate)
		s.presenter.SetHighlight(menu.Slots[menu.Selected])

	case game.InputNavigateDown:
		menu.Selected = (menu.Selected + 1) % count
		s.cues.PlayCue(game.CueNavigate)
		s.presenter.SetHighlight(menu.Slots[menu.Selected])

	case game.InputConfirm:
		chosen := menu.Selected
		log.Printf("[ChoiceMenuSystem] Option %d confirmed: %q", chosen, menu.Options[chosen])
		s.cues.PlayCue(game.CueConfirm)
		s.Hide()
		return chosen, true
	}

	return 0, false
}

// IsShowing 是否有菜单正在显示
func (s *ChoiceMenuSystem) IsShowing() bool {
	_, ok := s.menu()
	return ok
}

// IsActive 菜单是否已经接受输入
func (s *ChoiceMenuSystem) IsActive() bool {
	menu, ok := s.menu()
	return ok && menu.Active
}

// Hide 清空所有选项槽并移除菜单
func (s *ChoiceMenuSystem) Hide() {
	if _, ok := s.menu(); !ok {
		return
	}
	for slot := 0; slot < config.OptionSlotCount; slot++ {
		s.presenter.DisplayText(game.OptionTarget(slot), "")
	}
	s.presenter.SetHighlight(-1)
	s.entityManager.DestroyEntity(s.menuEntity)
	s.entityManager.RemoveMarkedEntities()
	s.menuEntity = 0
}

func (s *ChoiceMenuSystem) menu() (*components.ChoiceMenuComponent, bool) {
	if s.menuEntity == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.ChoiceMenuComponent](s.entityManager, s.menuEntity)
}

func (s *ChoiceMenuSystem) revealNext(menu *components.ChoiceMenuComponent) {
	i := menu.Visible
	s.presenter.DisplayText(game.OptionTarget(menu.Slots[i]), menu.Options[i])
	s.cues.PlayCue(game.CueOptionAppear)
	menu.Visible++
}

func (s *ChoiceMenuSystem) activate(menu *components.ChoiceMenuComponent) {
	menu.Active = true
	menu.Selected = 0
	s.presenter.SetHighlight(menu.Slots[0])
}
