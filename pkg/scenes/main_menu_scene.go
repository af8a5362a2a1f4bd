package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/systems"
)

// 主菜单项
const (
	menuItemPlay = iota
	menuItemHelp
	menuItemSound
	menuItemQuit
	menuItemCount
)

// mainMenuTransitionDelay 主菜单切换场景的延迟（秒）
const mainMenuTransitionDelay = 1.0

// MainMenuScene 主菜单
// Play → Intro，Help → Help，Sound 切换音效开关（持久化），Quit 退出游戏
type MainMenuScene struct {
	gameState   *game.GameState
	deps        Dependencies
	board       *TextBoard
	transitions *systems.TransitionSystem

	selected int
	leaving  bool
}

// NewMainMenuScene 创建主菜单场景
func NewMainMenuScene(gs *game.GameState, deps Dependencies) *MainMenuScene {
	scene := &MainMenuScene{
		gameState: gs,
		deps:      deps,
		board:     NewTextBoard(),
	}
	scene.transitions = systems.NewTransitionSystem(ecs.NewEntityManager(), deps.Loader)

	scene.board.DisplayText(TargetTitle, "Finn & Gita's Coffee Shop")
	scene.board.DisplayText(game.TargetPrompt, "Up/Down to choose, Enter to confirm")
	scene.refreshItems()
	scene.board.SetHighlight(scene.selected)
	return scene
}

// Update 处理菜单导航
func (s *MainMenuScene) Update(deltaTime float64) {
	s.transitions.Update(deltaTime)
	input := s.deps.poll()
	if s.leaving {
		return
	}

	switch input {
	case game.InputNavigateUp:
		s.selected = (s.selected - 1 + menuItemCount) % menuItemCount
		s.deps.cues().PlayCue(game.CueNavigate)
		s.board.SetHighlight(s.selected)

	case game.InputNavigateDown:
		s.selected = (s.selected + 1) % menuItemCount
		s.deps.cues().PlayCue(game.CueNavigate)
		s.board.SetHighlight(s.selected)

	case game.InputConfirm:
		s.deps.cues().PlayCue(game.CueConfirm)
		s.activate()
	}
}

// Draw 绘制菜单
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
}

// Board 返回场景的文本面板
func (s *MainMenuScene) Board() *TextBoard {
	return s.board
}

func (s *MainMenuScene) activate() {
	switch s.selected {
	case menuItemPlay:
		s.leave(game.SceneIntro)

	case menuItemHelp:
		s.leave(game.SceneHelp)

	case menuItemSound:
		if s.deps.Settings == nil {
			return
		}
		enabled := s.deps.Settings.ToggleSound()
		if err := s.deps.Settings.Save(); err != nil {
			log.Printf("[MainMenuScene] Failed to save settings: %v", err)
		}
		log.Printf("[MainMenuScene] Sound enabled: %v", enabled)
		s.refreshItems()

	case menuItemQuit:
		if s.deps.Quitter != nil {
			s.deps.Quitter.RequestQuit()
		}
	}
}

func (s *MainMenuScene) leave(scene string) {
	s.leaving = true
	s.transitions.Schedule(scene, mainMenuTransitionDelay)
}

func (s *MainMenuScene) refreshItems() {
	sound := "Sound: On"
	if s.deps.Settings != nil && !s.deps.Settings.GetSettings().SoundEnabled {
		sound = "Sound: Off"
	}
	labels := [menuItemCount]string{"Play", "Help", sound, "Quit"}
	for i, label := range labels {
		s.board.DisplayText(game.OptionTarget(i), label)
	}
}
