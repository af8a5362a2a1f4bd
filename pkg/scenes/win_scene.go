package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/systems"
)

// winExitDelay 通关后自动进入帮助页的延迟（秒）
const winExitDelay = 2.0

// WinScene 第二轮完成，游戏通关
type WinScene struct {
	gameState   *game.GameState
	deps        Dependencies
	board       *TextBoard
	transitions *systems.TransitionSystem
	done        bool
}

// NewWinScene 创建通关场景
func NewWinScene(gs *game.GameState, deps Dependencies) *WinScene {
	log.Printf("[WinScene] Final state=%s", gs)

	scene := &WinScene{
		gameState:   gs,
		deps:        deps,
		board:       NewTextBoard(),
		transitions: systems.NewTransitionSystem(ecs.NewEntityManager(), deps.Loader),
	}
	scene.board.DisplayText(TargetTitle, "You did it!")
	scene.board.DisplayText(game.TargetNPC, "Every order served. Gita is proud of you, Finn.")
	scene.board.DisplayText(game.TargetPrompt, "Press Enter to continue")
	scene.transitions.Schedule(game.SceneHelp, winExitDelay)
	return scene
}

// Update 等待自动切换，确认可跳过
func (s *WinScene) Update(deltaTime float64) {
	input := s.deps.poll()
	if s.done {
		return
	}
	if input == game.InputConfirm {
		s.done = true
		s.transitions.CancelAll()
		s.deps.Loader.LoadScene(game.SceneHelp)
		return
	}
	s.transitions.Update(deltaTime)
	if !s.transitions.Pending() {
		s.done = true
	}
}

// Draw 绘制场景
func (s *WinScene) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
}

// Board 返回场景的文本面板
func (s *WinScene) Board() *TextBoard {
	return s.board
}
