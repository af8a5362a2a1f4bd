package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/systems"
)

// failReloadDelay 失败后自动返回咖啡店的延迟（秒）
const failReloadDelay = 2.0

// FailScene 订单超时失败
// 本轮已完成数量清零（失误次数和剧情阶段保留），延迟后返回咖啡店；确认可立即返回
type FailScene struct {
	gameState   *game.GameState
	deps        Dependencies
	board       *TextBoard
	transitions *systems.TransitionSystem
	done        bool
}

// NewFailScene 创建失败场景
func NewFailScene(gs *game.GameState, deps Dependencies) *FailScene {
	gs.ResetServed()
	log.Printf("[FailScene] Served count reset, state=%s", gs)

	scene := &FailScene{
		gameState:   gs,
		deps:        deps,
		board:       NewTextBoard(),
		transitions: systems.NewTransitionSystem(ecs.NewEntityManager(), deps.Loader),
	}
	scene.board.DisplayText(TargetTitle, "Time's up!")
	scene.board.DisplayText(game.TargetNPC, "The customer got tired of waiting. Let's try that again.")
	scene.board.DisplayText(game.TargetPrompt, "Press Enter to try again")
	scene.transitions.Schedule(game.SceneCoffeeShop, failReloadDelay)
	return scene
}

// Update 等待自动返回，或确认后立即返回（取消待执行的切换）
func (s *FailScene) Update(deltaTime float64) {
	input := s.deps.poll()
	if s.done {
		return
	}
	if input == game.InputConfirm {
		s.done = true
		s.transitions.CancelAll()
		s.deps.Loader.LoadScene(game.SceneCoffeeShop)
		return
	}
	s.transitions.Update(deltaTime)
	if !s.transitions.Pending() {
		s.done = true
	}
}

// Draw 绘制场景
func (s *FailScene) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
}

// Board 返回场景的文本面板
func (s *FailScene) Board() *TextBoard {
	return s.board
}
