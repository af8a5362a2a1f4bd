package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/game"
)

// CoffeeShopScene 咖啡店大厅，按 E（确认）开始制作饮品
type CoffeeShopScene struct {
	gameState *game.GameState
	deps      Dependencies
	board     *TextBoard
}

// NewCoffeeShopScene 创建咖啡店场景
func NewCoffeeShopScene(gs *game.GameState, deps Dependencies) *CoffeeShopScene {
	scene := &CoffeeShopScene{gameState: gs, deps: deps, board: NewTextBoard()}

	scene.board.DisplayText(TargetTitle, "The Coffee Shop")
	line := "Customers are lining up. Ready when you are!"
	if gs.DrinkScenario() == game.ScenarioSecond {
		line = "Let's make these drinks together!"
	}
	scene.board.DisplayText(game.TargetNPC, line)
	if gs.DrinksRequired() > 0 {
		scene.board.DisplayText(game.TargetProgress,
			fmt.Sprintf("Served: %d/%d", gs.DrinksServedCorrectly(), gs.DrinksRequired()))
	}
	scene.board.DisplayText(game.TargetPrompt, "Press E to start making drinks")
	return scene
}

// Update 确认后进入制作场景
func (s *CoffeeShopScene) Update(deltaTime float64) {
	if s.deps.poll() == game.InputConfirm {
		s.deps.Loader.LoadScene(game.SceneMakingOrder)
	}
}

// Draw 绘制场景
func (s *CoffeeShopScene) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
}

// Board 返回场景的文本面板
func (s *CoffeeShopScene) Board() *TextBoard {
	return s.board
}
