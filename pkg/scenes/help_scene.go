package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/game"
)

// helpText 操作说明
const helpText = "Gita needs a hand behind the counter.\n" +
	"\n" +
	"Each order lists a drink. Its ingredients sit on four stations around the cup:\n" +
	"Up, Right, Down and Left. Press the arrow key of a station to add what it holds.\n" +
	"Add every ingredient the drink needs before the timer runs out.\n" +
	"Wrong or extra ingredients count as mistakes, and Gita will notice.\n" +
	"\n" +
	"In conversations use Up/Down to pick an answer and Enter to confirm."

// HelpScene 帮助场景，确认后返回主菜单
type HelpScene struct {
	deps  Dependencies
	board *TextBoard
}

// NewHelpScene 创建帮助场景
func NewHelpScene(_ *game.GameState, deps Dependencies) *HelpScene {
	scene := &HelpScene{deps: deps, board: NewTextBoard()}
	scene.board.DisplayText(TargetTitle, "How to play")
	scene.board.DisplayText(game.TargetNPC, helpText)
	scene.board.DisplayText(game.TargetPrompt, "Press Enter to return to the main menu")
	return scene
}

// Update 确认后返回主菜单
func (s *HelpScene) Update(deltaTime float64) {
	if s.deps.poll() == game.InputConfirm {
		s.deps.cues().PlayCue(game.CueConfirm)
		s.deps.Loader.LoadScene(game.SceneMainMenu)
	}
}

// Draw 绘制帮助文本
func (s *HelpScene) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
}

// Board 返回场景的文本面板
func (s *HelpScene) Board() *TextBoard {
	return s.board
}
