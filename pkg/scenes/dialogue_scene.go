package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/story"
	"github.com/gonewx/coffeeshop/pkg/systems"
)

// DialogueScene 播放一条对话分支的场景（Intro 与 AIDialogue 共用）
type DialogueScene struct {
	name      string
	gameState *game.GameState
	deps      Dependencies
	board     *TextBoard
	dialogue  *systems.DialogueSystem

	// halted 配置错误，场景核心未启动
	halted bool
}

// NewIntroScene 创建开场对话场景
// 开场选项中包含唯一会设置 familyMentioned 的分支点
func NewIntroScene(gs *game.GameState, deps Dependencies) *DialogueScene {
	scene := newDialogueScene(game.SceneIntro, gs, deps)
	if deps.Dialogue == nil {
		scene.halt("dialogue config is not loaded")
		return scene
	}
	scene.dialogue.Start(story.IntroBranch(deps.Dialogue, gs.FamilyMentioned()))
	return scene
}

// NewAIDialogueScene 创建第一轮结束后的对话场景
// 分支由失误次数和 familyMentioned 决定，终点写入第二轮并返回制作场景
func NewAIDialogueScene(gs *game.GameState, deps Dependencies) *DialogueScene {
	scene := newDialogueScene(game.SceneAIDialogue, gs, deps)
	if deps.Dialogue == nil {
		scene.halt("dialogue config is not loaded")
		return scene
	}

	branch, err := story.SelectBranch(deps.Dialogue, gs.MistakeCount(), gs.FamilyMentioned())
	if err != nil {
		scene.halt(err.Error())
		return scene
	}
	scene.dialogue.Start(branch)
	return scene
}

func newDialogueScene(name string, gs *game.GameState, deps Dependencies) *DialogueScene {
	em := ecs.NewEntityManager()
	board := NewTextBoard()
	cues := deps.cues()

	dialogue := systems.NewDialogueSystem(
		gs,
		systems.NewTypewriterSystem(em, board, cues, deps.typeSpeed()),
		systems.NewChoiceMenuSystem(em, board, cues),
		systems.NewTransitionSystem(em, deps.Loader),
		board,
	)
	return &DialogueScene{
		name:      name,
		gameState: gs,
		deps:      deps,
		board:     board,
		dialogue:  dialogue,
	}
}

// Update 推进对话状态机
func (s *DialogueScene) Update(deltaTime float64) {
	input := s.deps.poll()
	if s.halted {
		return
	}
	s.dialogue.Tick(deltaTime, input)
}

// Draw 绘制对话
func (s *DialogueScene) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
}

// Board 返回场景的文本面板
func (s *DialogueScene) Board() *TextBoard {
	return s.board
}

// State 返回对话状态机的当前状态
func (s *DialogueScene) State() systems.DialogueState {
	return s.dialogue.State()
}

// Halted 场景是否因配置错误而停止
func (s *DialogueScene) Halted() bool {
	return s.halted
}

func (s *DialogueScene) halt(message string) {
	log.Printf("[%sScene] Configuration error: %s", s.name, message)
	s.halted = true
	s.board.DisplayText(game.TargetError, "Configuration error: "+message)
}
