package systems

import (
	"log"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/story"
)

// DialogueState 对话状态机状态
type DialogueState int

const (
	// DialogueIdle 尚未开始，或分支为空
	DialogueIdle DialogueState = iota
	// DialogueRevealing 台词正在逐字显示，忽略所有输入
	DialogueRevealing
	// DialogueAwaitingChoice 等待玩家选择
	DialogueAwaitingChoice
	// DialogueTransitioning 已到终点，等待延迟后切换场景
	DialogueTransitioning
)

func (s DialogueState) String() string {
	switch s {
	case DialogueIdle:
		return "Idle"
	case DialogueRevealing:
		return "Revealing"
	case DialogueAwaitingChoice:
		return "AwaitingChoice"
	case DialogueTransitioning:
		return "Transitioning"
	default:
		return "Unknown"
	}
}

// DialogueSystem 对话状态机
//
// 状态转换：
//
//	Idle → Revealing（Start）
//	Revealing → Revealing / AwaitingChoice / Transitioning（台词显示完毕，推进到下一步）
//	AwaitingChoice → Revealing / Transitioning（玩家确认选项）
//
// 所有推进都发生在 Tick 中，由打字机完成信号和选项确认驱动。
// 终点步骤写入 GameState 后通过 TransitionSystem 延迟请求切换场景。
type DialogueSystem struct {
	gameState   *game.GameState
	typewriter  *TypewriterSystem
	choices     *ChoiceMenuSystem
	transitions *TransitionSystem
	presenter   game.Presenter

	branch story.Branch
	cursor *story.Cursor
	state  DialogueState

	// lineDone 当前台词的完成信号（由打字机回调设置，在 Tick 中消费）
	lineDone bool
}

// NewDialogueSystem 创建对话状态机
func NewDialogueSystem(
	gs *game.GameState,
	typewriter *TypewriterSystem,
	choices *ChoiceMenuSystem,
	transitions *TransitionSystem,
	presenter game.Presenter,
) *DialogueSystem {
	return &DialogueSystem{
		gameState:   gs,
		typewriter:  typewriter,
		choices:     choices,
		transitions: transitions,
		presenter:   presenter,
		state:       DialogueIdle,
	}
}

// Start 开始播放分支
func (s *DialogueSystem) Start(branch story.Branch) {
	s.branch = branch
	s.cursor = story.NewCursor(branch)
	s.presenter.DisplayText(game.TargetNPC, "")
	s.presenter.DisplayText(game.TargetPlayer, "")

	log.Printf("[DialogueSystem] Start branch %s (%s), state=%s", branch.Name, branch.Performance, s.gameState)

	step, ok := s.cursor.Current()
	if !ok {
		s.state = DialogueIdle
		return
	}
	s.enter(step)
}

// Tick 推进状态机
//
// 参数：
//   - dt: 帧间隔（秒）
//   - input: 本帧采样到的输入事件（Revealing 状态下被忽略）
func (s *DialogueSystem) Tick(dt float64, input game.InputEvent) {
	switch s.state {
	case DialogueRevealing:
		s.typewriter.Update(dt)
		if s.lineDone {
			s.lineDone = false
			s.advance(story.NoChoice)
		}

	case DialogueAwaitingChoice:
		choice, confirmed := s.choices.Update(dt, input)
		if !confirmed {
			return
		}
		step, _ := s.cursor.Current()
		if option := step.Options[choice]; option.SetsFamilyMentioned {
			s.gameState.MarkFamilyMentioned()
			log.Printf("[DialogueSystem] Option %q sets familyMentioned", option.ID)
		}
		s.advance(choice)

	case DialogueTransitioning:
		s.transitions.Update(dt)
	}
}

// State 返回当前状态
func (s *DialogueSystem) State() DialogueState {
	return s.state
}

// IsRevealing 是否正在逐字显示台词
func (s *DialogueSystem) IsRevealing() bool {
	return s.state == DialogueRevealing
}

// Branch 返回正在播放的分支
func (s *DialogueSystem) Branch() story.Branch {
	return s.branch
}

func (s *DialogueSystem) advance(choice int) {
	step, err := s.cursor.Advance(choice)
	if err != nil {
		log.Printf("[DialogueSystem] Advance failed: %v", err)
		s.state = DialogueIdle
		return
	}
	s.enter(step)
}

// enter 进入一个步骤
func (s *DialogueSystem) enter(step story.Step) {
	switch step.Kind {
	case story.StepLine:
		s.state = DialogueRevealing
		s.lineDone = false
		s.typewriter.Start(speakerTarget(step.Speaker), step.Text, func() {
			s.lineDone = true
		})

	case story.StepChoice:
		s.state = DialogueAwaitingChoice
		texts := make([]string, len(step.Options))
		for i, option := range step.Options {
			texts[i] = option.Text
		}
		s.choices.Show(texts, step.RevealInterval)

	case story.StepTransition:
		s.state = DialogueTransitioning
		if step.AdvanceScenario {
			s.gameState.SetDrinkScenario(game.ScenarioSecond)
		}
		log.Printf("[DialogueSystem] Branch %s finished, state=%s", s.branch.Name, s.gameState)
		s.transitions.Schedule(step.Scene, step.Delay)
	}
}

func speakerTarget(speaker string) game.TextTarget {
	if speaker == config.SpeakerPlayer {
		return game.TargetPlayer
	}
	return game.TargetNPC
}
