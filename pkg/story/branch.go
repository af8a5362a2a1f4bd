package story

import (
	"fmt"

	"github.com/gonewx/coffeeshop/pkg/config"
)

// StepKind 步骤类型
type StepKind int

const (
	StepLine StepKind = iota
	StepChoice
	StepTransition
)

func (k StepKind) String() string {
	switch k {
	case StepLine:
		return "Line"
	case StepChoice:
		return "Choice"
	case StepTransition:
		return "Transition"
	default:
		return "Unknown"
	}
}

// Option 已解析的玩家选项
type Option struct {
	ID                  string
	Text                string
	SetsFamilyMentioned bool
	Then                []Step
}

// Step 已解析的对话步骤
// 台词文本已按 familyMentioned 选好变体
type Step struct {
	Kind StepKind

	// Line
	Speaker string
	Text    string

	// Choice
	Options        []Option
	RevealInterval float64
	EchoChoice     bool

	// Transition
	Scene           string
	AdvanceScenario bool
	Delay           float64
}

// Branch 一条完整的对话分支
type Branch struct {
	Name        string
	Performance Performance
	Steps       []Step
}

// SelectBranch 选择表现对话分支
// 纯函数：相同的 (mistakes, familyMentioned) 总是得到相同的分支
func SelectBranch(cfg *config.DialogueConfig, mistakes int, familyMentioned bool) (Branch, error) {
	performance := ClassifyPerformance(mistakes)

	steps, ok := cfg.Script(performance.ScriptKey())
	if !ok {
		return Branch{}, fmt.Errorf("%w: no script for %s", config.ErrInvalidConfig, performance)
	}

	return Branch{
		Name:        performance.ScriptKey(),
		Performance: performance,
		Steps:       resolveSteps(steps, familyMentioned),
	}, nil
}

// IntroBranch 返回开场对话分支
func IntroBranch(cfg *config.DialogueConfig, familyMentioned bool) Branch {
	return Branch{
		Name:        "intro",
		Performance: PerformancePerfect,
		Steps:       resolveSteps(cfg.Intro, familyMentioned),
	}
}

func resolveSteps(steps []config.StepConfig, familyMentioned bool) []Step {
	if len(steps) == 0 {
		return nil
	}

	result := make([]Step, 0, len(steps))
	for _, sc := range steps {
		result = append(result, resolveStep(sc, familyMentioned))
	}
	return result
}

func resolveStep(sc config.StepConfig, familyMentioned bool) Step {
	switch sc.Type {
	case config.StepTypeChoice:
		options := make([]Option, 0, len(sc.Options))
		for _, oc := range sc.Options {
			options = append(options, Option{
				ID:                  oc.ID,
				Text:                oc.Text,
				SetsFamilyMentioned: oc.SetsFamilyMentioned,
				Then:                resolveSteps(oc.Then, familyMentioned),
			})
		}
		return Step{
			Kind:           StepChoice,
			Options:        options,
			RevealInterval: sc.RevealInterval,
			EchoChoice:     sc.EchoChoice,
		}

	case config.StepTypeTransition:
		return Step{
			Kind:            StepTransition,
			Scene:           sc.Scene,
			AdvanceScenario: sc.AdvanceScenario,
			Delay:           sc.Delay,
		}

	default:
		text := sc.Text
		if familyMentioned && sc.FamilyText != "" {
			text = sc.FamilyText
		}
		return Step{Kind: StepLine, Speaker: sc.Speaker, Text: text}
	}
}
