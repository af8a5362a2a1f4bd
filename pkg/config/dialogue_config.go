package config

import (
	"fmt"

	"github.com/gonewx/coffeeshop/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultDialogueConfigPath 对话脚本在嵌入文件系统中的路径
const DefaultDialogueConfigPath = "data/dialogue.yaml"

// 对话步骤类型
const (
	StepTypeLine       = "line"
	StepTypeChoice     = "choice"
	StepTypeTransition = "transition"
)

// 说话人
const (
	SpeakerNPC    = "npc"
	SpeakerPlayer = "player"
)

// 表现分档对应的脚本键
const (
	PerformancePerfect      = "perfect"
	PerformanceNearPerfect  = "nearPerfect"
	PerformanceManyMistakes = "manyMistakes"
)

// 选项数量范围
const (
	MinChoiceOptions = 2
	MaxChoiceOptions = 3
)

// OptionConfig 玩家选项配置
type OptionConfig struct {
	ID                  string       `yaml:"id"`                  // 选项结果ID，分支判断只依赖它
	Text                string       `yaml:"text"`                // 选项显示文本
	SetsFamilyMentioned bool         `yaml:"setsFamilyMentioned"` // 选中后永久设置 familyMentioned
	Then                []StepConfig `yaml:"then"`                // 选中后依次播放的台词（仅允许 line）
}

// StepConfig 对话步骤配置
type StepConfig struct {
	Type string `yaml:"type"` // line | choice | transition

	// line
	Speaker    string `yaml:"speaker"`    // npc | player，默认 npc
	Text       string `yaml:"text"`       // 台词
	FamilyText string `yaml:"familyText"` // familyMentioned 为真时替换 Text

	// choice
	Options        []OptionConfig `yaml:"options"`
	RevealInterval float64        `yaml:"revealInterval"` // 选项逐个出现的间隔（秒），0 表示同时出现
	EchoChoice     bool           `yaml:"echoChoice"`     // 选中的选项是否作为玩家台词播放

	// transition
	Scene           string  `yaml:"scene"`           // 目标场景
	AdvanceScenario bool    `yaml:"advanceScenario"` // 是否写入 drinkScenario = Second
	Delay           float64 `yaml:"delay"`           // 切换延迟（秒）
}

// DialogueConfig 对话脚本配置文件结构
type DialogueConfig struct {
	Intro       []StepConfig            `yaml:"intro"`
	Performance map[string][]StepConfig `yaml:"performance"`
}

// LoadDialogueConfig 从嵌入文件系统加载对话脚本
func LoadDialogueConfig(filepath string) (*DialogueConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dialogue config file %s: %w", filepath, err)
	}

	config, err := LoadDialogueConfigFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return config, nil
}

// LoadDialogueConfigFromBytes 从 YAML 字节加载对话脚本
func LoadDialogueConfigFromBytes(data []byte) (*DialogueConfig, error) {
	var config DialogueConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse dialogue config YAML: %w", err)
	}

	applyDialogueDefaults(&config)

	if err := validateDialogueConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Script 返回指定表现分档的脚本
func (c *DialogueConfig) Script(performance string) ([]StepConfig, bool) {
	steps, ok := c.Performance[performance]
	return steps, ok
}

func applyDialogueDefaults(config *DialogueConfig) {
	applyStepDefaults(config.Intro)
	for _, steps := range config.Performance {
		applyStepDefaults(steps)
	}
}

func applyStepDefaults(steps []StepConfig) {
	for i := range steps {
		step := &steps[i]
		switch step.Type {
		case StepTypeLine:
			if step.Speaker == "" {
				step.Speaker = SpeakerNPC
			}
		case StepTypeChoice:
			for j := range step.Options {
				applyStepDefaults(step.Options[j].Then)
			}
		case StepTypeTransition:
			if step.Delay == 0 {
				step.Delay = DefaultTransitionDelay
			}
		}
	}
}

// validateDialogueConfig 验证对话脚本
// 规则：每个脚本以唯一的 transition 结尾；选项 2~3 个且 ID 唯一；
// 所有脚本中恰好一个选项设置 familyMentioned
func validateDialogueConfig(config *DialogueConfig) error {
	familyPoints := 0

	count, err := validateScript("intro", config.Intro)
	if err != nil {
		return err
	}
	familyPoints += count

	for _, key := range []string{PerformancePerfect, PerformanceNearPerfect, PerformanceManyMistakes} {
		steps, ok := config.Performance[key]
		if !ok {
			return fmt.Errorf("%w: performance script %q is missing", ErrInvalidConfig, key)
		}
		count, err := validateScript(key, steps)
		if err != nil {
			return err
		}
		familyPoints += count
	}

	if familyPoints != 1 {
		return fmt.Errorf("%w: exactly one option must set familyMentioned, found %d", ErrInvalidConfig, familyPoints)
	}
	return nil
}

// validateScript 校验单个脚本，返回其中设置 familyMentioned 的选项数量
func validateScript(name string, steps []StepConfig) (int, error) {
	if len(steps) == 0 {
		return 0, fmt.Errorf("%w: script %q has no steps", ErrInvalidConfig, name)
	}

	familyPoints := 0
	for i, step := range steps {
		last := i == len(steps)-1
		switch step.Type {
		case StepTypeLine:
			if err := validateLine(step); err != nil {
				return 0, fmt.Errorf("script %q step %d: %w", name, i, err)
			}
		case StepTypeChoice:
			count, err := validateChoice(step)
			if err != nil {
				return 0, fmt.Errorf("script %q step %d: %w", name, i, err)
			}
			familyPoints += count
		case StepTypeTransition:
			if !last {
				return 0, fmt.Errorf("%w: script %q step %d: transition must be the last step", ErrInvalidConfig, name, i)
			}
			if step.Scene == "" {
				return 0, fmt.Errorf("%w: script %q step %d: transition scene is required", ErrInvalidConfig, name, i)
			}
			if step.Delay < 0 {
				return 0, fmt.Errorf("%w: script %q step %d: delay cannot be negative", ErrInvalidConfig, name, i)
			}
		default:
			return 0, fmt.Errorf("%w: script %q step %d: unknown step type %q", ErrInvalidConfig, name, i, step.Type)
		}

		if last && step.Type != StepTypeTransition {
			return 0, fmt.Errorf("%w: script %q must end with a transition", ErrInvalidConfig, name)
		}
	}
	return familyPoints, nil
}

func validateLine(step StepConfig) error {
	if step.Text == "" {
		return fmt.Errorf("%w: line text is required", ErrInvalidConfig)
	}
	if step.Speaker != SpeakerNPC && step.Speaker != SpeakerPlayer {
		return fmt.Errorf("%w: unknown speaker %q", ErrInvalidConfig, step.Speaker)
	}
	return nil
}

func validateChoice(step StepConfig) (int, error) {
	if n := len(step.Options); n < MinChoiceOptions || n > MaxChoiceOptions {
		return 0, fmt.Errorf("%w: choice needs %d-%d options, got %d",
			ErrInvalidConfig, MinChoiceOptions, MaxChoiceOptions, n)
	}
	if step.RevealInterval < 0 {
		return 0, fmt.Errorf("%w: revealInterval cannot be negative", ErrInvalidConfig)
	}

	familyPoints := 0
	ids := make(map[string]bool, len(step.Options))
	for j, option := range step.Options {
		if option.ID == "" || option.Text == "" {
			return 0, fmt.Errorf("%w: option %d: id and text are required", ErrInvalidConfig, j)
		}
		if ids[option.ID] {
			return 0, fmt.Errorf("%w: duplicate option id %q", ErrInvalidConfig, option.ID)
		}
		ids[option.ID] = true

		if option.SetsFamilyMentioned {
			familyPoints++
		}
		for k, then := range option.Then {
			if then.Type != StepTypeLine {
				return 0, fmt.Errorf("%w: option %q step %d: only lines may follow a choice", ErrInvalidConfig, option.ID, k)
			}
			if err := validateLine(then); err != nil {
				return 0, fmt.Errorf("option %q step %d: %w", option.ID, k, err)
			}
		}
	}
	return familyPoints, nil
}
