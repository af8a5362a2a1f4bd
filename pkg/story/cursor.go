package story

import (
	"errors"
	"fmt"

	"github.com/gonewx/coffeeshop/pkg/config"
)

// NoChoice 推进非选项步骤时传入的选项下标
const NoChoice = -1

var (
	// ErrFinished 分支已经到达终点
	ErrFinished = errors.New("dialogue branch finished")
	// ErrInvalidChoice 选项下标越界，或在非选项步骤上传入了选项
	ErrInvalidChoice = errors.New("invalid choice")
)

// frame 一段正在播放的步骤序列
type frame struct {
	steps []Step
	index int
}

// Cursor 分支游标
// 只能向前推进，每个步骤最多被访问一次
type Cursor struct {
	frames     []frame
	visited    int
	lastChoice *Option
}

// NewCursor 创建指向分支第一个步骤的游标
func NewCursor(branch Branch) *Cursor {
	c := &Cursor{}
	if len(branch.Steps) > 0 {
		c.frames = []frame{{steps: branch.Steps}}
		c.visited = 1
	}
	return c
}

// Current 返回当前步骤
func (c *Cursor) Current() (Step, bool) {
	if len(c.frames) == 0 {
		return Step{}, false
	}
	top := c.frames[len(c.frames)-1]
	return top.steps[top.index], true
}

// Visited 返回已经访问过的步骤数量
func (c *Cursor) Visited() int {
	return c.visited
}

// LastChoice 返回最近一次选择的选项
func (c *Cursor) LastChoice() (Option, bool) {
	if c.lastChoice == nil {
		return Option{}, false
	}
	return *c.lastChoice, true
}

// Done 是否已到达终点（切换步骤或空分支）
func (c *Cursor) Done() bool {
	step, ok := c.Current()
	return !ok || step.Kind == StepTransition
}

// Advance 从当前步骤推进到下一步
//
// 参数：
//   - choiceIndex: 当前步骤为选项时，被选中的选项下标；否则传 NoChoice
//
// 返回：
//   - Step: 推进后的当前步骤
//   - error: ErrFinished（已在终点）或 ErrInvalidChoice
func (c *Cursor) Advance(choiceIndex int) (Step, error) {
	current, ok := c.Current()
	if !ok || current.Kind == StepTransition {
		return Step{}, ErrFinished
	}

	var branch []Step
	switch current.Kind {
	case StepChoice:
		if choiceIndex < 0 || choiceIndex >= len(current.Options) {
			return Step{}, fmt.Errorf("%w: %d of %d options", ErrInvalidChoice, choiceIndex, len(current.Options))
		}
		option := current.Options[choiceIndex]
		c.lastChoice = &option

		if current.EchoChoice {
			branch = append(branch, Step{Kind: StepLine, Speaker: config.SpeakerPlayer, Text: option.Text})
		}
		branch = append(branch, option.Then...)

	default:
		if choiceIndex != NoChoice {
			return Step{}, fmt.Errorf("%w: step %s does not take a choice", ErrInvalidChoice, current.Kind)
		}
	}

	// 先越过当前步骤，再进入选项分支
	c.frames[len(c.frames)-1].index++
	if len(branch) > 0 {
		c.frames = append(c.frames, frame{steps: branch})
	}
	c.popFinished()

	next, ok := c.Current()
	if !ok {
		return Step{}, ErrFinished
	}
	c.visited++
	return next, nil
}

// popFinished 弹出已经播放完的序列
func (c *Cursor) popFinished() {
	for len(c.frames) > 0 {
		top := c.frames[len(c.frames)-1]
		if top.index < len(top.steps) {
			return
		}
		c.frames = c.frames[:len(c.frames)-1]
	}
}
