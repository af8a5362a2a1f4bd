// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/coffeeshop/pkg/game"
)

// KeyBinding 一个输入事件对应的按键
type KeyBinding struct {
	Event game.InputEvent
	Keys  []ebiten.Key
}

// DefaultKeyBindings 默认键位
// 顺序即优先级：同一帧按下多个键时只取第一个
var DefaultKeyBindings = []KeyBinding{
	{Event: game.InputConfirm, Keys: []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyE, ebiten.KeyNumpadEnter}},
	{Event: game.InputNavigateUp, Keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{Event: game.InputNavigateDown, Keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{Event: game.InputNavigateLeft, Keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{Event: game.InputNavigateRight, Keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

// ResolveInput 按键位表把本帧刚按下的键合并为一个输入事件
//
// 参数：
//   - bindings: 键位表
//   - justPressed: 判断某个键是否在本帧刚按下
func ResolveInput(bindings []KeyBinding, justPressed func(ebiten.Key) bool) game.InputEvent {
	for _, binding := range bindings {
		for _, key := range binding.Keys {
			if justPressed(key) {
				return binding.Event
			}
		}
	}
	return game.InputNone
}

// KeyboardInput 键盘输入源（边沿触发）
// 鼠标左键或触摸点击视为确认
type KeyboardInput struct {
	bindings []KeyBinding
}

// NewKeyboardInput 创建键盘输入源，bindings 为空时使用默认键位
func NewKeyboardInput(bindings []KeyBinding) *KeyboardInput {
	if len(bindings) == 0 {
		bindings = DefaultKeyBindings
	}
	return &KeyboardInput{bindings: bindings}
}

// Poll 采样本帧的输入事件
func (k *KeyboardInput) Poll() game.InputEvent {
	if event := ResolveInput(k.bindings, inpututil.IsKeyJustPressed); event != game.InputNone {
		return event
	}
	if IsJustTouchedOrClicked() {
		return game.InputConfirm
	}
	return game.InputNone
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
func IsJustTouchedOrClicked() bool {
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
