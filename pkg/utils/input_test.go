package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/game"
)

var _ game.InputSource = (*KeyboardInput)(nil)

func pressed(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(key ebiten.Key) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	}
}

// TestResolveInput 测试按键到输入事件的映射
func TestResolveInput(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want game.InputEvent
	}{
		{name: "无按键", keys: nil, want: game.InputNone},
		{name: "回车确认", keys: []ebiten.Key{ebiten.KeyEnter}, want: game.InputConfirm},
		{name: "E键确认", keys: []ebiten.Key{ebiten.KeyE}, want: game.InputConfirm},
		{name: "空格确认", keys: []ebiten.Key{ebiten.KeySpace}, want: game.InputConfirm},
		{name: "上箭头", keys: []ebiten.Key{ebiten.KeyArrowUp}, want: game.InputNavigateUp},
		{name: "S键向下", keys: []ebiten.Key{ebiten.KeyS}, want: game.InputNavigateDown},
		{name: "左箭头", keys: []ebiten.Key{ebiten.KeyArrowLeft}, want: game.InputNavigateLeft},
		{name: "D键向右", keys: []ebiten.Key{ebiten.KeyD}, want: game.InputNavigateRight},
		{name: "同帧多键只取优先级最高的", keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyEnter}, want: game.InputConfirm},
		{name: "未绑定的键", keys: []ebiten.Key{ebiten.KeyQ}, want: game.InputNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveInput(DefaultKeyBindings, pressed(tt.keys...)); got != tt.want {
				t.Errorf("ResolveInput() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestNewKeyboardInputDefaults 空键位表时使用默认键位
func TestNewKeyboardInputDefaults(t *testing.T) {
	input := NewKeyboardInput(nil)
	if len(input.bindings) != len(DefaultKeyBindings) {
		t.Errorf("bindings = %d, want %d", len(input.bindings), len(DefaultKeyBindings))
	}

	custom := []KeyBinding{{Event: game.InputConfirm, Keys: []ebiten.Key{ebiten.KeyZ}}}
	if got := ResolveInput(NewKeyboardInput(custom).bindings, pressed(ebiten.KeyEnter)); got != game.InputNone {
		t.Errorf("custom bindings should replace defaults, got %s", got)
	}
}
