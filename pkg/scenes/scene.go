package scenes

import (
	"math/rand"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Quitter 可以请求退出游戏循环
type Quitter interface {
	RequestQuit()
}

// Dependencies 场景共享的依赖，由 App 创建后传给每个场景构造函数
// 剧情状态（GameState）不在其中，单独显式传入
type Dependencies struct {
	Loader   game.SceneLoader
	Quitter  Quitter
	Input    game.InputSource
	Cues     game.CuePlayer
	Settings *game.SettingsManager
	Menu     *config.MenuConfig
	Dialogue *config.DialogueConfig
	Rand     *rand.Rand
}

// typeSpeed 返回打字机每个字符的间隔（秒）
func (d Dependencies) typeSpeed() float64 {
	if d.Settings == nil {
		return game.DefaultTypeSpeed
	}
	return d.Settings.GetSettings().TypeSpeed
}

// cues 返回音效播放器，未设置时不播放
func (d Dependencies) cues() game.CuePlayer {
	if d.Cues == nil {
		return game.NopCuePlayer{}
	}
	return d.Cues
}

// transitionDelay 场景切换延迟
func (d Dependencies) transitionDelay() float64 {
	if d.Menu == nil {
		return config.DefaultTransitionDelay
	}
	return d.Menu.Rules.TransitionDelay
}

// poll 采样本帧输入
func (d Dependencies) poll() game.InputEvent {
	if d.Input == nil {
		return game.InputNone
	}
	return d.Input.Poll()
}
