package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 根据场景名称创建场景，避免 game 包与 scenes 包循环依赖
// 返回 nil 表示未知场景
type SceneFactory func(name string) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
// SceneManager 同时实现 SceneLoader，供场景在剧情结束时请求切换。
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
	quit         bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or LoadScene to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称（通过 SwitchTo 直接切换时为空）
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// LoadScene 加载指定名称的场景（实现 SceneLoader）
// name: 场景名称，如 "MakingOrder", "AIDialogue"
func (sm *SceneManager) LoadScene(name string) {
	log.Printf("[SceneManager] 加载场景: %s", name)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	// 使用工厂函数创建新场景
	newScene := sm.sceneFactory(name)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", name)
		return
	}

	sm.SwitchTo(newScene)
	sm.currentName = name
	log.Printf("[SceneManager] 成功切换到场景: %s", name)
}

// RequestQuit 请求退出游戏（主菜单 Quit 选项）
// 实际退出由 App.Update 返回 ebiten.Termination 完成
func (sm *SceneManager) RequestQuit() {
	log.Printf("[SceneManager] Quit requested")
	sm.quit = true
}

// QuitRequested 返回是否已请求退出
func (sm *SceneManager) QuitRequested() bool {
	return sm.quit
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
