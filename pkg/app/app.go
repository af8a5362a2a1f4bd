// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/scenes"
	"github.com/gonewx/coffeeshop/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "coffeeshop"

// sampleRate 音频上下文采样率
const sampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// StartScene 启动场景名称，为空则从主菜单开始
	StartScene string
	// Seed 订单随机种子，0 表示使用当前时间
	Seed int64
	// InitialState 初始剧情状态（调试用，例如直接测试某个对话分支）
	InitialState game.Snapshot
	// Headless 不创建音频上下文（无音频设备时使用）
	Headless bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	gameState       *game.GameState
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	menu, err := config.LoadMenuConfig(config.DefaultMenuConfigPath)
	if err != nil {
		return nil, fmt.Errorf("饮品菜单加载失败: %w", err)
	}
	dialogue, err := config.LoadDialogueConfig(config.DefaultDialogueConfigPath)
	if err != nil {
		return nil, fmt.Errorf("对话脚本加载失败: %w", err)
	}
	log.Printf("[Config] 加载 %d 种饮品, %d 个干扰原料", len(menu.Drinks), len(menu.Decoys))

	// 设置持久化：gdata 不可用时降级为内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}

	var audioContext *audio.Context
	if !cfg.Headless {
		audioContext = audio.NewContext(sampleRate)
	}
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	audioManager.PreloadSounds()
	log.Printf("[App] AudioManager initialized")

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] Order seed: %d", seed)

	gameState := game.NewGameStateFrom(cfg.InitialState)
	sceneManager := game.NewSceneManager()

	deps := scenes.Dependencies{
		Loader:   sceneManager,
		Quitter:  sceneManager,
		Input:    utils.NewKeyboardInput(nil),
		Cues:     audioManager,
		Settings: settingsManager,
		Menu:     menu,
		Dialogue: dialogue,
		Rand:     rand.New(rand.NewSource(seed)),
	}
	sceneManager.SetSceneFactory(NewSceneFactory(gameState, deps))

	startScene := cfg.StartScene
	if startScene == "" {
		startScene = game.SceneMainMenu
	}
	sceneManager.LoadScene(startScene)
	if sceneManager.GetCurrentScene() == nil {
		return nil, fmt.Errorf("未知场景: %s", startScene)
	}

	ebiten.SetFullscreen(settingsManager.GetSettings().Fullscreen)

	return &App{
		sceneManager:    sceneManager,
		gameState:       gameState,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		verbose:         cfg.Verbose,
	}, nil
}

// NewSceneFactory 创建场景工厂，所有场景共享同一个 GameState
func NewSceneFactory(gs *game.GameState, deps scenes.Dependencies) game.SceneFactory {
	return func(name string) game.Scene {
		switch name {
		case game.SceneMainMenu:
			return scenes.NewMainMenuScene(gs, deps)
		case game.SceneIntro:
			return scenes.NewIntroScene(gs, deps)
		case game.SceneHelp:
			return scenes.NewHelpScene(gs, deps)
		case game.SceneCoffeeShop:
			return scenes.NewCoffeeShopScene(gs, deps)
		case game.SceneMakingOrder:
			return scenes.NewMakingOrderScene(gs, deps)
		case game.SceneAIDialogue:
			return scenes.NewAIDialogueScene(gs, deps)
		case game.SceneFail:
			return scenes.NewFailScene(gs, deps)
		case game.SceneWin:
			return scenes.NewWinScene(gs, deps)
		default:
			return nil
		}
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.sceneManager.QuitRequested() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.settingsManager.SetFullscreen(fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
	}
	log.Printf("[App] Fullscreen: %v", fullscreen)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// GameState 返回剧情状态
func (a *App) GameState() *game.GameState {
	return a.gameState
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// IsTermination 判断 RunGame 的返回值是否为正常退出
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}
