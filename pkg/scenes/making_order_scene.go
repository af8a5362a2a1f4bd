package scenes

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/systems"
)

// MakingOrderScene 制作饮品场景
//
// 每帧顺序：
//  1. 订单倒计时（不受台词显示影响）
//  2. 订单展示延迟 / 下一张订单
//  3. 顾客台词逐字显示
//  4. 输入：方向键把对应通道的原料提交给订单（台词显示期间忽略）
//
// 倒计时归零后停止本轮并延迟切换到 Fail；本轮完成后延迟切换到下一个场景。
type MakingOrderScene struct {
	gameState *game.GameState
	deps      Dependencies
	board     *TextBoard

	entityManager *ecs.EntityManager
	timers        *systems.TimerSystem
	orders        *systems.OrderSystem
	orderTimer    *systems.OrderTimerSystem
	typewriter    *systems.TypewriterSystem
	transitions   *systems.TransitionSystem

	// lastSession 用于发现新订单并播放顾客台词
	lastSession *components.OrderSessionComponent
	greeting    ecs.EntityID

	// halted 配置错误，场景核心未启动
	halted bool
	// finished 本轮已结束（完成或失败），等待切换场景
	finished bool
}

// NewMakingOrderScene 创建制作饮品场景
// 饮品池或通道布局不可用时记录错误并停止场景核心
func NewMakingOrderScene(gs *game.GameState, deps Dependencies) *MakingOrderScene {
	scene := &MakingOrderScene{
		gameState:     gs,
		deps:          deps,
		board:         NewTextBoard(),
		entityManager: ecs.NewEntityManager(),
	}

	if deps.Menu == nil {
		scene.halt(errors.New("drink menu is not loaded"))
		return scene
	}

	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cues := deps.cues()
	scene.timers = systems.NewTimerSystem(scene.entityManager)
	scene.orders = systems.NewOrderSystem(scene.entityManager, gs, deps.Menu, scene.timers, scene.board, cues, rng)
	scene.orderTimer = systems.NewOrderTimerSystem(scene.entityManager, scene.board, cues, deps.Menu.Rules.LowTimeThreshold)
	scene.typewriter = systems.NewTypewriterSystem(scene.entityManager, scene.board, cues, deps.typeSpeed())
	scene.transitions = systems.NewTransitionSystem(scene.entityManager, deps.Loader)

	scene.board.DisplayText(game.TargetPrompt, "Arrow keys add the ingredient on that station")

	if err := scene.orders.BeginRound(); err != nil {
		scene.halt(err)
		return scene
	}
	scene.greetNewOrder()
	return scene
}

// Update 推进本帧
func (s *MakingOrderScene) Update(deltaTime float64) {
	input := s.deps.poll()
	if s.halted {
		return
	}
	if s.finished {
		s.transitions.Update(deltaTime)
		return
	}

	if s.orderTimer.Update(deltaTime) == systems.TimerEventFailed {
		s.fail()
		return
	}

	s.timers.Update(deltaTime)
	if err := s.orders.Update(deltaTime); err != nil {
		s.halt(err)
		return
	}
	s.greetNewOrder()

	s.typewriter.Update(deltaTime)
	if s.typewriter.IsRevealing() {
		return
	}

	channel, ok := directionChannel(input)
	if !ok {
		return
	}
	result, err := s.orders.Submit(channel)
	if err != nil {
		// 订单之间的展示延迟内没有可提交的订单
		return
	}
	if result.SessionComplete {
		s.finished = true
		s.transitions.Schedule(result.NextScene, s.deps.transitionDelay())
	}
}

// Draw 绘制场景
func (s *MakingOrderScene) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
}

// Board 返回场景的文本面板
func (s *MakingOrderScene) Board() *TextBoard {
	return s.board
}

// Halted 场景是否因配置错误而停止
func (s *MakingOrderScene) Halted() bool {
	return s.halted
}

// Finished 本轮是否已结束
func (s *MakingOrderScene) Finished() bool {
	return s.finished
}

// Session 返回进行中的订单
func (s *MakingOrderScene) Session() (*components.OrderSessionComponent, bool) {
	if s.orders == nil {
		return nil, false
	}
	return s.orders.Session()
}

// IsRevealing 顾客台词是否正在逐字显示
func (s *MakingOrderScene) IsRevealing() bool {
	return s.typewriter != nil && s.typewriter.IsRevealing()
}

func (s *MakingOrderScene) fail() {
	s.finished = true
	s.orders.Stop()
	s.typewriter.Finish(s.greeting)
	log.Printf("[MakingOrderScene] Order failed, state=%s", s.gameState)
	s.transitions.Schedule(game.SceneFail, s.deps.transitionDelay())
}

// greetNewOrder 新订单出现时，顾客逐字说出饮品名称
func (s *MakingOrderScene) greetNewOrder() {
	session, ok := s.orders.Session()
	if !ok || session == s.lastSession {
		return
	}
	s.lastSession = session
	s.greeting = s.typewriter.Start(game.TargetNPC, "One "+session.DrinkName+", please!", nil)
}

func (s *MakingOrderScene) halt(err error) {
	log.Printf("[MakingOrderScene] Configuration error: %v", err)
	s.halted = true
	s.board.DisplayText(game.TargetError, "Configuration error: "+err.Error())
}

// directionChannel 方向键到通道的映射：上 0、右 1、下 2、左 3
func directionChannel(input game.InputEvent) (int, bool) {
	switch input {
	case game.InputNavigateUp:
		return 0, true
	case game.InputNavigateRight:
		return 1, true
	case game.InputNavigateDown:
		return 2, true
	case game.InputNavigateLeft:
		return 3, true
	default:
		return 0, false
	}
}
