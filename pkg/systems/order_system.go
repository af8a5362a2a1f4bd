package systems

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/game"
)

// 订单反馈文本
const (
	FeedbackCorrect          = "Correct!"
	FeedbackAlreadySatisfied = "Already added!"
	FeedbackNotRequired      = "Wrong ingredient! Try again."
	FeedbackOrderComplete    = "Order Completed!"
	FeedbackTimeUp           = "Time's up!"
)

// nextOrderTimer 下一张订单展示延迟的计时器名称
const nextOrderTimer = "next_order"

// SubmitResult 一次提交的完整结果
type SubmitResult struct {
	Outcome    SubmitOutcome
	Ingredient string

	// OrderComplete 本次提交完成了订单
	OrderComplete bool

	// SessionComplete 本轮已完成 drinksRequired 杯
	SessionComplete bool

	// FinalCompletion 第二轮完成（游戏通关），不再重置计数
	FinalCompletion bool

	// NextScene SessionComplete 时应切换到的场景
	NextScene string
}

// OrderSystem 订单匹配引擎
//
// 职责：
//   - 按当前剧情阶段选择饮品池，生成订单并显示通道原料
//   - 处理玩家提交，记录失误并更新 GameState 中的完成数量
//   - 订单完成后：达到本轮目标则结束本轮，否则延迟后生成下一张订单
//
// 倒计时由 OrderTimerSystem 负责。
type OrderSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	menu          *config.MenuConfig
	timers        *TimerSystem
	presenter     game.Presenter
	cues          game.CuePlayer
	rng           *rand.Rand

	pool          []config.DrinkConfig
	sessionEntity ecs.EntityID
	roundOver     bool
}

// NewOrderSystem 创建订单系统
//
// 参数：
//   - rng: 随机数源，测试中传入固定种子以获得确定结果
func NewOrderSystem(
	em *ecs.EntityManager,
	gs *game.GameState,
	menu *config.MenuConfig,
	timers *TimerSystem,
	presenter game.Presenter,
	cues game.CuePlayer,
	rng *rand.Rand,
) *OrderSystem {
	return &OrderSystem{
		entityManager: em,
		gameState:     gs,
		menu:          menu,
		timers:        timers,
		presenter:     presenter,
		cues:          cues,
		rng:           rng,
	}
}

// BeginRound 进入制作场景时调用
// 按当前剧情阶段设置 drinksRequired，校验饮品池并生成第一张订单
func (s *OrderSystem) BeginRound() error {
	scenario := int(s.gameState.DrinkScenario())

	pool, err := s.menu.DrinkPool(scenario)
	if err != nil {
		return err
	}
	if err := config.ValidateDrinkPool(pool, s.menu.Decoys, s.menu.Rules.ChannelCount); err != nil {
		return err
	}

	s.pool = pool
	s.roundOver = false
	s.gameState.BeginOrderRound(s.menu.DrinksRequired(scenario))
	log.Printf("[OrderSystem] Round begins: scenario=%s, pool=%d drinks, state=%s",
		s.gameState.DrinkScenario(), len(pool), s.gameState)

	return s.StartOrder()
}

// StartOrder 生成一张新订单并显示
func (s *OrderSystem) StartOrder() error {
	s.destroySession()

	session, err := NewOrderSession(s.pool, s.menu.Decoys, s.menu.Rules.ChannelCount, s.menu.Rules.OrderTimeLimit, s.rng)
	if err != nil {
		return fmt.Errorf("failed to start order: %w", err)
	}

	s.sessionEntity = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.sessionEntity, session)

	s.presenter.DisplayText(game.TargetOrder, "Order: "+session.DrinkName)
	s.presenter.DisplayText(game.TargetFeedback, "")
	for i, ingredient := range session.Channels {
		s.presenter.DisplayText(game.ChannelTarget(i), ingredient)
	}
	s.displayProgress()

	log.Printf("[OrderSystem] New order: %s %v, channels=%v", session.DrinkName, session.RequiredIngredients, session.Channels)
	return nil
}

// Submit 提交通道 channel 上的原料
func (s *OrderSystem) Submit(channel int) (SubmitResult, error) {
	session, ok := s.Session()
	if !ok || session.Completed || session.Failed {
		return SubmitResult{}, ErrNoActiveOrder
	}
	if channel < 0 || channel >= len(session.Channels) {
		return SubmitResult{}, fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}

	ingredient := session.Channels[channel]
	result := SubmitResult{
		Outcome:    ApplySubmission(session, ingredient),
		Ingredient: ingredient,
	}

	switch result.Outcome {
	case OutcomeNotRequired:
		mistakes := s.gameState.RecordMistake()
		s.presenter.DisplayText(game.TargetFeedback, FeedbackNotRequired)
		s.cues.PlayCue(game.CueWrong)
		log.Printf("[OrderSystem] %s is not required (mistakes=%d)", ingredient, mistakes)

	case OutcomeAlreadySatisfied:
		mistakes := s.gameState.RecordMistake()
		s.presenter.DisplayText(game.TargetFeedback, FeedbackAlreadySatisfied)
		s.cues.PlayCue(game.CueWrong)
		log.Printf("[OrderSystem] %s already added (mistakes=%d)", ingredient, mistakes)

	case OutcomeCorrect:
		if !session.Completed {
			s.presenter.DisplayText(game.TargetFeedback, FeedbackCorrect)
			s.cues.PlayCue(game.CueCorrect)
			return result, nil
		}
		s.completeOrder(&result)
	}

	return result, nil
}

// completeOrder 处理 OrderComplete
func (s *OrderSystem) completeOrder(result *SubmitResult) {
	result.OrderComplete = true
	s.destroySession()

	served, sessionComplete := s.gameState.RecordServedDrink()
	s.presenter.DisplayText(game.TargetFeedback, FeedbackOrderComplete)
	s.cues.PlayCue(game.CueOrderComplete)
	s.displayProgress()
	log.Printf("[OrderSystem] Order completed (%d/%d)", served, s.gameState.DrinksRequired())

	if !sessionComplete {
		s.timers.Start(nextOrderTimer, s.menu.Rules.NextOrderDelay)
		return
	}

	result.SessionComplete = true
	s.roundOver = true

	if s.gameState.DrinkScenario() == game.ScenarioFirst {
		s.gameState.AdvanceToSecondScenario(s.menu.DrinksRequired(int(game.ScenarioSecond)))
		result.NextScene = game.SceneAIDialogue
	} else {
		result.FinalCompletion = true
		result.NextScene = game.SceneWin
	}
	log.Printf("[OrderSystem] Session complete, next scene %s, state=%s", result.NextScene, s.gameState)
}

// Update 到达展示延迟后生成下一张订单
func (s *OrderSystem) Update(dt float64) error {
	if s.roundOver {
		return nil
	}
	if s.timers.Consume(nextOrderTimer) {
		return s.StartOrder()
	}
	return nil
}

// Session 返回进行中的订单
func (s *OrderSystem) Session() (*components.OrderSessionComponent, bool) {
	if s.sessionEntity == 0 || s.entityManager.IsPendingDestroy(s.sessionEntity) {
		return nil, false
	}
	return ecs.GetComponent[*components.OrderSessionComponent](s.entityManager, s.sessionEntity)
}

// Stop 结束本轮（超时失败时调用），取消待生成的订单
func (s *OrderSystem) Stop() {
	s.roundOver = true
	s.timers.Cancel(nextOrderTimer)
	s.destroySession()
}

func (s *OrderSystem) destroySession() {
	if s.sessionEntity == 0 {
		return
	}
	s.entityManager.DestroyEntity(s.sessionEntity)
	s.entityManager.RemoveMarkedEntities()
	s.sessionEntity = 0
}

func (s *OrderSystem) displayProgress() {
	s.presenter.DisplayText(game.TargetProgress,
		fmt.Sprintf("Served: %d/%d", s.gameState.DrinksServedCorrectly(), s.gameState.DrinksRequired()))
}
