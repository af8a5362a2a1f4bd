// verify_orders 无界面的订单模拟
//
// 用固定种子运行完整的两轮订单，模拟一名玩家（perfect 只提交需要的原料，
// random 随机按方向键），打印每次提交的结果和最终状态。
//
// 用法：
//
//	go run ./cmd/verify_orders -player perfect -seed 42
//	go run ./cmd/verify_orders -player random -reaction 0.4 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/embedded"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/story"
	"github.com/gonewx/coffeeshop/pkg/systems"
)

const tickDelta = 1.0 / 60

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	seed     = flag.Int64("seed", 1, "订单与模拟玩家的随机种子")
	player   = flag.String("player", "perfect", "模拟玩家：perfect 或 random")
	reaction = flag.Float64("reaction", 0.5, "模拟玩家每次提交的间隔（秒）")
	slips    = flag.Int("slips", 0, "perfect 玩家在第一轮故意犯错的次数")
	root     = flag.String("root", ".", "项目根目录（包含 data/）")
)

// consolePresenter 把文本输出到终端
type consolePresenter struct{}

func (consolePresenter) DisplayText(target game.TextTarget, content string) {
	switch target {
	case game.TargetTimer, game.TargetProgress:
		return
	}
	if content != "" {
		fmt.Printf("    %-10s %s\n", target, content)
	}
}

func (consolePresenter) SetHighlight(int) {}

// roundResult 一轮模拟的结果
type roundResult struct {
	nextScene string
	failed    bool
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	if *player != "perfect" && *player != "random" {
		fmt.Fprintf(os.Stderr, "未知的模拟玩家: %s\n", *player)
		os.Exit(2)
	}

	embedded.Init(os.DirFS(*root))
	menu, err := config.LoadMenuConfig(config.DefaultMenuConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "饮品菜单加载失败: %v\n", err)
		os.Exit(1)
	}
	dialogue, err := config.LoadDialogueConfig(config.DefaultDialogueConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "对话脚本加载失败: %v\n", err)
		os.Exit(1)
	}

	gs := game.NewGameState()
	rng := rand.New(rand.NewSource(*seed))
	slipsLeft := *slips

	for attempt := 1; attempt <= 20; attempt++ {
		fmt.Printf("== %s round, attempt %d ==\n", gs.DrinkScenario(), attempt)
		result, err := simulateRound(gs, menu, rng, &slipsLeft)
		if err != nil {
			fmt.Fprintf(os.Stderr, "模拟失败: %v\n", err)
			os.Exit(1)
		}

		switch {
		case result.failed:
			gs.ResetServed()
			fmt.Printf("-- failed, state=%s\n", gs)

		case result.nextScene == game.SceneAIDialogue:
			branch, err := story.SelectBranch(dialogue, gs.MistakeCount(), gs.FamilyMentioned())
			if err != nil {
				fmt.Fprintf(os.Stderr, "分支选择失败: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("-- first round complete, dialogue branch %s, state=%s\n", branch.Name, gs)

		case result.nextScene == game.SceneWin:
			fmt.Printf("-- all orders served, state=%s\n", gs)
			return
		}
	}
	fmt.Println("-- gave up after 20 attempts")
	os.Exit(1)
}

// simulateRound 运行一轮订单直到本轮完成或超时失败
func simulateRound(gs *game.GameState, menu *config.MenuConfig, rng *rand.Rand, slipsLeft *int) (roundResult, error) {
	em := ecs.NewEntityManager()
	presenter := consolePresenter{}
	cues := game.NopCuePlayer{}
	timers := systems.NewTimerSystem(em)
	orders := systems.NewOrderSystem(em, gs, menu, timers, presenter, cues, rng)
	orderTimer := systems.NewOrderTimerSystem(em, presenter, cues, menu.Rules.LowTimeThreshold)

	if err := orders.BeginRound(); err != nil {
		return roundResult{}, err
	}

	sinceAction := 0.0
	for tick := 0; tick < 60*60*10; tick++ {
		if orderTimer.Update(tickDelta) == systems.TimerEventFailed {
			orders.Stop()
			return roundResult{failed: true}, nil
		}
		timers.Update(tickDelta)
		if err := orders.Update(tickDelta); err != nil {
			return roundResult{}, err
		}

		sinceAction += tickDelta
		if sinceAction < *reaction {
			continue
		}
		session, ok := orders.Session()
		if !ok {
			continue
		}
		sinceAction = 0

		channel := chooseChannel(session.Channels, session.RemainingCounts, rng, gs.DrinkScenario(), slipsLeft)
		result, err := orders.Submit(channel)
		if err != nil {
			return roundResult{}, err
		}
		fmt.Printf("  submit %-10s -> %s (mistakes=%d)\n", result.Ingredient, result.Outcome, gs.MistakeCount())
		if result.SessionComplete {
			return roundResult{nextScene: result.NextScene}, nil
		}
	}
	return roundResult{}, fmt.Errorf("round did not finish")
}

// chooseChannel 模拟玩家选择通道
func chooseChannel(channels []string, remaining map[string]int, rng *rand.Rand, scenario game.DrinkScenario, slipsLeft *int) int {
	if *player == "random" {
		return rng.Intn(len(channels))
	}

	wantSlip := *slipsLeft > 0 && scenario == game.ScenarioFirst
	for i, name := range channels {
		count, required := remaining[name]
		if wantSlip && (!required || count == 0) {
			*slipsLeft--
			return i
		}
		if !wantSlip && count > 0 {
			return i
		}
	}
	return 0
}
