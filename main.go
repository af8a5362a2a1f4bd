package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/coffeeshop/pkg/app"
	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/embedded"
	"github.com/gonewx/coffeeshop/pkg/game"
)

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	scene    = flag.String("scene", "", "启动场景（MainMenu, Intro, CoffeeShop, MakingOrder, AIDialogue, ...）")
	seed     = flag.Int64("seed", 0, "订单随机种子（0 表示使用当前时间）")
	mistakes = flag.Int("mistakes", 0, "初始失误次数（调试对话分支）")
	family   = flag.Bool("family", false, "初始时已提及家人（调试对话分支）")
	second   = flag.Bool("second", false, "从第二轮订单开始")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	initialState := game.Snapshot{
		FamilyMentioned: *family,
		MistakeCount:    *mistakes,
	}
	if *second {
		initialState.DrinkScenario = game.ScenarioSecond
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		StartScene:   *scene,
		Seed:         *seed,
		InitialState: initialState,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "游戏初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Finn & Gita's Coffee Shop")

	if err := ebiten.RunGame(gameApp); err != nil && !app.IsTermination(err) {
		log.Fatal(err)
	}
}
