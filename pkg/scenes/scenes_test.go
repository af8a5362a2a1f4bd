package scenes

import (
	"strings"
	"testing"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/systems"
)

// TestMainMenuNavigation 测试主菜单各选项
func TestMainMenuNavigation(t *testing.T) {
	tests := []struct {
		name       string
		inputs     []game.InputEvent
		wantLoaded []string
		wantQuit   bool
	}{
		{name: "开始游戏", inputs: []game.InputEvent{game.InputConfirm}, wantLoaded: []string{game.SceneIntro}},
		{name: "帮助", inputs: []game.InputEvent{game.InputNavigateDown, game.InputConfirm}, wantLoaded: []string{game.SceneHelp}},
		{name: "向上循环到退出", inputs: []game.InputEvent{game.InputNavigateUp, game.InputConfirm}, wantQuit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSceneFixture(t)
			scene := NewMainMenuScene(game.NewGameState(), f.deps)
			f.input.push(tt.inputs...)

			run(scene, 0.5)
			if len(f.loader.loaded) != 0 {
				t.Fatalf("scene loaded before the menu delay: %v", f.loader.loaded)
			}
			run(scene, 1.0)

			if strings.Join(f.loader.loaded, ",") != strings.Join(tt.wantLoaded, ",") {
				t.Errorf("loaded = %v, want %v", f.loader.loaded, tt.wantLoaded)
			}
			if f.quitter.quit != tt.wantQuit {
				t.Errorf("quit = %v, want %v", f.quitter.quit, tt.wantQuit)
			}
		})
	}
}

// TestMainMenuSoundToggle 声音选项切换设置并刷新文本
func TestMainMenuSoundToggle(t *testing.T) {
	f := newSceneFixture(t)
	scene := NewMainMenuScene(game.NewGameState(), f.deps)

	if got := scene.Board().Text(game.OptionTarget(menuItemSound)); got != "Sound: On" {
		t.Fatalf("sound label = %q, want %q", got, "Sound: On")
	}

	f.input.push(game.InputNavigateDown, game.InputNavigateDown, game.InputConfirm)
	run(scene, 0.1)

	if f.deps.Settings.GetSettings().SoundEnabled {
		t.Error("sound should be disabled")
	}
	if got := scene.Board().Text(game.OptionTarget(menuItemSound)); got != "Sound: Off" {
		t.Errorf("sound label = %q, want %q", got, "Sound: Off")
	}
	if scene.Board().Highlight() != menuItemSound {
		t.Errorf("Highlight() = %d, want %d", scene.Board().Highlight(), menuItemSound)
	}
	if len(f.loader.loaded) != 0 {
		t.Errorf("sound toggle should not change scene: %v", f.loader.loaded)
	}
}

// runUntilState 推进对话场景直到状态变为 want
func runUntilState(t *testing.T, scene *DialogueScene, want systems.DialogueState) {
	t.Helper()
	for i := 0; i < 60*30; i++ {
		if scene.State() == want {
			return
		}
		scene.Update(1.0 / 60)
	}
	t.Fatalf("state = %s, never reached %s", scene.State(), want)
}

// TestIntroFamilyChoice 开场选择提及家人的选项后 familyMentioned 为真，随后进入咖啡店
func TestIntroFamilyChoice(t *testing.T) {
	f := newSceneFixture(t)
	gs := game.NewGameState()
	scene := NewIntroScene(gs, f.deps)

	runUntilState(t, scene, systems.DialogueAwaitingChoice)
	if got := scene.Board().Text(game.TargetNPC); got != "Hey, I'm Gita!" {
		t.Errorf("npc text = %q", got)
	}

	// 选项逐个出现期间的确认被忽略
	f.input.push(game.InputConfirm)
	run(scene, 0.1)
	if scene.State() != systems.DialogueAwaitingChoice {
		t.Fatalf("confirm accepted before all options appeared, state=%s", scene.State())
	}

	run(scene, 2)
	f.input.push(game.InputNavigateDown, game.InputConfirm)
	run(scene, 0.1)

	if !gs.FamilyMentioned() {
		t.Fatal("family option should set familyMentioned")
	}

	runUntilState(t, scene, systems.DialogueTransitioning)
	if !strings.Contains(scene.Board().Text(game.TargetPlayer), "My family") {
		t.Errorf("player line = %q, want the chosen option", scene.Board().Text(game.TargetPlayer))
	}

	run(scene, 2.5)
	if len(f.loader.loaded) != 1 || f.loader.loaded[0] != game.SceneCoffeeShop {
		t.Errorf("loaded = %v, want [%s]", f.loader.loaded, game.SceneCoffeeShop)
	}
	if gs.DrinkScenario() != game.ScenarioFirst {
		t.Errorf("intro must not change the scenario, got %s", gs.DrinkScenario())
	}
}

// TestAIDialogueManyMistakes 失误较多时播放对应分支并进入第二轮
func TestAIDialogueManyMistakes(t *testing.T) {
	f := newSceneFixture(t)
	gs := game.NewGameStateFrom(game.Snapshot{MistakeCount: 3})
	scene := NewAIDialogueScene(gs, f.deps)

	runUntilState(t, scene, systems.DialogueAwaitingChoice)
	if !strings.HasPrefix(scene.Board().Text(game.TargetNPC), "Haha, I noticed") {
		t.Errorf("npc text = %q", scene.Board().Text(game.TargetNPC))
	}

	f.input.push(game.InputConfirm)
	run(scene, 0.1)
	runUntilState(t, scene, systems.DialogueTransitioning)

	if got := scene.Board().Text(game.TargetPlayer); got != "Right behind you!" {
		t.Errorf("player text = %q, want %q", got, "Right behind you!")
	}
	if gs.DrinkScenario() != game.ScenarioSecond {
		t.Errorf("DrinkScenario() = %s, want Second", gs.DrinkScenario())
	}

	run(scene, 2.5)
	if len(f.loader.loaded) != 1 || f.loader.loaded[0] != game.SceneMakingOrder {
		t.Errorf("loaded = %v, want [%s]", f.loader.loaded, game.SceneMakingOrder)
	}
}

// TestDialogueSceneMissingConfig 缺少对话配置时场景停止
func TestDialogueSceneMissingConfig(t *testing.T) {
	f := newSceneFixture(t)
	f.deps.Dialogue = nil

	scene := NewAIDialogueScene(game.NewGameState(), f.deps)
	if !scene.Halted() {
		t.Fatal("scene should halt without dialogue config")
	}
	if scene.Board().Text(game.TargetError) == "" {
		t.Error("configuration error should be displayed")
	}
	run(scene, 1)
}

// directionFor 通道对应的方向键
func directionFor(channel int) game.InputEvent {
	return []game.InputEvent{
		game.InputNavigateUp,
		game.InputNavigateRight,
		game.InputNavigateDown,
		game.InputNavigateLeft,
	}[channel]
}

// TestMakingOrderInputGatedWhileRevealing 顾客台词显示期间忽略提交
func TestMakingOrderInputGatedWhileRevealing(t *testing.T) {
	f := newSceneFixture(t)
	gs := game.NewGameState()
	scene := NewMakingOrderScene(gs, f.deps)

	if !scene.IsRevealing() {
		t.Fatal("new order should be announced")
	}
	session, ok := scene.Session()
	if !ok {
		t.Fatal("no active order")
	}

	for channel := 0; channel < 4; channel++ {
		f.input.push(directionFor(channel))
		scene.Update(1.0 / 60)
	}
	if gs.MistakeCount() != 0 || len(session.Collected) != 0 {
		t.Errorf("input handled while revealing: mistakes=%d, collected=%v", gs.MistakeCount(), session.Collected)
	}

	// 倒计时不因台词暂停
	if session.TimeRemaining >= 8 {
		t.Errorf("TimeRemaining = %v, countdown should keep running", session.TimeRemaining)
	}

	run(scene, 2)
	if scene.IsRevealing() {
		t.Fatal("announcement should be finished")
	}

	for channel, name := range session.Channels {
		if _, required := session.RemainingCounts[name]; !required {
			f.input.push(directionFor(channel))
			scene.Update(1.0 / 60)
			break
		}
	}
	if gs.MistakeCount() != 1 {
		t.Errorf("MistakeCount() = %d, want 1", gs.MistakeCount())
	}
	if scene.Board().Text(game.TargetFeedback) != systems.FeedbackNotRequired {
		t.Errorf("feedback = %q", scene.Board().Text(game.TargetFeedback))
	}
}

// TestMakingOrderSessionComplete 完成本轮最后一杯后延迟进入对话场景
func TestMakingOrderSessionComplete(t *testing.T) {
	f := newSceneFixture(t)
	gs := game.NewGameStateFrom(game.Snapshot{DrinksRequired: 5, DrinksServedCorrectly: 4})
	scene := NewMakingOrderScene(gs, f.deps)
	run(scene, 2)

	session, ok := scene.Session()
	if !ok {
		t.Fatal("no active order")
	}
	required := append([]string(nil), session.RequiredIngredients...)
	channels := append([]string(nil), session.Channels...)

	for _, ingredient := range required {
		for channel, name := range channels {
			if name == ingredient {
				f.input.push(directionFor(channel))
				scene.Update(1.0 / 60)
				break
			}
		}
	}

	if !scene.Finished() {
		t.Fatalf("round should be finished, state=%s", gs)
	}
	if gs.DrinkScenario() != game.ScenarioSecond || gs.DrinksServedCorrectly() != 0 || gs.DrinksRequired() != 8 {
		t.Errorf("state after first round = %s", gs)
	}
	if len(f.loader.loaded) != 0 {
		t.Fatalf("scene loaded before the delay: %v", f.loader.loaded)
	}

	run(scene, 2.5)
	if len(f.loader.loaded) != 1 || f.loader.loaded[0] != game.SceneAIDialogue {
		t.Errorf("loaded = %v, want [%s]", f.loader.loaded, game.SceneAIDialogue)
	}
}

// TestMakingOrderTimeout 倒计时归零后延迟进入失败场景
func TestMakingOrderTimeout(t *testing.T) {
	f := newSceneFixture(t)
	gs := game.NewGameState()
	scene := NewMakingOrderScene(gs, f.deps)

	run(scene, 9)
	if !scene.Finished() {
		t.Fatal("order should have failed")
	}
	if len(f.loader.loaded) != 0 {
		t.Fatalf("scene loaded before the delay: %v", f.loader.loaded)
	}

	lowTime, fail := 0, 0
	for _, cue := range f.cues.played {
		switch cue {
		case game.CueLowTime:
			lowTime++
		case game.CueFail:
			fail++
		}
	}
	if lowTime != 1 || fail != 1 {
		t.Errorf("cues: lowTime=%d fail=%d, want 1 and 1", lowTime, fail)
	}

	// 失败后输入无效
	f.input.push(game.InputNavigateUp)
	run(scene, 1.5)
	if gs.MistakeCount() != 0 {
		t.Errorf("input handled after failure: mistakes=%d", gs.MistakeCount())
	}
	if len(f.loader.loaded) != 1 || f.loader.loaded[0] != game.SceneFail {
		t.Errorf("loaded = %v, want [%s]", f.loader.loaded, game.SceneFail)
	}
}

// TestMakingOrderConfigError 饮品池为空时场景停止并显示错误
func TestMakingOrderConfigError(t *testing.T) {
	f := newSceneFixture(t)
	f.deps.Menu = &config.MenuConfig{
		Rules:     f.deps.Menu.Rules,
		Scenarios: []config.ScenarioConfig{{Name: "first", DrinksRequired: 5}, {Name: "second", DrinksRequired: 8}},
	}

	scene := NewMakingOrderScene(game.NewGameState(), f.deps)
	if !scene.Halted() {
		t.Fatal("scene should halt on an empty drink pool")
	}
	if !strings.Contains(scene.Board().Text(game.TargetError), "drink pool is empty") {
		t.Errorf("error text = %q", scene.Board().Text(game.TargetError))
	}

	f.input.push(game.InputNavigateUp, game.InputConfirm)
	run(scene, 10)
	if len(f.loader.loaded) != 0 {
		t.Errorf("halted scene requested %v", f.loader.loaded)
	}
}

// TestFailScene 失败场景清零本轮计数，自动或手动返回咖啡店
func TestFailScene(t *testing.T) {
	tests := []struct {
		name   string
		inputs []game.InputEvent
	}{
		{name: "等待自动返回"},
		{name: "确认立即返回", inputs: []game.InputEvent{game.InputConfirm}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSceneFixture(t)
			gs := game.NewGameStateFrom(game.Snapshot{
				MistakeCount:          2,
				DrinkScenario:         game.ScenarioSecond,
				DrinksRequired:        8,
				DrinksServedCorrectly: 3,
			})
			scene := NewFailScene(gs, f.deps)

			if gs.DrinksServedCorrectly() != 0 || gs.MistakeCount() != 2 || gs.DrinkScenario() != game.ScenarioSecond {
				t.Errorf("state after failure = %s", gs)
			}

			f.input.push(tt.inputs...)
			run(scene, 5)

			if len(f.loader.loaded) != 1 || f.loader.loaded[0] != game.SceneCoffeeShop {
				t.Errorf("loaded = %v, want exactly [%s]", f.loader.loaded, game.SceneCoffeeShop)
			}
		})
	}
}

// TestWinScene 通关后自动或手动进入帮助页
func TestWinScene(t *testing.T) {
	f := newSceneFixture(t)
	scene := NewWinScene(game.NewGameState(), f.deps)

	run(scene, 1)
	if len(f.loader.loaded) != 0 {
		t.Fatalf("scene loaded before the delay: %v", f.loader.loaded)
	}
	f.input.push(game.InputConfirm)
	run(scene, 5)

	if len(f.loader.loaded) != 1 || f.loader.loaded[0] != game.SceneHelp {
		t.Errorf("loaded = %v, want exactly [%s]", f.loader.loaded, game.SceneHelp)
	}
}

// TestSimpleScenesConfirm 咖啡店和帮助页确认后切换场景
func TestSimpleScenesConfirm(t *testing.T) {
	tests := []struct {
		name  string
		build func(*game.GameState, Dependencies) Scene
		want  string
	}{
		{
			name:  "咖啡店进入制作",
			build: func(gs *game.GameState, d Dependencies) Scene { return NewCoffeeShopScene(gs, d) },
			want:  game.SceneMakingOrder,
		},
		{
			name:  "帮助页返回主菜单",
			build: func(gs *game.GameState, d Dependencies) Scene { return NewHelpScene(gs, d) },
			want:  game.SceneMainMenu,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSceneFixture(t)
			scene := tt.build(game.NewGameState(), f.deps)

			run(scene, 1)
			if len(f.loader.loaded) != 0 {
				t.Fatalf("loaded without input: %v", f.loader.loaded)
			}

			f.input.push(game.InputConfirm)
			scene.Update(1.0 / 60)
			if len(f.loader.loaded) != 1 || f.loader.loaded[0] != tt.want {
				t.Errorf("loaded = %v, want [%s]", f.loader.loaded, tt.want)
			}
		})
	}
}
