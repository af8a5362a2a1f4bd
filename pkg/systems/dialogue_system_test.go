package systems

import (
	"os"
	"testing"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/ecs"
	"github.com/gonewx/coffeeshop/pkg/embedded"
	"github.com/gonewx/coffeeshop/pkg/game"
	"github.com/gonewx/coffeeshop/pkg/story"
)

type dialogueFixture struct {
	gs        *game.GameState
	dialogue  *DialogueSystem
	presenter *recordingPresenter
	cues      *recordingCues
	loader    *recordingLoader
}

func newDialogueFixture(gs *game.GameState) *dialogueFixture {
	em := ecs.NewEntityManager()
	presenter := newRecordingPresenter()
	cues := &recordingCues{}
	loader := &recordingLoader{}

	dialogue := NewDialogueSystem(
		gs,
		NewTypewriterSystem(em, presenter, cues, 0.05),
		NewChoiceMenuSystem(em, presenter, cues),
		NewTransitionSystem(em, loader),
		presenter,
	)
	return &dialogueFixture{gs: gs, dialogue: dialogue, presenter: presenter, cues: cues, loader: loader}
}

// runUntil 以 0.05 秒步长推进，直到状态变为 want
func (f *dialogueFixture) runUntil(t *testing.T, want DialogueState) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if f.dialogue.State() == want {
			return
		}
		f.dialogue.Tick(0.05, game.InputNone)
	}
	t.Fatalf("state = %s, never reached %s", f.dialogue.State(), want)
}

func testBranch() story.Branch {
	return story.Branch{
		Name: "test",
		Steps: []story.Step{
			{Kind: story.StepLine, Speaker: config.SpeakerNPC, Text: "Hi"},
			{Kind: story.StepChoice, EchoChoice: true, Options: []story.Option{
				{ID: "a", Text: "A", Then: []story.Step{{Kind: story.StepLine, Speaker: config.SpeakerNPC, Text: "Then A"}}},
				{ID: "b", Text: "B", SetsFamilyMentioned: true, Then: []story.Step{{Kind: story.StepLine, Speaker: config.SpeakerNPC, Text: "Then B"}}},
			}},
			{Kind: story.StepLine, Speaker: config.SpeakerNPC, Text: "Bye"},
			{Kind: story.StepTransition, Scene: game.SceneMakingOrder, AdvanceScenario: true, Delay: 2},
		},
	}
}

// TestDialogueStateProgression 状态按 Revealing → AwaitingChoice → Revealing → Transitioning 推进
func TestDialogueStateProgression(t *testing.T) {
	f := newDialogueFixture(game.NewGameState())

	if f.dialogue.State() != DialogueIdle {
		t.Fatalf("initial state = %s, want Idle", f.dialogue.State())
	}

	f.dialogue.Start(testBranch())
	if !f.dialogue.IsRevealing() {
		t.Fatalf("state after Start = %s, want Revealing", f.dialogue.State())
	}

	f.runUntil(t, DialogueAwaitingChoice)
	if f.presenter.texts[game.TargetNPC] != "Hi" {
		t.Errorf("npc text = %q, want %q", f.presenter.texts[game.TargetNPC], "Hi")
	}

	f.dialogue.Tick(0.05, game.InputNavigateDown)
	f.dialogue.Tick(0.05, game.InputConfirm)
	if f.dialogue.State() != DialogueRevealing {
		t.Fatalf("state after confirm = %s, want Revealing", f.dialogue.State())
	}

	f.runUntil(t, DialogueTransitioning)
	if f.presenter.texts[game.TargetPlayer] != "B" {
		t.Errorf("player text = %q, want echoed option %q", f.presenter.texts[game.TargetPlayer], "B")
	}
	npc := f.presenter.historyFor(game.TargetNPC)
	if len(npc) == 0 || npc[len(npc)-1] != "Bye" {
		t.Errorf("last npc line = %v, want Bye", npc)
	}
	for _, text := range npc {
		if text == "Then A" {
			t.Error("response of the unchosen option was shown")
		}
	}
	if !containsText(npc, "Then B") {
		t.Error("response of the chosen option was not shown")
	}
}

// TestDialogueIgnoresInputWhileRevealing 逐字显示期间的输入被忽略
func TestDialogueIgnoresInputWhileRevealing(t *testing.T) {
	f := newDialogueFixture(game.NewGameState())
	f.dialogue.Start(testBranch())

	f.dialogue.Tick(0.05, game.InputConfirm)
	f.dialogue.Tick(0.05, game.InputNavigateDown)

	if f.cues.count(game.CueConfirm) != 0 || f.cues.count(game.CueNavigate) != 0 {
		t.Errorf("input handled while revealing: cues=%v", f.cues.played)
	}
	if !f.dialogue.IsRevealing() {
		t.Errorf("state = %s, want Revealing", f.dialogue.State())
	}
}

// TestDialogueFamilyOption 带标记的选项把 familyMentioned 永久置为 true
func TestDialogueFamilyOption(t *testing.T) {
	tests := []struct {
		name       string
		navigate   []game.InputEvent
		wantFamily bool
	}{
		{name: "选择普通选项", navigate: nil, wantFamily: false},
		{name: "选择家人选项", navigate: []game.InputEvent{game.InputNavigateDown}, wantFamily: true},
		{name: "循环导航到家人选项", navigate: []game.InputEvent{game.InputNavigateUp}, wantFamily: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDialogueFixture(game.NewGameState())
			f.dialogue.Start(testBranch())
			f.runUntil(t, DialogueAwaitingChoice)

			for _, input := range tt.navigate {
				f.dialogue.Tick(0.05, input)
			}
			f.dialogue.Tick(0.05, game.InputConfirm)

			if f.gs.FamilyMentioned() != tt.wantFamily {
				t.Errorf("FamilyMentioned() = %v, want %v", f.gs.FamilyMentioned(), tt.wantFamily)
			}
		})
	}
}

// TestDialogueTerminalTransition 终点写入第二轮并在延迟后请求切换场景
func TestDialogueTerminalTransition(t *testing.T) {
	f := newDialogueFixture(game.NewGameState())
	f.dialogue.Start(testBranch())
	f.runUntil(t, DialogueAwaitingChoice)
	f.dialogue.Tick(0.05, game.InputConfirm)
	f.runUntil(t, DialogueTransitioning)

	if f.gs.DrinkScenario() != game.ScenarioSecond {
		t.Errorf("DrinkScenario() = %s, want Second", f.gs.DrinkScenario())
	}
	if len(f.loader.loaded) != 0 {
		t.Fatalf("scene loaded before the delay: %v", f.loader.loaded)
	}

	f.dialogue.Tick(1.0, game.InputConfirm)
	if len(f.loader.loaded) != 0 {
		t.Fatalf("scene loaded before the delay: %v", f.loader.loaded)
	}
	f.dialogue.Tick(1.0, game.InputNone)
	f.dialogue.Tick(1.0, game.InputNone)

	if len(f.loader.loaded) != 1 || f.loader.loaded[0] != game.SceneMakingOrder {
		t.Errorf("loaded = %v, want [%s]", f.loader.loaded, game.SceneMakingOrder)
	}
}

// TestDialogueEmptyBranch 空分支保持 Idle
func TestDialogueEmptyBranch(t *testing.T) {
	f := newDialogueFixture(game.NewGameState())
	f.dialogue.Start(story.Branch{Name: "empty"})

	if f.dialogue.State() != DialogueIdle {
		t.Errorf("state = %s, want Idle", f.dialogue.State())
	}
	f.dialogue.Tick(1, game.InputConfirm)
	if len(f.loader.loaded) != 0 {
		t.Errorf("empty branch requested a scene: %v", f.loader.loaded)
	}
}

// TestDialogueScriptedBranches 按数据文件中的每个表现分支完整播放
func TestDialogueScriptedBranches(t *testing.T) {
	embedded.Init(os.DirFS("../.."))
	cfg, err := config.LoadDialogueConfig(config.DefaultDialogueConfigPath)
	if err != nil {
		t.Fatalf("LoadDialogueConfig() error: %v", err)
	}

	tests := []struct {
		name     string
		mistakes int
		family   bool
	}{
		{name: "零失误", mistakes: 0},
		{name: "零失误提及家人", mistakes: 0, family: true},
		{name: "少量失误", mistakes: 2},
		{name: "大量失误", mistakes: 3},
		{name: "大量失误提及家人", mistakes: 7, family: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := game.NewGameStateFrom(game.Snapshot{MistakeCount: tt.mistakes, FamilyMentioned: tt.family})
			branch, err := story.SelectBranch(cfg, gs.MistakeCount(), gs.FamilyMentioned())
			if err != nil {
				t.Fatalf("SelectBranch() error: %v", err)
			}

			f := newDialogueFixture(gs)
			f.dialogue.Start(branch)
			f.runUntil(t, DialogueAwaitingChoice)
			f.dialogue.Tick(0.05, game.InputConfirm)
			f.runUntil(t, DialogueTransitioning)

			if gs.DrinkScenario() != game.ScenarioSecond {
				t.Errorf("DrinkScenario() = %s, want Second", gs.DrinkScenario())
			}
			if gs.FamilyMentioned() != tt.family {
				t.Error("performance dialogue must not change familyMentioned")
			}
		})
	}
}

func containsText(texts []string, want string) bool {
	for _, text := range texts {
		if text == want {
			return true
		}
	}
	return false
}
