package scenes

import (
	"math/rand"
	"os"
	"testing"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/embedded"
	"github.com/gonewx/coffeeshop/pkg/game"
)

// scriptedInput 按顺序返回预设的输入事件，用完后返回 InputNone
type scriptedInput struct {
	events []game.InputEvent
}

func (s *scriptedInput) Poll() game.InputEvent {
	if len(s.events) == 0 {
		return game.InputNone
	}
	event := s.events[0]
	s.events = s.events[1:]
	return event
}

func (s *scriptedInput) push(events ...game.InputEvent) {
	s.events = append(s.events, events...)
}

type recordingLoader struct {
	loaded []string
}

func (l *recordingLoader) LoadScene(name string) {
	l.loaded = append(l.loaded, name)
}

type recordingQuitter struct {
	quit bool
}

func (q *recordingQuitter) RequestQuit() {
	q.quit = true
}

type recordingCues struct {
	played []game.CueID
}

func (c *recordingCues) PlayCue(id game.CueID) {
	c.played = append(c.played, id)
}

type sceneFixture struct {
	deps    Dependencies
	input   *scriptedInput
	loader  *recordingLoader
	quitter *recordingQuitter
	cues    *recordingCues
}

// newSceneFixture 使用 data/ 下的真实配置创建场景依赖
func newSceneFixture(t *testing.T) *sceneFixture {
	t.Helper()
	embedded.Init(os.DirFS("../.."))

	menu, err := config.LoadMenuConfig(config.DefaultMenuConfigPath)
	if err != nil {
		t.Fatalf("LoadMenuConfig() error: %v", err)
	}
	dialogue, err := config.LoadDialogueConfig(config.DefaultDialogueConfigPath)
	if err != nil {
		t.Fatalf("LoadDialogueConfig() error: %v", err)
	}
	settings, _ := game.NewSettingsManager(nil)

	f := &sceneFixture{
		input:   &scriptedInput{},
		loader:  &recordingLoader{},
		quitter: &recordingQuitter{},
		cues:    &recordingCues{},
	}
	f.deps = Dependencies{
		Loader:   f.loader,
		Quitter:  f.quitter,
		Input:    f.input,
		Cues:     f.cues,
		Settings: settings,
		Menu:     menu,
		Dialogue: dialogue,
		Rand:     rand.New(rand.NewSource(7)),
	}
	return f
}

// run 以 1/60 秒步长推进场景 seconds 秒
func run(scene Scene, seconds float64) {
	const dt = 1.0 / 60
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		scene.Update(dt)
	}
}
