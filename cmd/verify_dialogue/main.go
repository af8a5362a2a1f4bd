// verify_dialogue 打印每个表现分支在 familyMentioned 为真/假时的完整对话
//
// 用法：
//
//	go run ./cmd/verify_dialogue
//	go run ./cmd/verify_dialogue -mistakes 2 -family -choice 1
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/embedded"
	"github.com/gonewx/coffeeshop/pkg/story"
)

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	mistakes = flag.Int("mistakes", -1, "只打印该失误次数对应的分支（-1 表示全部）")
	family   = flag.Bool("family", false, "与 -mistakes 一起使用：已提及家人")
	choice   = flag.Int("choice", 0, "每个选项步骤选择的下标")
	root     = flag.String("root", ".", "项目根目录（包含 data/）")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	embedded.Init(os.DirFS(*root))
	cfg, err := config.LoadDialogueConfig(config.DefaultDialogueConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "对话脚本加载失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== intro ===")
	walk(story.IntroBranch(cfg, false), *choice)

	type variant struct {
		mistakes int
		family   bool
	}
	var variants []variant
	if *mistakes >= 0 {
		variants = append(variants, variant{*mistakes, *family})
	} else {
		for _, m := range []int{0, 1, 3} {
			variants = append(variants, variant{m, false}, variant{m, true})
		}
	}

	for _, v := range variants {
		branch, err := story.SelectBranch(cfg, v.mistakes, v.family)
		if err != nil {
			fmt.Fprintf(os.Stderr, "分支选择失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n=== %s (mistakes=%d, family=%v) ===\n", branch.Name, v.mistakes, v.family)
		walk(branch, *choice)
	}
}

// walk 从头到尾播放分支，所有选项步骤都选择 choice
func walk(branch story.Branch, choice int) {
	cursor := story.NewCursor(branch)
	step, ok := cursor.Current()
	for ok {
		next := story.NoChoice
		switch step.Kind {
		case story.StepLine:
			fmt.Printf("  [%s] %s\n", step.Speaker, step.Text)
		case story.StepChoice:
			next = choice
			if next >= len(step.Options) {
				next = len(step.Options) - 1
			}
			for i, option := range step.Options {
				marker := " "
				if i == next {
					marker = ">"
				}
				fmt.Printf("  %s (%s) %s\n", marker, option.ID, option.Text)
			}
		case story.StepTransition:
			fmt.Printf("  -> %s (advanceScenario=%v, delay=%.1fs)\n", step.Scene, step.AdvanceScenario, step.Delay)
			fmt.Printf("  %d steps visited\n", cursor.Visited())
			return
		}

		var err error
		step, err = cursor.Advance(next)
		if errors.Is(err, story.ErrFinished) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "推进失败: %v\n", err)
			os.Exit(1)
		}
	}
}
