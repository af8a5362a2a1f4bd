package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/coffeeshop/pkg/config"
	"github.com/gonewx/coffeeshop/pkg/embedded"
)

// 用法：在项目根目录执行 go run tools/validate_yaml.go
func main() {
	embedded.Init(os.DirFS("."))
	failed := false

	for _, path := range []string{config.DefaultMenuConfigPath, config.DefaultDialogueConfigPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("❌ 读取文件失败 %s: %v\n", path, err)
			os.Exit(1)
		}

		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			fmt.Printf("❌ YAML 解析失败 %s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("✅ YAML 格式正确: %s (%d 个顶层字段)\n", path, len(raw))
	}

	menu, err := config.LoadMenuConfig(config.DefaultMenuConfigPath)
	if err != nil {
		fmt.Printf("❌ 饮品菜单校验失败: %v\n", err)
		failed = true
	} else {
		fmt.Printf("✅ 饮品数量: %d, 干扰原料: %d\n", len(menu.Drinks), len(menu.Decoys))
		for i := range menu.Scenarios {
			pool, err := menu.DrinkPool(i)
			if err == nil {
				err = config.ValidateDrinkPool(pool, menu.Decoys, menu.Rules.ChannelCount)
			}
			if err != nil {
				fmt.Printf("❌ 第 %d 轮饮品池不可用: %v\n", i+1, err)
				failed = true
				continue
			}
			fmt.Printf("✅ 第 %d 轮: %d 种饮品, 需要完成 %d 杯\n", i+1, len(pool), menu.DrinksRequired(i))
		}
	}

	dialogue, err := config.LoadDialogueConfig(config.DefaultDialogueConfigPath)
	if err != nil {
		fmt.Printf("❌ 对话脚本校验失败: %v\n", err)
		failed = true
	} else {
		fmt.Printf("✅ 开场 %d 步, 表现分支 %d 条\n", len(dialogue.Intro), len(dialogue.Performance))
	}

	if failed {
		os.Exit(1)
	}
}
