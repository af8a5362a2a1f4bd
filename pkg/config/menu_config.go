package config

import (
	"errors"
	"fmt"

	"github.com/gonewx/coffeeshop/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败的哨兵错误
// 所有校验错误都会包装它，调用方可以用 errors.Is 判断
var ErrInvalidConfig = errors.New("invalid config")

// DefaultMenuConfigPath 饮品菜单配置在嵌入文件系统中的路径
const DefaultMenuConfigPath = "data/drinks.yaml"

// 订单规则默认值
const (
	DefaultOrderTimeLimit   = 8.0
	DefaultLowTimeThreshold = 5.0
	DefaultNextOrderDelay   = 2.0
	DefaultChannelCount     = 4
	DefaultTransitionDelay  = 2.0
)

// DrinkConfig 单个饮品配置
type DrinkConfig struct {
	Name                string   `yaml:"name"`                // 饮品名称（订单显示）
	Image               string   `yaml:"image"`               // 图片资源ID（由表现层解释）
	RequiredIngredients []string `yaml:"requiredIngredients"` // 有序原料列表，允许重复
	IngredientIcons     []string `yaml:"ingredientIcons"`     // 原料图标ID，可省略；填写时必须与原料一一对应
}

// DistinctIngredients 按首次出现顺序返回去重后的原料名
func (d DrinkConfig) DistinctIngredients() []string {
	seen := make(map[string]bool, len(d.RequiredIngredients))
	result := make([]string, 0, len(d.RequiredIngredients))
	for _, name := range d.RequiredIngredients {
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	return result
}

// OrderRules 订单规则
type OrderRules struct {
	OrderTimeLimit   float64 `yaml:"orderTimeLimit"`   // 每单时间（秒）
	LowTimeThreshold float64 `yaml:"lowTimeThreshold"` // 低于该值触发一次警告
	NextOrderDelay   float64 `yaml:"nextOrderDelay"`   // 完成后到下一单的展示延迟（秒）
	ChannelCount     int     `yaml:"channelCount"`     // 输入通道数量
	TransitionDelay  float64 `yaml:"transitionDelay"`  // 失败/完成后切换场景的延迟（秒）
}

// ScenarioConfig 单个饮品场景（第一轮/第二轮）配置
type ScenarioConfig struct {
	Name           string   `yaml:"name"`
	DrinksRequired int      `yaml:"drinksRequired"` // 需要正确完成的饮品数
	Drinks         []string `yaml:"drinks"`         // 本场景可出现的饮品名称，为空表示全部
}

// MenuConfig 饮品菜单配置文件结构
type MenuConfig struct {
	Drinks    []DrinkConfig    `yaml:"drinks"`
	Decoys    []string         `yaml:"decoys"` // 干扰原料池
	Rules     OrderRules       `yaml:"rules"`
	Scenarios []ScenarioConfig `yaml:"scenarios"` // 下标对应 game.DrinkScenario
}

// LoadMenuConfig 从嵌入文件系统加载饮品菜单配置
// 参数：
//
//	filepath - 配置文件路径（如 "data/drinks.yaml"）
//
// 返回：
//
//	*MenuConfig - 解析并校验后的配置对象
//	error - 读取、解析或校验失败
func LoadMenuConfig(filepath string) (*MenuConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu config file %s: %w", filepath, err)
	}

	config, err := LoadMenuConfigFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return config, nil
}

// LoadMenuConfigFromBytes 从 YAML 字节加载饮品菜单配置
func LoadMenuConfigFromBytes(data []byte) (*MenuConfig, error) {
	var config MenuConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse menu config YAML: %w", err)
	}

	applyMenuDefaults(&config)

	if err := validateMenuConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyMenuDefaults 为未填写的规则字段设置默认值
func applyMenuDefaults(config *MenuConfig) {
	if config.Rules.OrderTimeLimit == 0 {
		config.Rules.OrderTimeLimit = DefaultOrderTimeLimit
	}
	if config.Rules.LowTimeThreshold == 0 {
		config.Rules.LowTimeThreshold = DefaultLowTimeThreshold
	}
	if config.Rules.NextOrderDelay == 0 {
		config.Rules.NextOrderDelay = DefaultNextOrderDelay
	}
	if config.Rules.ChannelCount == 0 {
		config.Rules.ChannelCount = DefaultChannelCount
	}
	if config.Rules.TransitionDelay == 0 {
		config.Rules.TransitionDelay = DefaultTransitionDelay
	}
}

// validateMenuConfig 验证菜单配置的完整性和合法性
func validateMenuConfig(config *MenuConfig) error {
	if config.Rules.OrderTimeLimit < 0 || config.Rules.LowTimeThreshold < 0 ||
		config.Rules.NextOrderDelay < 0 || config.Rules.TransitionDelay < 0 {
		return fmt.Errorf("%w: rules cannot contain negative durations", ErrInvalidConfig)
	}
	if config.Rules.ChannelCount < 1 {
		return fmt.Errorf("%w: channelCount must be at least 1, got %d", ErrInvalidConfig, config.Rules.ChannelCount)
	}

	if err := ValidateDrinkPool(config.Drinks, config.Decoys, config.Rules.ChannelCount); err != nil {
		return err
	}

	if len(config.Scenarios) < 2 {
		return fmt.Errorf("%w: two scenarios are required, got %d", ErrInvalidConfig, len(config.Scenarios))
	}

	known := make(map[string]bool, len(config.Drinks))
	for _, drink := range config.Drinks {
		known[drink.Name] = true
	}
	for i, scenario := range config.Scenarios {
		if scenario.DrinksRequired < 1 {
			return fmt.Errorf("%w: scenario %d: drinksRequired must be at least 1, got %d",
				ErrInvalidConfig, i, scenario.DrinksRequired)
		}
		for _, name := range scenario.Drinks {
			if !known[name] {
				return fmt.Errorf("%w: scenario %d: unknown drink %q", ErrInvalidConfig, i, name)
			}
		}
	}

	return nil
}

// ValidateDrinkPool 校验饮品池能否生成合法订单
// 检查：饮品池非空、原料非空、图标数量匹配、通道数足够容纳去重原料、干扰池足够补齐通道
func ValidateDrinkPool(drinks []DrinkConfig, decoys []string, channelCount int) error {
	if len(drinks) == 0 {
		return fmt.Errorf("%w: drink pool is empty", ErrInvalidConfig)
	}

	for i, drink := range drinks {
		if drink.Name == "" {
			return fmt.Errorf("%w: drink %d: name is required", ErrInvalidConfig, i)
		}
		if err := ValidateDrink(drink, decoys, channelCount); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDrink 校验单个饮品
func ValidateDrink(drink DrinkConfig, decoys []string, channelCount int) error {
	if len(drink.RequiredIngredients) == 0 {
		return fmt.Errorf("%w: drink %q: requiredIngredients cannot be empty", ErrInvalidConfig, drink.Name)
	}
	for j, ingredient := range drink.RequiredIngredients {
		if ingredient == "" {
			return fmt.Errorf("%w: drink %q: ingredient %d is empty", ErrInvalidConfig, drink.Name, j)
		}
	}
	if len(drink.IngredientIcons) > 0 && len(drink.IngredientIcons) != len(drink.RequiredIngredients) {
		return fmt.Errorf("%w: drink %q: %d ingredient icons for %d ingredients",
			ErrInvalidConfig, drink.Name, len(drink.IngredientIcons), len(drink.RequiredIngredients))
	}

	distinct := drink.DistinctIngredients()
	if len(distinct) > channelCount {
		return fmt.Errorf("%w: drink %q: %d distinct ingredients do not fit %d channels",
			ErrInvalidConfig, drink.Name, len(distinct), channelCount)
	}

	required := make(map[string]bool, len(distinct))
	for _, name := range distinct {
		required[name] = true
	}
	available := 0
	seen := make(map[string]bool, len(decoys))
	for _, decoy := range decoys {
		if decoy == "" || required[decoy] || seen[decoy] {
			continue
		}
		seen[decoy] = true
		available++
	}
	if need := channelCount - len(distinct); available < need {
		return fmt.Errorf("%w: drink %q: needs %d decoys, only %d usable",
			ErrInvalidConfig, drink.Name, need, available)
	}
	return nil
}

// DrinkPool 返回指定场景可用的饮品列表
// scenario 为 game.DrinkScenario 的整数值
func (c *MenuConfig) DrinkPool(scenario int) ([]DrinkConfig, error) {
	if scenario < 0 || scenario >= len(c.Scenarios) {
		return nil, fmt.Errorf("%w: unknown scenario %d", ErrInvalidConfig, scenario)
	}

	names := c.Scenarios[scenario].Drinks
	if len(names) == 0 {
		return c.Drinks, nil
	}

	pool := make([]DrinkConfig, 0, len(names))
	for _, name := range names {
		drink, ok := c.GetDrink(name)
		if !ok {
			return nil, fmt.Errorf("%w: scenario %d: unknown drink %q", ErrInvalidConfig, scenario, name)
		}
		pool = append(pool, drink)
	}
	return pool, nil
}

// DrinksRequired 返回指定场景需要完成的饮品数
func (c *MenuConfig) DrinksRequired(scenario int) int {
	if scenario < 0 || scenario >= len(c.Scenarios) {
		return 0
	}
	return c.Scenarios[scenario].DrinksRequired
}

// GetDrink 按名称查找饮品
func (c *MenuConfig) GetDrink(name string) (DrinkConfig, bool) {
	for _, drink := range c.Drinks {
		if drink.Name == name {
			return drink, true
		}
	}
	return DrinkConfig{}, false
}
