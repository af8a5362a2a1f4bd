package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gonewx/coffeeshop/pkg/components"
	"github.com/gonewx/coffeeshop/pkg/config"
)

// SubmitOutcome 提交一个通道原料的结果
type SubmitOutcome int

const (
	// OutcomeCorrect 原料正确，剩余次数减一
	OutcomeCorrect SubmitOutcome = iota
	// OutcomeAlreadySatisfied 原料属于订单，但需要的次数已经满足
	OutcomeAlreadySatisfied
	// OutcomeNotRequired 原料不属于订单（干扰项）
	OutcomeNotRequired
)

func (o SubmitOutcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "Correct"
	case OutcomeAlreadySatisfied:
		return "AlreadySatisfied"
	case OutcomeNotRequired:
		return "NotRequired"
	default:
		return "Unknown"
	}
}

// IsMistake 是否计为一次失误
func (o SubmitOutcome) IsMistake() bool {
	return o == OutcomeAlreadySatisfied || o == OutcomeNotRequired
}

var (
	// ErrNoActiveOrder 当前没有进行中的订单
	ErrNoActiveOrder = errors.New("no active order")
	// ErrInvalidChannel 通道下标越界
	ErrInvalidChannel = errors.New("invalid channel")
)

// NewOrderSession 生成一张新订单
//
// 算法：
//  1. 从 pool 中均匀随机选出目标饮品
//  2. 按出现次数统计每种原料的剩余次数
//  3. 通道先放入去重后的必需原料，再从排除了同名原料的干扰池中不放回抽取补齐
//  4. Fisher–Yates 打乱通道，计时器重置为 timeLimit
//
// 饮品数据不合法（无原料、图标数量不符、通道放不下、干扰项不足）时返回 config.ErrInvalidConfig
func NewOrderSession(pool []config.DrinkConfig, decoys []string, channelCount int, timeLimit float64, rng *rand.Rand) (*components.OrderSessionComponent, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: drink pool is empty", config.ErrInvalidConfig)
	}

	drink := pool[rng.Intn(len(pool))]
	if err := config.ValidateDrink(drink, decoys, channelCount); err != nil {
		return nil, err
	}

	remaining := make(map[string]int, len(drink.RequiredIngredients))
	icons := make(map[string]string, len(drink.RequiredIngredients))
	for i, ingredient := range drink.RequiredIngredients {
		remaining[ingredient]++
		if i < len(drink.IngredientIcons) {
			icons[ingredient] = drink.IngredientIcons[i]
		}
	}

	channels := drink.DistinctIngredients()
	channelIcons := make([]string, 0, channelCount)
	for _, name := range channels {
		channelIcons = append(channelIcons, icons[name])
	}

	// 干扰池按名称排除必需原料，而不是只排除已使用过的
	usable := make([]string, 0, len(decoys))
	seen := make(map[string]bool, len(decoys))
	for _, decoy := range decoys {
		if decoy == "" || remaining[decoy] > 0 || seen[decoy] {
			continue
		}
		seen[decoy] = true
		usable = append(usable, decoy)
	}
	for len(channels) < channelCount {
		j := rng.Intn(len(usable))
		channels = append(channels, usable[j])
		channelIcons = append(channelIcons, "")
		usable[j] = usable[len(usable)-1]
		usable = usable[:len(usable)-1]
	}

	for i := len(channels) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		channels[i], channels[j] = channels[j], channels[i]
		channelIcons[i], channelIcons[j] = channelIcons[j], channelIcons[i]
	}

	required := make([]string, len(drink.RequiredIngredients))
	copy(required, drink.RequiredIngredients)

	return &components.OrderSessionComponent{
		DrinkName:           drink.Name,
		DrinkImage:          drink.Image,
		RequiredIngredients: required,
		RemainingCounts:     remaining,
		Channels:            channels,
		ChannelIcons:        channelIcons,
		TimeRemaining:       timeLimit,
	}, nil
}

// ApplySubmission 把一个原料提交到订单
// 只有 OutcomeCorrect 会修改订单；全部次数归零时设置 Completed
func ApplySubmission(session *components.OrderSessionComponent, ingredient string) SubmitOutcome {
	count, required := session.RemainingCounts[ingredient]
	if !required {
		return OutcomeNotRequired
	}
	if count == 0 {
		return OutcomeAlreadySatisfied
	}

	session.RemainingCounts[ingredient] = count - 1
	session.Collected = append(session.Collected, ingredient)

	for _, left := range session.RemainingCounts {
		if left > 0 {
			return OutcomeCorrect
		}
	}
	session.Completed = true
	return OutcomeCorrect
}
