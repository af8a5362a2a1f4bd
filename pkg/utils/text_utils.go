package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - maxWidth: 最大宽度（像素）
//   - measure: 测量一行文本宽度的函数
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行，保留原有的换行符
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, maxWidth float64, measure func(string) float64) []string {
	if textStr == "" || measure == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, maxWidth, measure)...)
	}
	return lines
}

// WrapTextFace 使用字体测量宽度的 WrapText
func WrapTextFace(textStr string, face text.Face, maxWidth float64) []string {
	if face == nil {
		return []string{textStr}
	}
	return WrapText(textStr, maxWidth, func(s string) float64 {
		return measureTextWidth(s, face)
	})
}

func wrapParagraph(paragraph string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
		}

		// 单词太长，强制断行
		if measure(word) > maxWidth {
			pieces := breakWord(word, maxWidth, measure)
			lines = append(lines, pieces[:len(pieces)-1]...)
			currentLine = pieces[len(pieces)-1]
		} else {
			currentLine = word
		}
	}
	return append(lines, currentLine)
}

// breakWord 按字符切分超宽单词（支持多字节字符）
func breakWord(word string, maxWidth float64, measure func(string) float64) []string {
	var pieces []string
	current := ""
	for _, r := range word {
		test := current + string(r)
		if measure(test) > maxWidth && current != "" {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = test
	}
	return append(pieces, current)
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}

	width, _ := text.Measure(textStr, face, 0)
	return width
}
