package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ==================== 模板渲染 ====================

// RenderVars 占位符闭集
// 模板内容中 {{title}} {{filename}} {{preset_name}} {{date}} {{price}} 会被替换，
// 闭集外的 {{xxx}} 原样保留
type RenderVars struct {
	Title      string
	Filename   string
	PresetName string
	Date       string
	Price      string
}

// NewRenderVars 从草稿上下文构造渲染变量
func NewRenderVars(title, filename, presetName string, price float64, now time.Time) RenderVars {
	return RenderVars{
		Title:      title,
		Filename:   filename,
		PresetName: presetName,
		Date:       now.Format("January 2, 2006"),
		Price:      fmt.Sprintf("%.2f", price),
	}
}

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// RenderTemplate 渲染模板内容
// 每个已知占位符的每次出现都被替换恰好一次；替换结果不做二次扫描，
// 因此变量值里哪怕包含 {{title}} 也不会被展开（渲染幂等）
func RenderTemplate(content string, vars RenderVars) string {
	known := map[string]string{
		"title":       vars.Title,
		"filename":    vars.Filename,
		"preset_name": vars.PresetName,
		"date":        vars.Date,
		"price":       vars.Price,
	}

	var sb strings.Builder
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		value, ok := known[name]
		if !ok {
			continue
		}
		sb.WriteString(content[last:loc[0]])
		sb.WriteString(value)
		last = loc[1]
	}
	sb.WriteString(content[last:])
	return sb.String()
}
