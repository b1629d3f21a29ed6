package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ==================== 关键词库 ====================

// 高流量关键词库（按类别），评分时用于衡量标题/标签/描述的关键词覆盖

var productKeywords = keywordSet(
	"mockup", "template", "design", "graphic", "illustration", "clipart",
	"pattern", "bundle", "kit", "pack", "set", "collection", "font",
	"logo", "icon", "vector", "texture", "background", "overlay",
	"frame", "border", "banner", "flyer", "poster", "card", "invitation",
)

var formatKeywords = keywordSet(
	"digital download", "instant download", "printable", "pdf", "png",
	"svg", "eps", "psd", "jpeg", "jpg", "editable", "customizable",
	"print ready", "high resolution", "commercial use", "commercial license",
)

var styleKeywords = keywordSet(
	"minimalist", "modern", "vintage", "retro", "boho", "bohemian",
	"rustic", "farmhouse", "elegant", "luxury", "aesthetic", "trendy",
	"classic", "contemporary", "scandinavian", "mid century", "art deco",
	"watercolor", "hand drawn", "handmade", "artisan", "organic",
)

var occasionKeywords = keywordSet(
	"wedding", "birthday", "christmas", "valentine", "easter", "halloween",
	"thanksgiving", "mother day", "father day", "graduation", "baby shower",
	"bridal shower", "anniversary", "engagement", "housewarming", "retirement",
)

var recipientKeywords = keywordSet(
	"gift for her", "gift for him", "gift for mom", "gift for dad",
	"gift for wife", "gift for husband", "gift for friend", "gift for teacher",
	"bridesmaid gift", "groomsmen gift", "hostess gift", "personalized gift",
)

// 浪费标题空间的虚词
var fillerWords = keywordSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "was", "are", "were", "be",
	"very", "really", "just", "only", "also", "even", "still", "already",
	"cute", "nice", "great", "awesome", "amazing", "beautiful", "lovely",
	"best", "good", "super", "cool", "pretty", "perfect",
)

// 会被平台降权的营销词
var spamWords = keywordSet(
	"best seller", "bestseller", "top rated", "viral", "trending now",
	"limited time", "sale", "discount", "cheap", "free", "bargain",
)

var highValueKeywords = mergeKeywordSets(
	productKeywords, formatKeywords, styleKeywords, occasionKeywords, recipientKeywords,
)

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func mergeKeywordSets(sets ...map[string]bool) map[string]bool {
	merged := make(map[string]bool)
	for _, set := range sets {
		for w := range set {
			merged[w] = true
		}
	}
	return merged
}

// ==================== 评分结果 ====================

// SEOTip 可执行的优化建议
type SEOTip struct {
	Priority string `json:"priority"` // high | medium | low
	Field    string `json:"field"`
	Tip      string `json:"tip"`
}

// SEOResult 综合 SEO 评分
type SEOResult struct {
	Overall     int      `json:"overall_score"`
	Title       int      `json:"title_score"`
	Description int      `json:"description_score"`
	Tag         int      `json:"tag_score"`
	Keyword     int      `json:"keyword_score"`
	Grade       string   `json:"grade"`
	Tips        []SEOTip `json:"tips"`
}

// ==================== 评分器 ====================

// SEOScorer 按平台排序因子计算 0-100 的综合评分
// 权重：标题 30%、标签 25%、描述 25%、关键词一致性 20%
type SEOScorer struct {
	now func() time.Time
}

// NewSEOScorer 创建评分器
func NewSEOScorer() *SEOScorer {
	return &SEOScorer{now: time.Now}
}

// Score 计算综合评分
func (s *SEOScorer) Score(title, description string, tags []string) SEOResult {
	result := SEOResult{
		Title:       scoreTitle(title),
		Description: scoreDescription(description),
		Tag:         scoreTags(tags),
		Keyword:     scoreKeywordConsistency(title, description, tags),
	}

	overall := float64(result.Title)*0.30 +
		float64(result.Tag)*0.25 +
		float64(result.Description)*0.25 +
		float64(result.Keyword)*0.20
	result.Overall = int(overall + 0.5)
	result.Grade = seoGrade(result.Overall)
	result.Tips = s.generateTips(title, description, tags, result)
	return result
}

// scoreTitle 标题评分：长度利用率、关键词前置、结构、关键词丰富度、虚词惩罚
func scoreTitle(title string) int {
	if title == "" {
		return 0
	}

	score := 0
	lower := strings.ToLower(title)
	words := strings.Fields(lower)

	// 长度：搜索只展示前 ~60 字符，但全部 140 字符参与索引
	switch length := len(title); {
	case length >= 120 && length <= 140:
		score += 25
	case length >= 100:
		score += 22
	case length >= 80:
		score += 18
	case length >= 60:
		score += 12
	case length > 140:
		score += 5
	default:
		score += 8
	}

	// 前 40 字符的关键词前置
	front := lower
	if len(front) > 40 {
		front = front[:40]
	}
	frontHits := 0
	for kw := range highValueKeywords {
		if strings.Contains(front, kw) {
			frontHits++
		}
	}
	score += minInt(frontHits*8, 25)

	// 结构可读性
	if strings.Contains(title, "|") || strings.Contains(title, " - ") {
		score += 10
	}
	if title != strings.ToUpper(title) {
		score += 5
	}

	// 关键词丰富度
	matches := 0
	for kw := range highValueKeywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	score += minInt(matches*4, 20)

	// 虚词 / 营销词惩罚
	penalty := 0
	for _, w := range words {
		if fillerWords[w] {
			penalty += 2
		}
	}
	for spam := range spamWords {
		if strings.Contains(lower, spam) {
			penalty += 10
			break
		}
	}
	score += maxInt(15-penalty, 0)

	return minInt(score, 100)
}

// scoreDescription 描述评分：长度、开头钩子、结构、段落区块、关键词
func scoreDescription(description string) int {
	if description == "" {
		return 0
	}

	score := 0
	lower := strings.ToLower(description)

	switch length := len(description); {
	case length >= 800 && length <= 2000:
		score += 20
	case length >= 500:
		score += 16
	case length > 2000 && length <= 3000:
		score += 18
	case length >= 300:
		score += 12
	default:
		score += 6
	}

	// 前 160 字符出现在搜索摘要里
	hook := lower
	if len(hook) > 160 {
		hook = hook[:160]
	}
	for _, h := range []string{"perfect", "unique", "handmade", "premium", "instant", "download", "included", "gift"} {
		if strings.Contains(hook, h) {
			score += 8
			break
		}
	}
	for kw := range highValueKeywords {
		if strings.Contains(hook, kw) {
			score += 7
			break
		}
	}

	// 结构化排版
	structure := 0
	for _, marker := range []string{"•", "✓", "✔", "★", "►", "→", "- "} {
		if strings.Contains(description, marker) {
			structure += 8
			break
		}
	}
	lineCount := strings.Count(description, "\n")
	if lineCount >= 5 {
		structure += 6
	} else if lineCount >= 3 {
		structure += 4
	}
	score += minInt(structure, 20)

	// 关键区块
	sections := [][]string{
		{"what you get", "included", "you will receive"},
		{"feature", "perfect for", "great for", "ideal for"},
		{"how to", "how it works", "instructions"},
		{"faq", "please note", "note:"},
		{"favorite", "follow", "shop", "message", "contact"},
	}
	found := 0
	for _, keys := range sections {
		for _, k := range keys {
			if strings.Contains(lower, k) {
				found++
				break
			}
		}
	}
	score += minInt(found*4, 20)

	// 关键词融入
	matches := 0
	for kw := range highValueKeywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	score += minInt(matches*2, 15)

	return minInt(score, 100)
}

// scoreTags 标签评分：槽位用满、去重、长尾短语、长度区间、类别覆盖
func scoreTags(tags []string) int {
	if len(tags) == 0 {
		return 0
	}

	score := 0

	switch count := len(tags); {
	case count == 13:
		score += 25
	case count >= 11:
		score += 20
	case count >= 8:
		score += 12
	case count >= 5:
		score += 6
	default:
		score += 2
	}

	unique := make(map[string]bool, len(tags))
	for _, t := range tags {
		unique[strings.ToLower(strings.TrimSpace(t))] = true
	}
	if len(unique) == len(tags) {
		score += 15
	} else {
		score += maxInt(15-(len(tags)-len(unique))*3, 0)
	}

	multiWord := 0
	for _, t := range tags {
		if strings.Contains(strings.TrimSpace(t), " ") {
			multiWord++
		}
	}
	switch {
	case multiWord >= 10:
		score += 20
	case multiWord >= 7:
		score += 15
	case multiWord >= 4:
		score += 10
	default:
		score += 3
	}

	optimalLen := 0
	for _, t := range tags {
		if l := len(strings.TrimSpace(t)); l >= 8 && l <= 20 {
			optimalLen++
		}
	}
	score += minInt(optimalLen*3/2, 15)

	coverage := 0
	for _, set := range []map[string]bool{productKeywords, formatKeywords, styleKeywords, occasionKeywords, recipientKeywords} {
		if tagsCoverSet(tags, set) {
			coverage += 5
		}
	}
	score += minInt(coverage, 25)

	return minInt(score, 100)
}

func tagsCoverSet(tags []string, set map[string]bool) bool {
	for _, t := range tags {
		lower := strings.ToLower(t)
		for kw := range set {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// scoreKeywordConsistency 跨字段一致性：标题/标签/描述的关键词呼应与重复惩罚
func scoreKeywordConsistency(title, description string, tags []string) int {
	if title == "" || len(tags) == 0 {
		return 0
	}

	score := 0
	titleWords := significantWords(title)

	tagWords := make(map[string]bool)
	tagPhrases := make([]string, 0, len(tags))
	for _, t := range tags {
		lower := strings.ToLower(strings.TrimSpace(t))
		tagPhrases = append(tagPhrases, lower)
		for _, w := range strings.Fields(lower) {
			if !fillerWords[w] {
				tagWords[w] = true
			}
		}
	}

	// 标题与标签的策略性重叠：少量重叠最优，过多浪费标签槽位
	overlap := 0
	for w := range titleWords {
		if tagWords[w] {
			overlap++
		}
	}
	switch {
	case overlap >= 1 && overlap <= 3:
		score += 25
	case overlap == 0:
		score += 15
	default:
		score += 10
	}

	if description != "" {
		descLower := strings.ToLower(description)
		tagsInDesc := 0
		for _, p := range tagPhrases {
			if strings.Contains(descLower, p) {
				tagsInDesc++
			}
		}
		switch {
		case tagsInDesc >= 5:
			score += 15
		case tagsInDesc >= 3:
			score += 10
		default:
			score += 5
		}

		titleInDesc := 0
		for w := range titleWords {
			if strings.Contains(descLower, w) {
				titleInDesc++
			}
		}
		switch {
		case titleInDesc >= 5:
			score += 10
		case titleInDesc >= 3:
			score += 7
		default:
			score += 3
		}
	}

	// 词频惩罚（关键词堆砌）
	freq := make(map[string]int)
	for w := range titleWords {
		freq[w]++
	}
	for w := range tagWords {
		freq[w]++
	}
	overRepeated := 0
	for _, count := range freq {
		if count > 3 {
			overRepeated++
		}
	}
	score += maxInt(25-overRepeated*5, 0)

	// 高价值关键词总量
	allText := strings.ToLower(title + " " + description + " " + strings.Join(tags, " "))
	hits := 0
	for kw := range highValueKeywords {
		if strings.Contains(allText, kw) {
			hits++
		}
	}
	score += minInt(hits*3, 25)

	return minInt(score, 100)
}

func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsNumber(r) })
		if len(w) > 2 && !fillerWords[w] {
			words[w] = true
		}
	}
	return words
}

// ==================== 建议与评级 ====================

func (s *SEOScorer) generateTips(title, description string, tags []string, r SEOResult) []SEOTip {
	var tips []SEOTip

	if r.Title < 80 {
		if len(title) < 100 {
			tips = append(tips, SEOTip{
				Priority: "high", Field: "title",
				Tip: fmt.Sprintf("标题只有 %d 字符，用满 140 字符能获得最大曝光", len(title)),
			})
		}
		if !strings.Contains(title, "|") && !strings.Contains(title, " - ") {
			tips = append(tips, SEOTip{
				Priority: "medium", Field: "title",
				Tip: "用 | 或 - 分隔关键词，提升标题可读性",
			})
		}
	}

	if r.Description < 80 && len(description) < 500 {
		tips = append(tips, SEOTip{
			Priority: "high", Field: "description",
			Tip: "描述偏短，补充细节、要点列表和常见问题区块",
		})
	}

	if r.Tag < 80 {
		if len(tags) < 13 {
			tips = append(tips, SEOTip{
				Priority: "high", Field: "tags",
				Tip: fmt.Sprintf("只用了 %d 个标签，13 个槽位每个都是一条搜索入口", len(tags)),
			})
		}
		multiWord := 0
		for _, t := range tags {
			if strings.Contains(t, " ") {
				multiWord++
			}
		}
		if multiWord < 8 {
			tips = append(tips, SEOTip{
				Priority: "medium", Field: "tags",
				Tip: "多用长尾短语标签，如 digital download 优于 digital",
			})
		}
	}

	if r.Keyword < 70 {
		tips = append(tips, SEOTip{
			Priority: "medium", Field: "keywords",
			Tip: "确保主关键词自然出现在标题和描述两处",
		})
	}

	// 按优先级排序，先截到 5 条：季节性建议固定占末位槽，不被高优先级挤掉
	order := map[string]int{"high": 0, "medium": 1, "low": 2}
	for i := 1; i < len(tips); i++ {
		for j := i; j > 0 && order[tips[j].Priority] < order[tips[j-1].Priority]; j-- {
			tips[j], tips[j-1] = tips[j-1], tips[j]
		}
	}
	if len(tips) > 5 {
		tips = tips[:5]
	}

	if seasonal := seasonalKeywords(s.now().Month()); len(seasonal) > 0 {
		tips = append(tips, SEOTip{
			Priority: "low", Field: "seasonal",
			Tip: "当季热搜词: " + strings.Join(seasonal, ", "),
		})
	}
	return tips
}

// seasonalKeywords 当月的季节性关键词
func seasonalKeywords(month time.Month) []string {
	seasonal := map[time.Month][]string{
		time.January:   {"new year", "organization", "planner"},
		time.February:  {"valentine", "love", "romantic"},
		time.March:     {"spring", "easter", "pastel"},
		time.April:     {"easter", "spring wedding", "mother day"},
		time.May:       {"mother day", "graduation", "teacher appreciation"},
		time.June:      {"father day", "summer", "wedding"},
		time.July:      {"summer", "fourth july", "beach"},
		time.August:    {"back to school", "teacher gift", "fall prep"},
		time.September: {"fall", "autumn", "pumpkin"},
		time.October:   {"halloween", "fall", "spooky"},
		time.November:  {"thanksgiving", "black friday", "holiday"},
		time.December:  {"christmas", "holiday", "gift"},
	}
	return seasonal[month]
}

func seoGrade(score int) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 65:
		return "C+"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
