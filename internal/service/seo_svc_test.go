package service

import (
	"strings"
	"testing"
	"time"
)

func TestScoreTitle_Empty(t *testing.T) {
	if got := scoreTitle(""); got != 0 {
		t.Errorf("scoreTitle(\"\") = %d, want 0", got)
	}
}

func TestScoreTitle_LongBeatsShort(t *testing.T) {
	short := "Wall Art"
	long := "Boho Wall Art Printable | Minimalist Digital Download | Modern Watercolor Poster | Instant Download Home Decor Print | Gift for Her"

	if scoreTitle(long) <= scoreTitle(short) {
		t.Errorf("长关键词标题评分 %d 应高于短标题 %d", scoreTitle(long), scoreTitle(short))
	}
}

func TestScoreTitle_SpamPenalty(t *testing.T) {
	clean := "Minimalist Printable Wall Art Digital Download"
	spam := "Minimalist Printable Wall Art Digital Download best seller sale"

	if scoreTitle(spam) >= scoreTitle(clean) {
		t.Errorf("营销词标题评分 %d 不应高于干净标题 %d", scoreTitle(spam), scoreTitle(clean))
	}
}

func TestScoreTags_FullSlotsBeatFew(t *testing.T) {
	few := []string{"wall art", "printable"}
	full := []string{
		"boho wall art", "digital download", "printable art", "minimalist print",
		"modern poster", "watercolor art", "instant download", "home decor print",
		"bedroom wall art", "gift for her", "wedding gift", "nursery decor", "abstract print",
	}

	if scoreTags(full) <= scoreTags(few) {
		t.Errorf("13 个长尾标签评分 %d 应高于 2 个标签 %d", scoreTags(full), scoreTags(few))
	}
}

func TestScoreTags_Empty(t *testing.T) {
	if got := scoreTags(nil); got != 0 {
		t.Errorf("scoreTags(nil) = %d, want 0", got)
	}
}

func TestScoreKeywordConsistency_RequiresTitleAndTags(t *testing.T) {
	if got := scoreKeywordConsistency("", "desc", []string{"tag"}); got != 0 {
		t.Errorf("无标题时一致性评分 = %d, want 0", got)
	}
	if got := scoreKeywordConsistency("title", "desc", nil); got != 0 {
		t.Errorf("无标签时一致性评分 = %d, want 0", got)
	}
}

func TestScore_OverallWeighting(t *testing.T) {
	scorer := NewSEOScorer()
	result := scorer.Score(
		"Boho Wall Art Printable | Minimalist Digital Download | Watercolor Poster",
		"What you get: high resolution printable art. Perfect for modern home decor.\n\n• 300 DPI PDF\n• Instant download\n\nPlease note: no physical item shipped.",
		[]string{"boho wall art", "digital download", "printable art", "minimalist print", "watercolor"},
	)

	want := int(float64(result.Title)*0.30 +
		float64(result.Tag)*0.25 +
		float64(result.Description)*0.25 +
		float64(result.Keyword)*0.20 + 0.5)
	if result.Overall != want {
		t.Errorf("Overall = %d, want 加权值 %d", result.Overall, want)
	}
	if result.Grade == "" {
		t.Error("Grade 不能为空")
	}
}

func TestSeoGrade(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{97, "A+"},
		{91, "A"},
		{85, "A-"},
		{80, "B+"},
		{72, "B-"},
		{60, "C"},
		{55, "D"},
		{30, "F"},
	}
	for _, c := range cases {
		if got := seoGrade(c.score); got != c.want {
			t.Errorf("seoGrade(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestGenerateTips_ShortListingGetsHighPriorityFirst(t *testing.T) {
	scorer := NewSEOScorer()
	result := scorer.Score("Art", "short", []string{"art"})

	if len(result.Tips) == 0 {
		t.Fatal("低分商品应产生优化建议")
	}
	if len(result.Tips) > 6 {
		t.Errorf("建议数 %d 超过上限 6", len(result.Tips))
	}
	// 高优先级建议必须排在低优先级之前
	order := map[string]int{"high": 0, "medium": 1, "low": 2}
	for i := 1; i < len(result.Tips); i++ {
		if order[result.Tips[i].Priority] < order[result.Tips[i-1].Priority] {
			t.Errorf("建议排序错误: %s 出现在 %s 之后", result.Tips[i].Priority, result.Tips[i-1].Priority)
		}
	}
}

func TestGenerateTips_Seasonal(t *testing.T) {
	scorer := &SEOScorer{now: func() time.Time {
		return time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	}}
	result := scorer.Score("Art", "", []string{"art"})

	found := false
	for _, tip := range result.Tips {
		if tip.Field == "seasonal" && strings.Contains(tip.Tip, "christmas") {
			found = true
		}
	}
	if !found {
		t.Error("十二月应包含 christmas 季节性建议")
	}
}
