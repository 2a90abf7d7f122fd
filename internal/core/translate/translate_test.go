package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boardlens/boardlens/internal/ailink"
	"github.com/boardlens/boardlens/internal/core"
	"github.com/boardlens/boardlens/internal/core/terms"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(ctx context.Context, req ailink.GenerateRequest) (*ailink.GenerateResult, error) {
	s.prompt = req.Prompt
	if s.err != nil {
		return nil, s.err
	}
	return &ailink.GenerateResult{Text: s.text, Key: req.ModelKey, Model: "stub"}, nil
}

func sampleRecord() *core.GameRecord {
	return &core.GameRecord{
		Name:        "Ark Nova",
		Categories:  []string{"Animals", "Economic"},
		Mechanics:   []string{"Hand Management"},
		Description: "Plan and design a modern zoo.",
	}
}

func TestTranslateWithModel(t *testing.T) {
	gen := &stubGenerator{text: "类型：动物、经济\n机制：手牌管理\n简介：规划并设计一座现代动物园。"}
	tr := &Translator{
		Models:   gen,
		Template: "类别：%s\n机制：%s\n简介：%s",
	}

	out := tr.Translate(context.Background(), sampleRecord())
	require.Equal(t, []string{"动物", "经济"}, out.Categories)
	require.Equal(t, []string{"手牌管理"}, out.Mechanics)
	require.Equal(t, "规划并设计一座现代动物园。", out.Description)

	require.Contains(t, gen.prompt, "Animals, Economic")
	require.Contains(t, gen.prompt, "Hand Management")
	require.Contains(t, gen.prompt, "Plan and design a modern zoo.")
}

func TestTranslateModelFailureFallsBackToTerms(t *testing.T) {
	tr := &Translator{
		Models:   &stubGenerator{err: errors.New("model down")},
		Terms:    terms.Map{"Animals": "动物"},
		Template: "%s %s %s",
	}

	rec := sampleRecord()
	out := tr.Translate(context.Background(), rec)
	require.Equal(t, []string{"动物", "Economic"}, out.Categories)
	require.Equal(t, []string{"Hand Management"}, out.Mechanics)
	require.Equal(t, rec.Description, out.Description)
}

func TestTranslateIncompleteOutputFallsBack(t *testing.T) {
	// Missing the 简介 line, so the model output is discarded.
	tr := &Translator{
		Models:   &stubGenerator{text: "类型：动物\n机制：手牌管理"},
		Terms:    terms.Map{},
		Template: "%s %s %s",
	}

	rec := sampleRecord()
	out := tr.Translate(context.Background(), rec)
	require.Equal(t, rec.Categories, out.Categories)
	require.Equal(t, rec.Description, out.Description)
}

func TestTranslateWithoutModels(t *testing.T) {
	tr := &Translator{Terms: terms.Map{"Economic": "经济"}}

	out := tr.Translate(context.Background(), sampleRecord())
	require.Equal(t, []string{"Animals", "经济"}, out.Categories)
}

func TestParseTranslation(t *testing.T) {
	out, ok := parseTranslation("类型: 动物、 经济\n机制: 手牌管理\n简介: 一款动物园经营游戏。")
	require.True(t, ok)
	require.Equal(t, []string{"动物", "经济"}, out.Categories)
	require.Equal(t, "一款动物园经营游戏。", out.Description)

	_, ok = parseTranslation("随便说点别的")
	require.False(t, ok)

	_, ok = parseTranslation("类型：动物\n机制：手牌管理\n简介：")
	require.False(t, ok, "empty description does not count")
}
