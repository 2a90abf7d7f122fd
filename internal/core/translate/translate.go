// Package translate localizes a record's categories, mechanics and
// description for display, with the terms dictionary as the offline
// fallback.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/ailink"
	"github.com/boardlens/boardlens/internal/core"
	"github.com/boardlens/boardlens/internal/core/terms"
)

// DefaultModelKey is the preferred model registry key for translation.
const DefaultModelKey = "utils"

// Generator is the completion dependency.
type Generator interface {
	Generate(ctx context.Context, req ailink.GenerateRequest) (*ailink.GenerateResult, error)
}

// Translation holds the localized fields.
type Translation struct {
	Categories  []string
	Mechanics   []string
	Description string
}

// Translator localizes records. With a nil Models it only applies the
// terms dictionary.
type Translator struct {
	Models Generator
	Terms  terms.Map

	// Template is a fmt template taking categories, mechanics, description.
	Template string

	// ModelKey is the preferred registry key (defaults to "utils").
	ModelKey string

	Logger *logging.Logger
}

// Translate localizes one record. Model failures fall back to the terms
// dictionary and the record's own description; they never fail the caller.
func (t *Translator) Translate(ctx context.Context, rec *core.GameRecord) Translation {
	if t.Models != nil {
		if translated, ok := t.translateAI(ctx, rec); ok {
			return translated
		}
	}
	return Translation{
		Categories:  t.Terms.Apply(rec.Categories),
		Mechanics:   t.Terms.Apply(rec.Mechanics),
		Description: rec.Description,
	}
}

func (t *Translator) translateAI(ctx context.Context, rec *core.GameRecord) (Translation, bool) {
	modelKey := t.ModelKey
	if modelKey == "" {
		modelKey = DefaultModelKey
	}

	prompt := fmt.Sprintf(t.Template,
		strings.Join(rec.Categories, ", "),
		strings.Join(rec.Mechanics, ", "),
		rec.Description)

	res, err := t.Models.Generate(ctx, ailink.GenerateRequest{Prompt: prompt, ModelKey: modelKey})
	if err != nil {
		t.logWarn("translation failed", zap.String("name", rec.Name), zap.Error(err))
		return Translation{}, false
	}

	translated, ok := parseTranslation(res.Text)
	if !ok {
		t.logWarn("translation output unparseable", zap.String("name", rec.Name))
	}
	return translated, ok
}

// parseTranslation reads the 类型/机制/简介 lines of the model output. All
// three must be present for the translation to be used.
func parseTranslation(text string) (Translation, bool) {
	var out Translation
	haveCats, haveMechs, haveDesc := false, false, false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "类型："), strings.HasPrefix(line, "类型:"):
			out.Categories = splitTerms(trimLabel(line, "类型"))
			haveCats = true
		case strings.HasPrefix(line, "机制："), strings.HasPrefix(line, "机制:"):
			out.Mechanics = splitTerms(trimLabel(line, "机制"))
			haveMechs = true
		case strings.HasPrefix(line, "简介："), strings.HasPrefix(line, "简介:"):
			out.Description = strings.TrimSpace(trimLabel(line, "简介"))
			haveDesc = out.Description != ""
		}
	}
	return out, haveCats && haveMechs && haveDesc
}

func splitTerms(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "、") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func trimLabel(line, label string) string {
	line = strings.TrimPrefix(line, label)
	line = strings.TrimPrefix(line, "：")
	return strings.TrimPrefix(line, ":")
}

func (t *Translator) logWarn(msg string, fields ...zap.Field) {
	if t.Logger != nil {
		t.Logger.Warn(msg, fields...)
	}
}
