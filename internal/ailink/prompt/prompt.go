// Package prompt holds the completion prompt templates, with an optional
// YAML override file for operators who want to tune them.
package prompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Templates are the prompts used by the pipeline. Extract receives the
// numbered search results appended after it; Translate is a fmt template
// taking categories, mechanics and description in that order.
type Templates struct {
	Extract   string `yaml:"extract"`
	Translate string `yaml:"translate"`
}

const defaultExtract = `你是桌游领域的信息提取助手。下面是关于一款桌游的网络搜索结果。
请从中找出这款桌游的官方中文名和官方英文名。
要求：
1. 只输出两行，格式严格为：
中文名：<名称>
英文名：<名称1>|<名称2>
2. 英文名可能有多个写法，用竖线分隔，最可能的放最前面。
3. 不确定的项留空，不要编造。

搜索结果：
`

const defaultTranslate = `请把下面桌游的类别、机制翻译成简体中文桌游术语，并把简介翻译成简体中文。
只输出三行，格式严格为：
类型：<用、分隔的类别>
机制：<用、分隔的机制>
简介：<一段中文简介>

类别：%s
机制：%s
简介：%s
`

// Defaults returns the built-in templates.
func Defaults() Templates {
	return Templates{Extract: defaultExtract, Translate: defaultTranslate}
}

// Load returns the defaults overlaid with any fields set in the YAML file
// at path. An empty path, or a missing file, yields the defaults.
func Load(path string) (Templates, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("read prompt file: %w", err)
	}

	var override Templates
	if err := yaml.Unmarshal(data, &override); err != nil {
		return t, fmt.Errorf("parse prompt file %s: %w", path, err)
	}
	if override.Extract != "" {
		t.Extract = override.Extract
	}
	if override.Translate != "" {
		t.Translate = override.Translate
	}
	return t, nil
}
