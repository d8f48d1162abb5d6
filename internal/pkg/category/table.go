package category

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/qs3c/travelmart_server/config"
)

// Kind 导航动作类型
type Kind string

const (
	KindPublish Kind = "publish"
	KindManage  Kind = "manage"
	KindView    Kind = "view"
)

// idParam 路由模板中发布实体 ID 的占位符
const idParam = ":id"

// ErrUnsupportedCategory 分类尚未接入对应页面
var ErrUnsupportedCategory = errors.New("This functionality will be available soon")

// TargetNotFoundError 管理/查看时广告位尚未关联已发布实体
type TargetNotFoundError struct {
	Category    string
	DisplayName string
	Noun        string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.DisplayName, e.Noun)
}

// Entry 一个分类的展示名与三类路由模板
type Entry struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Noun        string `json:"noun"`
	PublishPath string `json:"publishPath,omitempty"`
	ManagePath  string `json:"managePath,omitempty"`
	ViewPath    string `json:"viewPath,omitempty"`
}

func (e Entry) path(kind Kind) string {
	switch kind {
	case KindPublish:
		return e.PublishPath
	case KindManage:
		return e.ManagePath
	case KindView:
		return e.ViewPath
	}
	return ""
}

// Supported 三类路由都已接入
func (e Entry) Supported() bool {
	return e.PublishPath != "" && e.ManagePath != "" && e.ViewPath != ""
}

type Table struct {
	entries map[string]Entry
	order   []string
}

func NewTable(entries ...Entry) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		t.put(e)
	}
	return t
}

// FromConfig 在内置表的基础上应用配置中的追加/覆盖项
func FromConfig(overrides []config.CategoryConfig) *Table {
	t := DefaultTable()
	for _, o := range overrides {
		if o.Key == "" {
			continue
		}
		e, ok := t.entries[o.Key]
		if !ok {
			e = Entry{Key: o.Key, Noun: "listing"}
		}
		if o.DisplayName != "" {
			e.DisplayName = o.DisplayName
		}
		if o.Noun != "" {
			e.Noun = o.Noun
		}
		if o.PublishPath != "" {
			e.PublishPath = o.PublishPath
		}
		if o.ManagePath != "" {
			e.ManagePath = o.ManagePath
		}
		if o.ViewPath != "" {
			e.ViewPath = o.ViewPath
		}
		t.put(e)
	}
	return t
}

func (t *Table) put(e Entry) {
	if e.DisplayName == "" {
		e.DisplayName = e.Key
	}
	if _, exists := t.entries[e.Key]; !exists {
		t.order = append(t.order, e.Key)
	}
	t.entries[e.Key] = e
}

// Lookup 查找分类
func (t *Table) Lookup(key string) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Contains 分类是否属于枚举
func (t *Table) Contains(key string) bool {
	_, ok := t.entries[key]
	return ok
}

// DisplayName 未知分类时返回原始 key
func (t *Table) DisplayName(key string) string {
	if e, ok := t.entries[key]; ok {
		return e.DisplayName
	}
	return key
}

// Entries 按注册顺序返回所有分类
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.entries[k])
	}
	return out
}

// Resolve 把分类和动作解析成具体路由。
// 未接入的分类返回 ErrUnsupportedCategory；模板需要发布实体 ID 而 publishedAdID 为空时返回 *TargetNotFoundError。
func (t *Table) Resolve(key string, kind Kind, publishedAdID *string) (string, error) {
	e, ok := t.entries[key]
	if !ok {
		return "", ErrUnsupportedCategory
	}

	tmpl := e.path(kind)
	if tmpl == "" {
		return "", ErrUnsupportedCategory
	}

	if !strings.Contains(tmpl, idParam) {
		return tmpl, nil
	}

	if publishedAdID == nil || *publishedAdID == "" {
		return "", &TargetNotFoundError{Category: e.Key, DisplayName: e.DisplayName, Noun: e.Noun}
	}

	return strings.Replace(tmpl, idParam, url.PathEscape(*publishedAdID), 1), nil
}
