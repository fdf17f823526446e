package sink

import (
	"fmt"
	"os"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"gopkg.in/yaml.v3"
)

// Filter 按身份选择需要落库的帧。
// 条目可以是完整身份（"NAV-PVT"、"MON-Unknown"、"Unknown"）或整个类别（"NAV"）。
// include 为空表示全部；exclude 优先。
type Filter struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	inc matcher
	exc matcher
}

type matcher struct {
	ids     map[ubx.ID]struct{}
	classes map[ubx.Class]struct{}
}

func (m matcher) empty() bool { return len(m.ids) == 0 && len(m.classes) == 0 }

func (m matcher) match(id ubx.ID) bool {
	if _, ok := m.ids[id]; ok {
		return true
	}
	_, ok := m.classes[id.Class()]
	return ok
}

// NewFilter 解析名称列表，未知名称返回错误
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{Include: include, Exclude: exclude}
	if err := f.compile(); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadFilter 从 YAML 文件加载
func LoadFilter(path string) (*Filter, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persist filter: %w", err)
	}
	var f Filter
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("unmarshal persist filter: %w", err)
	}
	if err := f.compile(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Filter) compile() error {
	var err error
	if f.inc, err = compileNames(f.Include); err != nil {
		return err
	}
	f.exc, err = compileNames(f.Exclude)
	return err
}

func compileNames(names []string) (matcher, error) {
	m := matcher{ids: make(map[ubx.ID]struct{}), classes: make(map[ubx.Class]struct{})}
	for _, n := range names {
		if id, ok := ubx.ParseID(n); ok {
			m.ids[id] = struct{}{}
			continue
		}
		if c, ok := ubx.ParseClass(n); ok {
			m.classes[c] = struct{}{}
			continue
		}
		return m, fmt.Errorf("persist filter: unknown identity %q", n)
	}
	return m, nil
}

// Allow nil 过滤器放行全部
func (f *Filter) Allow(id ubx.ID) bool {
	if f == nil {
		return true
	}
	if f.exc.match(id) {
		return false
	}
	return f.inc.empty() || f.inc.match(id)
}
