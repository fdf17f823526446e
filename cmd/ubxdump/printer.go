package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubxmsg"
	"github.com/taoyao-code/ubx-gateway/internal/sink"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// frameOutput json/yaml 输出的单帧
type frameOutput struct {
	sink.View `yaml:",inline"`
	Message   any `json:"message,omitempty" yaml:"message,omitempty"`
}

// printer 按格式输出帧
type printer struct {
	w      io.Writer
	format string
	nav    bool
	json   *json.Encoder
	yaml   *yaml.Encoder
}

func newPrinter(w io.Writer, format string, nav bool) *printer {
	p := &printer{w: w, format: format, nav: nav}
	switch format {
	case formatJSON:
		p.json = json.NewEncoder(w)
	case formatYAML:
		p.yaml = yaml.NewEncoder(w)
		p.yaml.SetIndent(2)
	}
	return p
}

func (p *printer) Print(f *ubx.Frame) error {
	switch p.format {
	case formatJSON:
		return p.json.Encode(frameOutput{View: sink.ViewOf(f), Message: ubxmsg.Decoded(f)})
	case formatYAML:
		return p.yaml.Encode(frameOutput{View: sink.ViewOf(f), Message: ubxmsg.Decoded(f)})
	}

	lines := ubxmsg.Summary(f)
	if lines == nil && p.nav {
		lines = []string{f.GoString()}
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(p.w, l); err != nil {
			return err
		}
	}
	return nil
}

// Close 结束 yaml 文档流
func (p *printer) Close() error {
	if p.yaml != nil {
		return p.yaml.Close()
	}
	return nil
}
