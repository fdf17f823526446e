package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/taoyao-code/ubx-gateway/internal/config"
	"github.com/taoyao-code/ubx-gateway/internal/protocol/ubx"
	"github.com/taoyao-code/ubx-gateway/internal/serialport"
)

const ackHex = "b5620501020006010f38"

func monVerFrame(t *testing.T) *ubx.Frame {
	t.Helper()
	payload := make([]byte, 70)
	copy(payload, "ROM CORE 3.01 (107888)")
	copy(payload[30:], "00080000")
	copy(payload[40:], "PROTVER=18.00")
	f, err := ubx.Build(ubx.MonVER, payload)
	require.NoError(t, err)
	return f
}

func navFrame(t *testing.T) *ubx.Frame {
	t.Helper()
	f, err := ubx.Build(ubx.NavPVT, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	return f
}

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestHexCommand(t *testing.T) {
	t.Run("文本摘要", func(t *testing.T) {
		stream := "00 ff " + ackHex + " " + monVerFrame(t).String() + " " + navFrame(t).String()
		out, err := run(t, nil, "hex", stream)
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"ACK-ACK: class: 6, id: 1",
			"mon-ver: sw: ROM CORE 3.01 (107888), hw: 00080000",
			"mon-ver: PROTVER=18.00",
		}, "\n")+"\n", out)
	})

	t.Run("显示NAV帧", func(t *testing.T) {
		out, err := run(t, nil, "hex", "--nav", navFrame(t).String())
		require.NoError(t, err)
		assert.Equal(t, "NAV-PVT: 4: 01020304\n", out)
	})

	t.Run("JSON每帧一行", func(t *testing.T) {
		out, err := run(t, nil, "hex", "-f", "json", ackHex+ackHex)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
		assert.Equal(t, "ACK-ACK", got["id"])
		assert.Equal(t, ackHex, got["wire"])
		assert.Equal(t, map[string]any{"acked": true, "class_id": 6.0, "msg_id": 1.0, "target": "CFG-MSG"}, got["message"])
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := run(t, nil, "hex", "--format", "yaml", monVerFrame(t).String())
		require.NoError(t, err)
		var got struct {
			ID      string `yaml:"id"`
			Message struct {
				Software string `yaml:"software"`
			} `yaml:"message"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, "MON-VER", got.ID)
		assert.Equal(t, "ROM CORE 3.01 (107888)", got.Message.Software)
	})

	t.Run("非法参数", func(t *testing.T) {
		_, err := run(t, nil, "hex", "zz")
		assert.Error(t, err)
		_, err = run(t, nil, "hex", "--format", "xml", ackHex)
		assert.ErrorContains(t, err, "unknown format")
	})
}

func TestFileCommand(t *testing.T) {
	var capture bytes.Buffer
	capture.Write(monVerFrame(t).Bytes())
	capture.Write([]byte{0xb5, 0x62, 0x05, 0x01, 0x02, 0x00, 0x06, 0x01, 0x0f, 0x39}) // 校验错
	ack, err := ubx.Build(ubx.AckNAK, []byte{0x06, 0x8a})
	require.NoError(t, err)
	capture.Write(ack.Bytes())

	path := filepath.Join(t.TempDir(), "capture.ubx")
	require.NoError(t, os.WriteFile(path, capture.Bytes(), 0o644))

	out, err := run(t, nil, "file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "mon-ver: sw: ROM CORE 3.01 (107888)")
	assert.Contains(t, out, "ACK-NAK: class: 6, id: 8a")
	assert.NotContains(t, out, "ACK-ACK")

	t.Run("标准输入", func(t *testing.T) {
		out, err := run(t, capture.Bytes(), "file", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "ACK-NAK")
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := run(t, nil, "file", filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}

func TestEncodeCommand(t *testing.T) {
	t.Run("轮询帧", func(t *testing.T) {
		out, err := run(t, nil, "encode", "mon-ver")
		require.NoError(t, err)
		assert.Equal(t, "b5620a0400000e34\n", out)
	})

	t.Run("分段载荷", func(t *testing.T) {
		out, err := run(t, nil, "encode", "ACK-ACK", "06", "01")
		require.NoError(t, err)
		assert.Equal(t, ackHex+"\n", out)
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, nil, "encode", "-f", "json", "ACK-ACK", "0601")
		require.NoError(t, err)
		assert.Contains(t, out, `"wire":"`+ackHex+`"`)
	})

	t.Run("未知名称", func(t *testing.T) {
		_, err := run(t, nil, "encode", "NOPE-X")
		assert.ErrorContains(t, err, "unknown message id")
	})
}

func TestCatalogCommand(t *testing.T) {
	out, err := run(t, nil, "catalog", "--class", "ack")
	require.NoError(t, err)
	assert.Contains(t, out, "ACK-ACK")
	assert.Contains(t, out, "ACK-NAK")
	assert.NotContains(t, out, "MON-VER")

	_, err = run(t, nil, "catalog", "--class", "XYZ")
	assert.Error(t, err)
}

type fakePort struct {
	*bytes.Reader
	written bytes.Buffer
}

func (p *fakePort) Write(b []byte) (int, error) { return p.written.Write(b) }
func (p *fakePort) Close() error                { return nil }

func TestRunSerial(t *testing.T) {
	ack, err := ubx.Build(ubx.AckACK, []byte{0x06, 0x01})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	port := &fakePort{Reader: bytes.NewReader(ack.Bytes())}
	opens := 0
	open := func(cfgpkg.SerialConfig) (serialport.Port, error) {
		opens++
		if opens > 1 {
			cancel()
			return nil, errors.New("unplugged")
		}
		return port, nil
	}

	var out bytes.Buffer
	opts := &options{format: formatText, maxPayload: ubx.DefaultMaxPayload, logger: zap.NewNop()}
	poll, err := ubx.Encode(ubx.MonVER, nil)
	require.NoError(t, err)

	err = runSerial(ctx, opts, cfgpkg.SerialConfig{Device: "/dev/ttyFAKE"}, open, [][]byte{poll}, newPrinter(&out, formatText, false))
	require.NoError(t, err)
	assert.Equal(t, "ACK-ACK: class: 6, id: 1\n", out.String())
	assert.Equal(t, poll, port.written.Bytes())
}
