package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalNotifier_UnaLineaPorAviso(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf)

	n.Success("已复制到剪贴板")
	n.Warning("登录已过期，请重新登录")
	n.Error("网络错误")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "已复制到剪贴板")
	assert.Contains(t, lines[1], "登录已过期")
	assert.Contains(t, lines[2], "网络错误")
}

func TestTerminalNotifier_OnShowDesvia(t *testing.T) {
	var buf bytes.Buffer
	n := New(&buf)

	var got []Level
	n.OnShow(func(l Level, _ string) { got = append(got, l) })
	n.Info("a")
	n.Error("b")

	assert.Empty(t, buf.String(), "con observador no escribe en la terminal")
	assert.Equal(t, []Level{LevelInfo, LevelError}, got)
}
