package logsvc

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evolvlearn/portal/core"
)

func TestRollbarLogger_print(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "TEST : ", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	usr := core.User{ID: 3, Email: "ada@test.io"}
	logger.Warn("Failed to fetch events", errors.New("502 bad gateway"), usr, map[string]interface{}{"month": 3})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"TEST : Failed to fetch events",
		"TEST : 502 bad gateway",
		"TEST : map[month:3]",
	}, lines)
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := RollbarLogger{std: log.New(&bytes.Buffer{}, "", 0)}
	err := errors.New("boom")
	args := logger.prepare("msg", []interface{}{err, core.User{ID: 1}, core.User{ID: 2}})
	assert.Equal(t, []interface{}{"msg", err}, args)
}
