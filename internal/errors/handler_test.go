package errors

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockColorOutput struct {
	mock.Mock
}

func (m *mockColorOutput) Error(msgs ...string)   { m.Called(msgs) }
func (m *mockColorOutput) Warning(msgs ...string) { m.Called(msgs) }
func (m *mockColorOutput) Info(msgs ...string)    { m.Called(msgs) }
func (m *mockColorOutput) Success(msgs ...string) { m.Called(msgs) }

func TestCLIHandlerForwardsEveryLevel(t *testing.T) {
	out := new(mockColorOutput)
	out.On("Error", []string{"e"}).Once()
	out.On("Warning", []string{"w"}).Once()
	out.On("Info", []string{"i"}).Once()
	out.On("Success", []string{"s"}).Once()

	h := NewCLIHandler(out)
	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	out.AssertExpectations(t)
}

func TestCLIHandlerConcurrentUse(t *testing.T) {
	out := new(mockColorOutput)
	out.On("Error", mock.Anything).Times(20)

	h := NewCLIHandler(out)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Error(fmt.Sprint(i))
		}(i)
	}
	wg.Wait()

	out.AssertExpectations(t)
}

type warningErr struct{ msg string }

func (e warningErr) Error() string { return e.msg }
func (e warningErr) Warning() bool { return true }

func TestReport(t *testing.T) {
	var got []Message
	h := NewTUIHandler(func(m Message) { got = append(got, m) })

	Report(h, nil)
	Report(h, errors.New("broken"))
	Report(h, fmt.Errorf("wrapped: %w", warningErr{"careful"}))

	require.Len(t, got, 2)
	assert.Equal(t, MessageTypeError, got[0].Type)
	assert.Equal(t, "broken", got[0].Text)
	assert.Equal(t, MessageTypeWarning, got[1].Type)
	assert.Equal(t, "wrapped: careful", got[1].Text)
}

func TestTUIHandlerLatestAndExpiry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := NewTUIHandler(nil)
	h.now = func() time.Time { return now }

	_, ok := h.Latest(0)
	assert.False(t, ok)

	h.Info("first")
	h.Success("second")
	msg, ok := h.Latest(time.Second)
	require.True(t, ok)
	assert.Equal(t, "second", msg.Text)
	assert.Equal(t, MessageTypeSuccess, msg.Type)

	now = now.Add(2 * time.Second)
	_, ok = h.Latest(time.Second)
	assert.False(t, ok, "expired")
	_, ok = h.Latest(0)
	assert.True(t, ok, "zero ttl never expires")

	h.Clear()
	assert.Empty(t, h.All())
}

func TestTUIHandlerKeepsBoundedMessages(t *testing.T) {
	h := NewTUIHandler(nil)
	for i := 0; i < MaxMessages+5; i++ {
		h.Error(fmt.Sprint(i))
	}

	all := h.All()
	require.Len(t, all, MaxMessages)
	assert.Equal(t, "5", all[0].Text)
	assert.Equal(t, fmt.Sprint(MaxMessages+4), all[len(all)-1].Text)
}

func TestTUIHandlerCallbackMayReadHandler(t *testing.T) {
	var h *TUIHandler
	var seen Message
	h = NewTUIHandler(func(Message) {
		seen, _ = h.Latest(0)
	})

	h.Warning("reentrant")
	assert.Equal(t, "reentrant", seen.Text)
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "error", MessageTypeError.String())
	assert.Equal(t, "warning", MessageTypeWarning.String())
	assert.Equal(t, "info", MessageTypeInfo.String())
	assert.Equal(t, "success", MessageTypeSuccess.String())
}
