package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/modules/profile/service"
	"studybuddy/internal/platform/clock"
	apperrors "studybuddy/internal/platform/errors"
	"studybuddy/internal/platform/random"
)

func newGate(clk *clock.Manual) *service.GateService {
	// young gate spans [1, 10); operands 3 and 4
	return service.NewGateService(clk, &random.Scripted{Ints: []int{2, 3}}, nil, 3, 30*time.Second)
}

func TestGatePassesOnCorrectAnswer(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	gate := newGate(clk)

	challenge, err := gate.Open("young")
	require.NoError(t, err)
	assert.Equal(t, "What's 3 + 4?", challenge.Question)

	res, err := gate.Submit(" 7 ")
	require.NoError(t, err)
	assert.True(t, res.Passed)

	_, err = gate.Submit("7")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestGateLocksAfterThreeWrongAnswers(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	gate := newGate(clk)
	_, err := gate.Open("young")
	require.NoError(t, err)

	res, err := gate.Submit("1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.AttemptsLeft)
	res, err = gate.Submit("2")
	require.NoError(t, err)
	assert.Equal(t, 1, res.AttemptsLeft)
	res, err = gate.Submit("3")
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, 30*time.Second, res.LockedFor)

	clk.Advance(10 * time.Second)
	_, err = gate.Open("young")
	require.ErrorIs(t, err, apperrors.ErrGateLocked)
	assert.Contains(t, err.Error(), "20 more seconds")

	clk.Advance(20 * time.Second)
	_, err = gate.Open("young")
	require.NoError(t, err)
}

func TestGateCancelResetsWrongCount(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	gate := newGate(clk)
	_, _ = gate.Open("young")
	_, _ = gate.Submit("0")
	_, _ = gate.Submit("0")
	gate.Cancel()

	_, err := gate.Open("young")
	require.NoError(t, err)
	res, err := gate.Submit("0")
	require.NoError(t, err)
	assert.False(t, res.Locked)
	assert.Equal(t, 2, res.AttemptsLeft)
}
