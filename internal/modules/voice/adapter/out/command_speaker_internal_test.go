package out

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studybuddy/internal/modules/voice/dto"
)

func TestCommandArgs(t *testing.T) {
	t.Parallel()
	params := dto.SpeechParams{Language: "en-GB", Pitch: 1.1, Rate: 0.8}
	assert.Equal(t, []string{"-p", "55", "-s", "140", "-v", "en-GB", "hello"}, commandArgs("espeak", "hello", params))
	assert.Equal(t, []string{"-r", "140", "hello"}, commandArgs("say", "hello", params))

	loud := commandArgs("espeak", "x", dto.SpeechParams{Pitch: 3, Rate: 1})
	assert.Equal(t, "99", loud[1])
}
