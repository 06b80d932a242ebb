package domain

import (
	"fmt"
	"strconv"

	"studybuddy/internal/platform/random"
)

const OperationAddition = "addition"

type GateChallenge struct {
	Question string
	Answer   string
}

// GenerateGate draws both operands from [MinNumber, MaxNumber).
func GenerateGate(spec GateSpec, rnd random.Source) GateChallenge {
	a := operand(spec, rnd)
	b := operand(spec, rnd)
	// addition is the only operation in use; others render as addition.
	return GateChallenge{
		Question: fmt.Sprintf("What's %d + %d?", a, b),
		Answer:   strconv.Itoa(a + b),
	}
}

func operand(spec GateSpec, rnd random.Source) int {
	span := spec.MaxNumber - spec.MinNumber
	if span <= 0 {
		return spec.MinNumber
	}
	return rnd.IntN(span) + spec.MinNumber
}
