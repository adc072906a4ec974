package kernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractViolationError(t *testing.T) {
	cause := errors.New("underlying")
	err := &ContractViolationError{Rule: "no ready thread", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no ready thread")
	assert.Contains(t, err.Error(), "underlying")

	bare := &ContractViolationError{Rule: "magic corrupted"}
	assert.Equal(t, "kernel: contract violation: magic corrupted", bare.Error())
}

func TestWrapError(t *testing.T) {
	cause := errors.New("boom")
	err := wrapError("kernel: create", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "kernel: create")
}
