package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hg2ecz/rpncalc/machine"
)

func TestErrLine(t *testing.T) {
	assert := assert.New(t)

	err := &ErrLine{LineNo: 12, Err: machine.ErrStackEmpty}
	assert.Equal("line 12: stack empty", err.Error())
	assert.ErrorIs(err, machine.ErrStackEmpty)
}

func TestErrSubroutine(t *testing.T) {
	assert := assert.New(t)

	err := &ErrSubroutine{Name: "sq", Err: machine.ErrWordUnknown("sqr")}
	assert.Equal("subroutine sq: 'sqr' is not a command or subroutine", err.Error())

	var unknown machine.ErrWordUnknown
	assert.ErrorAs(err, &unknown)
}
