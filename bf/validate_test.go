package bf_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/MarcinKonowalczyk/jitbf/bf"
	"github.com/MarcinKonowalczyk/jitbf/utils"
)

func TestValidate_Balanced(t *testing.T) {
	utils.AssertNoError(t, bf.Validate("+++[->+<]"))
	utils.AssertNoError(t, bf.Validate("[[][[]]]"))
	utils.AssertNoError(t, bf.Validate(""))
	utils.AssertNoError(t, bf.Validate("no brackets at all"))
}

func TestValidate_UnmatchedClose(t *testing.T) {
	err := bf.Validate("[]]")
	utils.AssertError(t, err)
	utils.AssertErrorIs(t, err, bf.ErrUnbalancedLoop)

	var ule *bf.UnbalancedLoopError
	utils.Assert(t, errors.As(err, &ule), "expected an UnbalancedLoopError")
	utils.AssertEqual(t, ule.Command, bf.LoopEnd)
	utils.AssertEqual(t, ule.Pos, bf.Position{Offset: 2, Line: 1, Column: 3})
}

func TestValidate_UnclosedOpen(t *testing.T) {
	err := bf.Validate("[+")
	utils.AssertError(t, err)
	utils.AssertErrorIs(t, err, bf.ErrUnbalancedLoop)

	var ule *bf.UnbalancedLoopError
	utils.Assert(t, errors.As(err, &ule), "expected an UnbalancedLoopError")
	utils.AssertEqual(t, ule.Command, bf.LoopStart)
	utils.AssertEqual(t, ule.Pos, bf.Position{Offset: 0, Line: 1, Column: 1})
}

func TestValidate_CloseBeforeOpen(t *testing.T) {
	// The counter goes negative on the first command even though the totals
	// balance out.
	err := bf.Validate("][")
	utils.AssertError(t, err)

	var ule *bf.UnbalancedLoopError
	utils.Assert(t, errors.As(err, &ule), "expected an UnbalancedLoopError")
	utils.AssertEqual(t, ule.Command, bf.LoopEnd)
	utils.AssertEqual(t, ule.Pos.Column, 1)
}

func TestValidate_InnermostUnclosed(t *testing.T) {
	// [[] leaves the outer bracket unclosed after the inner pair matches.
	err := bf.Validate("[[]")
	utils.AssertError(t, err)

	var ule *bf.UnbalancedLoopError
	utils.Assert(t, errors.As(err, &ule), "expected an UnbalancedLoopError")
	utils.AssertEqual(t, ule.Command, bf.LoopStart)
	utils.AssertEqual(t, ule.Pos.Offset, 0)
}

func TestValidate_MultilinePosition(t *testing.T) {
	err := bf.Validate("+++\n>>\n  ]")
	utils.AssertError(t, err)

	var ule *bf.UnbalancedLoopError
	utils.Assert(t, errors.As(err, &ule), "expected an UnbalancedLoopError")
	utils.AssertEqual(t, ule.Pos.Line, 3)
	utils.AssertEqual(t, ule.Pos.Column, 3)
}

func TestValidate_BracketsInsideComments(t *testing.T) {
	// Only the eight instruction characters matter; brackets are always
	// instructions, even in the middle of prose.
	err := bf.Validate("this ] looks like prose")
	utils.AssertError(t, err)
}

func TestValidate_ErrorMessage(t *testing.T) {
	err := bf.Validate("[+")
	utils.AssertError(t, err)
	utils.Assert(t, strings.Contains(err.Error(), "unbalanced loop"), "message should name the error kind")
	utils.Assert(t, strings.Contains(err.Error(), "1:1"), "message should include the source position")
}
