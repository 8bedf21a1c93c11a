package bf_test

import (
	"testing"

	"github.com/MarcinKonowalczyk/jitbf/bf"
	"github.com/MarcinKonowalczyk/jitbf/utils"
)

func TestPreLex(t *testing.T) {
	input := "++\n\n--<    >.,[hello sailor]"
	expected := "++--<>.,[]"
	result := bf.PreLex(input)
	utils.AssertEqual(t, result, expected)
}

func TestLex(t *testing.T) {
	input := "+-<>.,[]"
	expected := []bf.Command{
		bf.Increment,
		bf.Decrement,
		bf.Left,
		bf.Right,
		bf.Output,
		bf.Input,
		bf.LoopStart,
		bf.LoopEnd,
	}
	result := bf.Lex(input)
	utils.AssertEqualArrays(t, expected, result)
}

func TestLex_Comments(t *testing.T) {
	input := "add one + then print . done"
	expected := []bf.Command{bf.Increment, bf.Output}
	result := bf.Lex(input)
	utils.AssertEqualArrays(t, expected, result)
}

func TestLex_Empty(t *testing.T) {
	result := bf.Lex("no instructions here at all")
	utils.AssertEqual(t, len(result), 0)
}

func TestCommand_String(t *testing.T) {
	utils.AssertEqual(t, bf.Increment.String(), "+")
	utils.AssertEqual(t, bf.LoopEnd.String(), "]")
	utils.AssertEqual(t, bf.Ignore.String(), " ")
	utils.AssertEqual(t, bf.Command('x').String(), " ")
}
