package bf

import (
	"errors"
	"fmt"
)

// Position of a rune in the raw source. Offset is in bytes, Line and Column
// start at 1.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ErrUnbalancedLoop is matched by every UnbalancedLoopError via errors.Is.
var ErrUnbalancedLoop = errors.New("unbalanced loop")

// UnbalancedLoopError reports the offending bracket: an unmatched LoopEnd, or
// the innermost LoopStart still open at the end of the source.
type UnbalancedLoopError struct {
	Pos     Position
	Command Command
}

func (e *UnbalancedLoopError) Error() string {
	if e.Command == LoopEnd {
		return fmt.Sprintf("unbalanced loop: unmatched ']' at %s", e.Pos)
	}
	return fmt.Sprintf("unbalanced loop: unclosed '[' at %s", e.Pos)
}

func (e *UnbalancedLoopError) Unwrap() error {
	return ErrUnbalancedLoop
}

// Validate checks that the loop brackets of the raw source are balanced.
// Non-instruction characters are ignored, as in Lex. The check is a nesting
// counter kept as a stack of open positions so the error can point at the
// offending bracket.
func Validate(source string) error {
	line, column := 1, 1
	var opens []Position
	for offset, c := range source {
		pos := Position{Offset: offset, Line: line, Column: column}
		switch parse(c) {
		case LoopStart:
			opens = append(opens, pos)
		case LoopEnd:
			if len(opens) == 0 {
				return &UnbalancedLoopError{Pos: pos, Command: LoopEnd}
			}
			opens = opens[:len(opens)-1]
		}
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	if len(opens) > 0 {
		return &UnbalancedLoopError{Pos: opens[len(opens)-1], Command: LoopStart}
	}
	return nil
}
