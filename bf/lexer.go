package bf

// Command is a single brainfuck instruction. Any rune outside the eight
// instruction characters lexes to Ignore.
type Command rune

const (
	Increment Command = '+'
	Decrement Command = '-'
	Left      Command = '<'
	Right     Command = '>'
	Output    Command = '.'
	Input     Command = ','
	LoopStart Command = '['
	LoopEnd   Command = ']'
	Ignore    Command = ' '
)

func parse(c rune) Command {
	switch c {
	case '+':
		return Increment
	case '-':
		return Decrement
	case '>':
		return Right
	case '<':
		return Left
	case '.':
		return Output
	case ',':
		return Input
	case '[':
		return LoopStart
	case ']':
		return LoopEnd
	default:
		return Ignore
	}
}

func (c Command) String() string {
	switch c {
	case Increment, Decrement, Left, Right, Output, Input, LoopStart, LoopEnd:
		return string(rune(c))
	default:
		return " "
	}
}

// PreLex strips all non-instruction characters from the source. Brainfuck
// programs embed prose as comments; everything outside the eight-character
// alphabet is one.
func PreLex(source string) string {
	var result []rune
	for _, c := range source {
		if parse(c) != Ignore {
			result = append(result, c)
		}
	}
	return string(result)
}

// Lex converts source text into the instruction stream, dropping comments.
func Lex(source string) []Command {
	commands := []Command{}
	for _, c := range source {
		cmd := parse(c)
		if cmd != Ignore {
			commands = append(commands, cmd)
		}
	}
	return commands
}
