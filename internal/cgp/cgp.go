// Package cgp loads and serializes CGP strings — the crossword-game
// position notation described in spec.md section 6: a single
// whitespace-separated record of board, racks, scores, scoreless-turn
// count, and optional trailing opcode fields. GoSkrafl has no
// position-notation format of its own (a game is always played move
// by move from the start), so this package is grounded directly in
// spec.md's grammar, following internal/layout's parse/serialize
// pairing convention for round-trip fidelity.
package cgp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jvc56/magpie-go/internal/alphabet"
	"github.com/jvc56/magpie-go/internal/board"
)

// Position is a parsed CGP record.
type Position struct {
	Board              [board.Size][board.Size]alphabet.MachineLetter
	Racks              [2]string
	Scores             [2]int
	ScorelessTurns     int
	Opcodes            map[string]string
}

// Parse decodes a CGP string into a Position. The board field is 15
// slash-separated rows, each an alternation of digit runs (consecutive
// empty squares) and letter runs (uppercase natural tiles, lowercase
// blank-designated tiles); racks and scores are slash-separated pairs;
// any "opcode value;" pairs after the fourth field are collected into
// Opcodes verbatim (known keys per original_source/src/impl/cgp.c:
// "lex" lexicon name, "bb" bingo bonus, "ld" letter-distribution name,
// "var" game variant; unrecognized keys are kept rather than dropped).
func Parse(s string, ld *alphabet.LetterDistribution) (*Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, fmt.Errorf("cgp: need at least 4 fields, got %d", len(fields))
	}
	pos := &Position{Opcodes: map[string]string{}}

	rows := strings.Split(fields[0], "/")
	if len(rows) != board.Size {
		return nil, fmt.Errorf("cgp: board has %d rows, want %d", len(rows), board.Size)
	}
	for r, row := range rows {
		col := 0
		i := 0
		for i < len(row) {
			ch := rune(row[i])
			if ch >= '0' && ch <= '9' {
				j := i
				for j < len(row) && row[j] >= '0' && row[j] <= '9' {
					j++
				}
				n, err := strconv.Atoi(row[i:j])
				if err != nil {
					return nil, fmt.Errorf("cgp: row %d: %w", r, err)
				}
				col += n
				i = j
				continue
			}
			if col >= board.Size {
				return nil, fmt.Errorf("cgp: row %d overflows board width", r)
			}
			isBlank := ch >= 'a' && ch <= 'z'
			display := ch
			if isBlank {
				display = ch - 'a' + 'A'
			}
			ml, ok := ld.MachineLetterFor(display)
			if !ok {
				return nil, fmt.Errorf("cgp: row %d has unknown letter %q", r, ch)
			}
			if isBlank {
				ml = ml.Blanked()
			}
			pos.Board[r][col] = ml
			col++
			i++
		}
	}

	racks := strings.Split(fields[1], "/")
	if len(racks) != 2 {
		return nil, fmt.Errorf("cgp: need exactly 2 racks, got %d", len(racks))
	}
	pos.Racks[0], pos.Racks[1] = racks[0], racks[1]

	scores := strings.Split(fields[2], "/")
	if len(scores) != 2 {
		return nil, fmt.Errorf("cgp: need exactly 2 scores, got %d", len(scores))
	}
	for i, s := range scores {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("cgp: bad score %q: %w", s, err)
		}
		pos.Scores[i] = v
	}

	turns, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("cgp: bad scoreless-turn count %q: %w", fields[3], err)
	}
	pos.ScorelessTurns = turns

	rest := strings.Join(fields[4:], " ")
	for _, clause := range strings.Split(rest, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		kv := strings.SplitN(clause, " ", 2)
		key := kv[0]
		val := ""
		if len(kv) == 2 {
			val = strings.TrimSpace(kv[1])
		}
		pos.Opcodes[key] = val
	}
	return pos, nil
}

// String serializes a Position back into CGP text, the inverse of
// Parse, ordering opcodes deterministically by key in alphabetical
// order (sortedKeys) so
// parse -> serialize -> parse round-trips to an equivalent record per
// spec.md section 8.
func (p *Position) String(ld *alphabet.LetterDistribution) string {
	var sb strings.Builder
	for r := 0; r < board.Size; r++ {
		emptyRun := 0
		for c := 0; c < board.Size; c++ {
			ml := p.Board[r][c]
			if ml.IsEmpty() {
				emptyRun++
				continue
			}
			if emptyRun > 0 {
				fmt.Fprintf(&sb, "%d", emptyRun)
				emptyRun = 0
			}
			sb.WriteRune(ld.UserVisible(ml))
		}
		if emptyRun > 0 {
			fmt.Fprintf(&sb, "%d", emptyRun)
		}
		if r < board.Size-1 {
			sb.WriteByte('/')
		}
	}
	fmt.Fprintf(&sb, " %s/%s %d/%d %d", p.Racks[0], p.Racks[1], p.Scores[0], p.Scores[1], p.ScorelessTurns)
	for _, key := range sortedKeys(p.Opcodes) {
		fmt.Fprintf(&sb, " %s %s;", key, p.Opcodes[key])
	}
	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
