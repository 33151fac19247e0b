// Package gcg implements a minimal, read-only reader for the GCG
// line-oriented game-record format described in spec.md section 6:
// player declaration lines, numbered move lines carrying rack,
// position, word, score, and cumulative score, plus pragma lines for
// notes/challenges/exchanges/time penalties. Full GCG semantics (reply
// validation, challenge adjudication, time-penalty application) are an
// explicit spec.md Non-goal; this package exposes only what replaying
// a game into internal/game needs, grounded in GoSkrafl's
// MoveItem{RackBefore, Move} record shape (game.go) generalized from
// an in-memory move list to a text line format. Anything this package
// cannot interpret (pragmas, notes, challenges) is preserved verbatim
// as an opaque trailer rather than discarded, so a caller that only
// wants the move stream never silently loses data it didn't ask for.
package gcg

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jvc56/magpie-go/internal/magpierr"
)

// PlayerLine is a ">player_number|nickname|real_name" style
// declaration, or the abbreviated form GCG files commonly use.
type PlayerLine struct {
	Number   int
	Nickname string
	RealName string
}

// MoveLine is one numbered move record: the rack the player held
// before the move, the board position/word notation as written in the
// file, the move's raw score, and the running cumulative score.
// Position/word are kept as the file's own notation rather than
// parsed into a board.Board, since interpreting coordinate notation
// without a fixed board/lexicon context is outside this package's
// scope (the caller replays it through internal/game, which already
// knows how to validate a play).
type MoveLine struct {
	PlayerNumber int
	RackBefore   string
	Position     string
	Word         string
	Score        int
	Cumulative   int
}

// ExchangeLine is a numbered exchange (rack held, tiles exchanged).
type ExchangeLine struct {
	PlayerNumber int
	RackBefore   string
	Tiles        string
	Cumulative   int
}

// PassLine is a numbered pass.
type PassLine struct {
	PlayerNumber int
	RackBefore   string
	Cumulative   int
}

// Pragma is any line this package does not interpret further (notes,
// challenges, time penalties, and unrecognized directives), kept
// verbatim per the package doc comment's no-silent-loss policy.
type Pragma struct {
	Raw string
}

// Game is the sequence of records parsed from one GCG file, in file
// order; a caller replays MoveLine/ExchangeLine/PassLine entries
// through internal/game and re-emits Pragma entries unchanged if it
// needs a round-trippable copy.
type Game struct {
	Players []PlayerLine
	Moves   []interface{} // one of *MoveLine, *ExchangeLine, *PassLine, *Pragma
}

// Parse reads a GCG file's text into a Game. It tolerates any line it
// cannot classify by keeping it as a Pragma rather than failing the
// whole parse, since spec.md section 7 classifies CGP/GCG problems
// (wrong row/column counts, malformed racks) as recoverable parse
// errors, not a reason to abandon the rest of a file.
func Parse(text string) (*Game, error) {
	g := &Game{}
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, ">"):
			if pl, ok := parsePlayerLine(line); ok {
				g.Players = append(g.Players, pl)
				continue
			}
			if rec, ok := parseMoveLine(line); ok {
				g.Moves = append(g.Moves, rec)
				continue
			}
			g.Moves = append(g.Moves, &Pragma{Raw: line})
		case strings.HasPrefix(line, "#"):
			g.Moves = append(g.Moves, &Pragma{Raw: line})
		default:
			g.Moves = append(g.Moves, &Pragma{Raw: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, magpierr.Wrap(magpierr.CGPParse, fmt.Sprintf("reading GCG at line %d", lineNo), err)
	}
	return g, nil
}

// parsePlayerLine recognizes ">1|nickname|Real Name" declaration
// lines (no move fields following the pipe-separated name fields).
func parsePlayerLine(line string) (PlayerLine, bool) {
	body := strings.TrimPrefix(line, ">")
	parts := strings.SplitN(body, "|", 3)
	if len(parts) < 2 {
		return PlayerLine{}, false
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return PlayerLine{}, false
	}
	pl := PlayerLine{Number: num, Nickname: strings.TrimSpace(parts[1])}
	if len(parts) == 3 {
		// A move line also starts with ">N|rack|...", so only accept
		// this as a player declaration if the third field is not
		// itself a numeric/move-shaped continuation.
		if looksLikeMoveContinuation(parts[2]) {
			return PlayerLine{}, false
		}
		pl.RealName = strings.TrimSpace(parts[2])
	}
	return pl, true
}

func looksLikeMoveContinuation(field string) bool {
	return strings.Contains(field, "|")
}

// parseMoveLine recognizes ">N|rack|position|word|score|cumulative",
// ">N|rack|-exchangedTiles|score|cumulative", or ">N|rack|-|score|cumulative"
// (pass), the three numbered-turn record shapes spec.md section 6
// names.
func parseMoveLine(line string) (interface{}, bool) {
	body := strings.TrimPrefix(line, ">")
	fields := strings.Split(body, "|")
	if len(fields) < 4 {
		return nil, false
	}
	num, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, false
	}
	rackBefore := strings.TrimSpace(fields[1])

	last := strings.TrimSpace(fields[len(fields)-1])
	cumulative, err := strconv.Atoi(last)
	if err != nil {
		return nil, false
	}

	if len(fields) == 5 && strings.TrimSpace(fields[2]) == "-" {
		return &PassLine{PlayerNumber: num, RackBefore: rackBefore, Cumulative: cumulative}, true
	}
	if len(fields) == 5 && strings.HasPrefix(strings.TrimSpace(fields[2]), "-") {
		return &ExchangeLine{
			PlayerNumber: num,
			RackBefore:   rackBefore,
			Tiles:        strings.TrimPrefix(strings.TrimSpace(fields[2]), "-"),
			Cumulative:   cumulative,
		}, true
	}
	if len(fields) == 6 {
		score, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			return nil, false
		}
		return &MoveLine{
			PlayerNumber: num,
			RackBefore:   rackBefore,
			Position:     strings.TrimSpace(fields[2]),
			Word:         strings.TrimSpace(fields[3]),
			Score:        score,
			Cumulative:   cumulative,
		}, true
	}
	return nil, false
}
