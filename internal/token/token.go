// Package token tokenizes raw Metamath source into whitespace-separated
// runs, eliding $( ... $) comments along the way.
package token

import (
	"io"

	"github.com/alecthomas/participle/lexer"
	"github.com/pkg/errors"
)

// metamathLexer is a single compiled regexp dispatched by named capture
// group. Comment uses (?s) so a $( ... $) block elides in one token
// regardless of how it's wrapped, and its lazy .*? ends the block at the
// first $); Command captures the
// two-character $-prefixed tokens ($c $v $f $e $d $a $p ${ $} $. $=);
// everything else that isn't whitespace falls through to Word.
var metamathLexer = lexer.Must(lexer.Regexp(
	`(\s+)` +
		`|(?P<Comment>(?s)\$\(.*?\$\))` +
		`|(?P<Command>\$[a-zA-Z{}.=])` +
		`|(?P<Word>\S+)`,
))

var commentSymbol = metamathLexer.Symbols()["Comment"]

// Tokenizer produces Metamath's whitespace-separated tokens from a byte
// stream, with one-token lookahead. It holds no database state; callers
// drive it with Peek/Next.
type Tokenizer struct {
	lex     lexer.Lexer
	lookPos lexer.Token
	have    bool
}

// New wraps r for tokenization.
func New(r io.Reader) (*Tokenizer, error) {
	lex, err := metamathLexer.Lex(r)
	if err != nil {
		return nil, errors.Wrap(err, "token: building lexer")
	}
	return &Tokenizer{lex: lex}, nil
}

// Peek returns the next token without consuming it. The second result is
// false once the stream is exhausted.
func (t *Tokenizer) Peek() (string, bool, error) {
	if !t.have {
		tok, err := t.nextRaw()
		if err != nil {
			return "", false, err
		}
		t.lookPos = tok
		t.have = true
	}
	if t.lookPos.Type == lexer.EOF {
		return "", false, nil
	}
	return t.lookPos.Value, true, nil
}

// Next consumes and returns the next token. The second result is false
// once the stream is exhausted.
func (t *Tokenizer) Next() (string, bool, error) {
	val, ok, err := t.Peek()
	if err != nil || !ok {
		return val, ok, err
	}
	t.have = false
	return val, true, nil
}

// nextRaw reads raw lexer tokens, skipping elided comments.
func (t *Tokenizer) nextRaw() (lexer.Token, error) {
	for {
		tok, err := t.lex.Next()
		if err != nil {
			return lexer.Token{}, errors.Wrap(err, "token: reading token")
		}
		if tok.Type == commentSymbol {
			continue
		}
		return tok, nil
	}
}
