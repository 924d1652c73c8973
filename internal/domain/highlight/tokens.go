package highlight

import (
	"github.com/corey/semhl/internal/domain/scoped"
	"github.com/corey/semhl/internal/ports"
)

// TokenPack owns the frontend token array for one range and the decoded
// tokens, in file order. Every token the frontend returns is kept.
type TokenPack struct {
	array  *scoped.Resource[ports.TokenArray]
	tokens []ports.Token
}

// NewTokenPack lexes rng with a single batch call and decodes every token.
// The caller must Release the pack before the translation unit.
func NewTokenPack(frontend ports.Frontend, tu ports.TranslationUnitHandle, rng ports.SourceRange) (*TokenPack, error) {
	array, err := scoped.Acquire("tokens",
		func() ports.TokenArray { return frontend.Tokenize(tu, rng) },
		validTokenArray,
		func(a ports.TokenArray) { frontend.DisposeTokens(tu, a) },
	)
	if err != nil {
		return nil, newFailure(AcquisitionFailure, err)
	}

	arr := array.Handle()
	tokens := make([]ports.Token, arr.Count)
	for i := range tokens {
		tokens[i] = frontend.Token(tu, arr, i)
	}
	return &TokenPack{array: array, tokens: tokens}, nil
}

// An empty file lexes to a null array with no tokens; a null array that
// claims tokens is broken.
func validTokenArray(a ports.TokenArray) bool {
	if a.Count < 0 {
		return false
	}
	return a.Pointer != 0 || a.Count == 0
}

// Len returns the number of tokens.
func (p *TokenPack) Len() int { return len(p.tokens) }

// Tokens returns the decoded tokens. The slice is shared; do not modify it.
func (p *TokenPack) Tokens() []ports.Token { return p.tokens }

// Array returns the raw frontend array, still owned by the pack.
func (p *TokenPack) Array() ports.TokenArray { return p.array.Handle() }

// Release disposes the frontend array. Decoded tokens stay readable.
func (p *TokenPack) Release() { p.array.Release() }
