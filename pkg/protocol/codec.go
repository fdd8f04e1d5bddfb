package protocol

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/aretw0/mystem/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Token is one element of the response array before tag decoding.
type Token struct {
	Text     string     `mapstructure:"text"`
	Analysis []Analysis `mapstructure:"analysis"`
}

// Analysis is one raw candidate: lemma, tag string and optional weight.
type Analysis struct {
	Lex string `mapstructure:"lex"`
	Gr  string `mapstructure:"gr"`
	// Wt is nil when the worker omitted the weight.
	Wt   *float64 `mapstructure:"wt"`
	Qual string   `mapstructure:"qual"`
}

// Weight returns Wt or domain.DefaultWeight.
func (a Analysis) Weight() float64 {
	if a.Wt == nil {
		return domain.DefaultWeight
	}
	return *a.Wt
}

var errNotArray = errors.New("response is not a JSON array")

// EncodeRequest returns the bytes written to the worker for one sanitized line.
func EncodeRequest(line string) []byte {
	return []byte(line + "\n")
}

// DecodeResponse parses one response line into tokens.
// The trailing newline, if any, is ignored.
func DecodeResponse(line string) ([]Token, error) {
	line = strings.TrimRight(line, "\r\n")

	var envelope []any
	if err := json.Unmarshal([]byte(line), &envelope); err != nil {
		return nil, &domain.ResponseDecodeError{Line: line, Err: err}
	}
	if envelope == nil {
		// "null" decodes without error but is not a token array.
		return nil, &domain.ResponseDecodeError{Line: line, Err: errNotArray}
	}

	tokens := make([]Token, 0, len(envelope))
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &tokens,
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(envelope); err != nil {
		return nil, &domain.ResponseDecodeError{Line: line, Err: err}
	}
	return tokens, nil
}
