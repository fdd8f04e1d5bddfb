package grammem

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPartOfSpeech is wrapped by every PartOfSpeechError.
	ErrUnknownPartOfSpeech = errors.New("unknown part of speech")
	// ErrUnknownFact is wrapped by every GrammemError.
	ErrUnknownFact = errors.New("unknown grammeme")
)

// PartOfSpeechError reports a tag whose head is missing or not a known code.
type PartOfSpeechError struct {
	Code string
	Tag  string
}

func (e *PartOfSpeechError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("missing part of speech in tag %q", e.Tag)
	}
	return fmt.Sprintf("unknown part of speech %q in tag %q", e.Code, e.Tag)
}

func (e *PartOfSpeechError) Unwrap() error { return ErrUnknownPartOfSpeech }

// GrammemError reports a fact code that is not in the fact table.
type GrammemError struct {
	Code string
	Tag  string
}

func (e *GrammemError) Error() string {
	return fmt.Sprintf("unknown grammeme %q in tag %q", e.Code, e.Tag)
}

func (e *GrammemError) Unwrap() error { return ErrUnknownFact }
