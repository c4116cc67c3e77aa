package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// signature is the FIGfont 2 magic tag; the hardblank follows it directly
	signature = "flf2a"
	// minHeaderFields is the number of required numeric fields after the signature
	minHeaderFields = 5
	utf8BOM         = "\uFEFF"
)

// Header holds the scalars decoded from the first line of a font.
type Header struct {
	// Signature is the magic tag, always "flf2a"
	Signature string

	// Hardblank is the sub-character that prints as a space but blocks smushing
	Hardblank rune

	// Height is the number of rows in every glyph
	Height int

	// Baseline is the number of rows from the top to the baseline
	Baseline int

	// MaxLength is the maximum row length declared by the font
	MaxLength int

	// OldLayout is the legacy layout field (-1..63 in practice)
	OldLayout int

	// CommentLines is the number of comment lines after the header
	CommentLines int

	// PrintDirection is 0 for left-to-right, 1 for right-to-left
	PrintDirection int

	// FullLayout is the 16-bit layout field; FullLayoutSet is false when absent
	FullLayout    int
	FullLayoutSet bool

	// CodetagCount is the number of code-tagged characters, if declared
	CodetagCount    int
	CodetagCountSet bool

	// Rules is the layout resolved from OldLayout and FullLayout
	Rules FittingRules
}

var errNotANumber = errors.New("not a number")

// ParseHeaderLine decodes a FIGfont header line such as
//
//	flf2a$ 6 5 16 15 11 0 24463 229
//
// Any missing or malformed field yields a *FontHeaderError.
func ParseHeaderLine(line string) (*Header, error) {
	line = strings.TrimPrefix(line, utf8BOM)
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, &FontHeaderError{Field: "signature"}
	}

	h := &Header{}
	if err := parseSignature(line, h); err != nil {
		return nil, err
	}

	// Skip the tag and the hardblank, which may be any rune including a digit
	_, size := utf8.DecodeRuneInString(line[len(signature):])
	fields := strings.Fields(line[len(signature)+size:])
	if len(fields) < minHeaderFields {
		names := [minHeaderFields]string{"height", "baseline", "max length", "old layout", "comment lines"}
		return nil, &FontHeaderError{Field: names[len(fields)]}
	}

	if err := parseRequiredFields(fields, h); err != nil {
		return nil, err
	}
	if err := parseOptionalFields(fields, h); err != nil {
		return nil, err
	}

	h.Rules = ResolveFittingRules(int8(h.OldLayout), uint16(h.FullLayout), h.FullLayoutSet)
	return h, nil
}

func parseSignature(line string, h *Header) error {
	if !strings.HasPrefix(line, signature) {
		tag := line
		if len(tag) > len(signature) {
			tag = tag[:len(signature)]
		}
		return &FontHeaderError{Field: "signature", Value: tag, Err: errors.New("expected flf2a")}
	}
	hardblank, size := utf8.DecodeRuneInString(line[len(signature):])
	if size == 0 {
		return &FontHeaderError{Field: "hardblank"}
	}
	if hardblank == utf8.RuneError && size == 1 {
		return &FontHeaderError{Field: "hardblank", Value: line[len(signature) : len(signature)+1],
			Err: errors.New("invalid UTF-8")}
	}
	switch hardblank {
	case ' ', '\t', '\r', '\n', 0:
		return &FontHeaderError{Field: "hardblank", Value: strconv.QuoteRune(hardblank),
			Err: errors.New("cannot be blank, CR, LF or NUL")}
	}
	h.Signature = signature
	h.Hardblank = hardblank
	return nil
}

// atoiField parses a decimal field and checks it is at least min.
func atoiField(field, value string, min int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &FontHeaderError{Field: field, Value: value, Err: errNotANumber}
	}
	if n < min {
		return 0, &FontHeaderError{Field: field, Value: value, Err: errors.New("must be at least " + strconv.Itoa(min))}
	}
	return n, nil
}

func parseRequiredFields(fields []string, h *Header) error {
	var err error
	if h.Height, err = atoiField("height", fields[0], 1); err != nil {
		return err
	}
	if h.Baseline, err = atoiField("baseline", fields[1], 0); err != nil {
		return err
	}
	if h.Baseline > h.Height {
		return &FontHeaderError{Field: "baseline", Value: fields[1], Err: errors.New("exceeds height")}
	}
	if h.MaxLength, err = atoiField("max length", fields[2], 0); err != nil {
		return err
	}

	old, perr := strconv.ParseInt(fields[3], 10, 8)
	if perr != nil {
		return &FontHeaderError{Field: "old layout", Value: fields[3], Err: errNotANumber}
	}
	h.OldLayout = int(old)

	if h.CommentLines, err = atoiField("comment lines", fields[4], 0); err != nil {
		return err
	}
	return nil
}

func parseOptionalFields(fields []string, h *Header) error {
	const (
		printDirectionField = 5
		fullLayoutField     = 6
		codetagCountField   = 7
	)

	if len(fields) > printDirectionField {
		dir, err := atoiField("print direction", fields[printDirectionField], 0)
		if err != nil {
			return err
		}
		if dir > 1 {
			return &FontHeaderError{Field: "print direction", Value: fields[printDirectionField],
				Err: errors.New("must be 0 or 1")}
		}
		h.PrintDirection = dir
	}

	if len(fields) > fullLayoutField {
		full, err := strconv.ParseUint(fields[fullLayoutField], 10, 16)
		if err != nil {
			return &FontHeaderError{Field: "full layout", Value: fields[fullLayoutField], Err: errNotANumber}
		}
		h.FullLayout = int(full)
		h.FullLayoutSet = true
	}

	if len(fields) > codetagCountField {
		n, err := atoiField("codetag count", fields[codetagCountField], 0)
		if err != nil {
			return err
		}
		h.CodetagCount = n
		h.CodetagCountSet = true
	}

	return nil
}
