package parser

import (
	"bytes"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mcncl/jsonshape/internal/errors" // Custom errors package
	"github.com/mcncl/jsonshape/internal/models"
)

// Options controls how numbers are classified while decoding.
type Options struct {
	// BigIntegerForInts decodes every integer as an arbitrary-precision integer.
	BigIntegerForInts bool
	// BigDecimalForFloats decodes fractional numbers as arbitrary-precision decimals
	// instead of double-precision floats.
	BigDecimalForFloats bool
}

// Parse decodes a single JSON value from an io.Reader into a models.Value.
// Object members keep their source order.
func Parse(reader io.Reader, opts Options) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read JSON input", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Value{}, errors.NewInputError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Keep the number text so its subtype can be chosen here

	tok, err := decoder.Token()
	if err != nil {
		return models.Value{}, wrapDecodeError(err)
	}

	d := &decoding{dec: decoder, opts: opts}
	root, err := d.value(tok)
	if err != nil {
		return models.Value{}, err
	}

	// Anything but EOF after the root value is either trailing garbage or a second document.
	if _, err := decoder.Token(); err == nil {
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewParsingError("invalid trailing data after first JSON value", fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err))
	}

	// Token does not check ',' and ':' placement.
	if !json.Valid(data) {
		return models.Value{}, errors.NewParsingError("missing or misplaced ',' or ':' separator", errors.ErrInvalidJSON)
	}

	return root, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts Options) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString), opts)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string, opts Options) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, opts)
}

type decoding struct {
	dec  *json.Decoder
	opts Options
}

func (d *decoding) next() (json.Token, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return nil, wrapDecodeError(err)
	}
	return tok, nil
}

// value converts the token that starts a JSON value, consuming the rest of
// the value when it is a container.
func (d *decoding) value(tok json.Token) (models.Value, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return d.object()
		case '[':
			return d.array()
		default:
			return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected delimiter '%s'", v), errors.ErrInvalidJSON)
		}
	case string:
		return models.String(v), nil
	case json.Number:
		return models.Number(string(v), NumberKind(string(v), d.opts)), nil
	case float64:
		text := strconv.FormatFloat(v, 'g', -1, 64)
		return models.Number(text, NumberKind(text, d.opts)), nil
	case bool:
		return models.Bool(v), nil
	case nil:
		return models.Null(), nil
	default:
		return models.Opaque(v), nil
	}
}

func (d *decoding) object() (models.Value, error) {
	obj := models.Object()
	for {
		tok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return models.Value{}, errors.NewParsingError(fmt.Sprintf("expected object key, got %v", tok), errors.ErrInvalidJSON)
		}
		tok, err = d.next()
		if err != nil {
			return models.Value{}, err
		}
		val, err := d.value(tok)
		if err != nil {
			return models.Value{}, err
		}
		obj.Members = append(obj.Members, models.Member{Key: key, Value: val})
	}
}

func (d *decoding) array() (models.Value, error) {
	arr := models.Array()
	for {
		tok, err := d.next()
		if err != nil {
			return models.Value{}, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return arr, nil
		}
		val, err := d.value(tok)
		if err != nil {
			return models.Value{}, err
		}
		arr.Elements = append(arr.Elements, val)
	}
}

// NumberKind picks the numeric subtype of a JSON number. Integers are Int when
// they fit 32 bits, Long when they fit 64 bits and BigInteger otherwise; any
// number with a fraction or exponent is Double (or Decimal).
func NumberKind(text string, opts Options) models.NumberKind {
	if strings.ContainsAny(text, ".eE") {
		if opts.BigDecimalForFloats {
			return models.NumberDecimal
		}
		return models.NumberDouble
	}
	if opts.BigIntegerForInts {
		return models.NumberBigInteger
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return models.NumberBigInteger
	}
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return models.NumberInt
	}
	return models.NumberLong
}

func wrapDecodeError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err),
		)
	}
	return errors.NewParsingError("failed to decode JSON", fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err))
}
