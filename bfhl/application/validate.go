package application

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"sync"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	MaxFibonacciInput = 1000
	MaxArrayLength    = 1000
	MaxArrayValue     = 1_000_000
	MaxQuestionLength = 1000
	maxSafeInteger    = 1<<53 - 1
)

// FibonacciInput e QuestionInput são as variantes escalares já decodificadas;
// os limites ficam nas tags para o validator.
type FibonacciInput struct {
	N int64 `validate:"min=0,max=1000"`
}

type QuestionInput struct {
	Question string `validate:"max=1000"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateIntegerArray checa, nesta ordem: formato de array, tamanho mínimo,
// tamanho máximo e cada elemento (inteiro seguro com |v| <= MaxArrayValue).
// O índice inválido vai no erro apenas para log.
func ValidateIntegerArray(raw json.RawMessage, minLength int) ([]int64, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return nil, errors.WithSecondaryError(domain.ErrInvalidShape, err)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, domain.ErrInvalidShape
	}
	if len(items) < minLength {
		return nil, errors.WithDetailf(domain.ErrTooShort, "len=%d min=%d", len(items), minLength)
	}
	if len(items) > MaxArrayLength {
		return nil, errors.WithDetailf(domain.ErrTooLong, "len=%d max=%d", len(items), MaxArrayLength)
	}

	out := make([]int64, len(items))
	for i, item := range items {
		num, ok := item.(json.Number)
		if !ok {
			return nil, errors.Wrapf(domain.ErrOutOfRange, "invalid value at index %d", i)
		}
		n, ok := safeInteger(num)
		if !ok || n > MaxArrayValue || n < -MaxArrayValue {
			return nil, errors.Wrapf(domain.ErrOutOfRange, "invalid value at index %d", i)
		}
		out[i] = n
	}
	return out, nil
}

// ValidateFibonacciInput aceita um inteiro seguro em [0, MaxFibonacciInput].
func ValidateFibonacciInput(raw json.RawMessage) (FibonacciInput, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return FibonacciInput{}, errors.WithSecondaryError(domain.ErrNotInteger, err)
	}
	num, ok := v.(json.Number)
	if !ok {
		return FibonacciInput{}, domain.ErrNotInteger
	}
	n, ok := safeInteger(num)
	if !ok {
		return FibonacciInput{}, errors.WithDetailf(domain.ErrNotInteger, "value %s", num)
	}

	in := FibonacciInput{N: n}
	if err := structValidator().Struct(in); err != nil {
		return FibonacciInput{}, errors.WithSecondaryError(domain.ErrOutOfRange, err)
	}
	return in, nil
}

// ValidateQuestion aceita uma string JSON de até MaxQuestionLength caracteres.
func ValidateQuestion(raw json.RawMessage) (QuestionInput, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return QuestionInput{}, errors.WithSecondaryError(domain.ErrNotString, err)
	}
	q, ok := v.(string)
	if !ok {
		return QuestionInput{}, domain.ErrNotString
	}

	in := QuestionInput{Question: q}
	if err := structValidator().Struct(in); err != nil {
		return QuestionInput{}, errors.WithSecondaryError(domain.ErrOutOfRange, err)
	}
	return in, nil
}

// decodeValue usa UseNumber para não perder a distinção entre 5 e 5.5
// (e para não arredondar inteiros grandes silenciosamente).
func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// safeInteger: número sem parte fracionária e com |v| <= 2^53-1.
// "5.0" e "1e3" são aceitos, como em qualquer cliente JSON que use double.
func safeInteger(num json.Number) (int64, bool) {
	f, err := strconv.ParseFloat(string(num), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int64(f), true
}
