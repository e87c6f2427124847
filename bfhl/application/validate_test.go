package application

import (
	"encoding/json"
	"strings"
	"testing"

	"bfhl-service/bfhl/domain"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestValidateIntegerArray(t *testing.T) {
	tooLong := "[" + strings.TrimSuffix(strings.Repeat("1,", MaxArrayLength+1), ",") + "]"
	maxLen := "[" + strings.TrimSuffix(strings.Repeat("7,", MaxArrayLength), ",") + "]"

	cases := []struct {
		name      string
		in        string
		minLength int
		want      []int64
		wantErr   error
	}{
		{name: "ok", in: `[2,3,4]`, minLength: 1, want: []int64{2, 3, 4}},
		{name: "empty allowed", in: `[]`, minLength: 0, want: []int64{}},
		{name: "integral float", in: `[5.0, 1e3]`, minLength: 1, want: []int64{5, 1000}},
		{name: "bounds inclusive", in: `[1000000,-1000000]`, minLength: 1, want: []int64{1000000, -1000000}},
		{name: "max length", in: maxLen, minLength: 1},
		{name: "not array", in: `5`, minLength: 0, wantErr: domain.ErrInvalidShape},
		{name: "object", in: `{"a":1}`, minLength: 0, wantErr: domain.ErrInvalidShape},
		{name: "null", in: `null`, minLength: 0, wantErr: domain.ErrInvalidShape},
		{name: "empty rejected", in: `[]`, minLength: 1, wantErr: domain.ErrTooShort},
		{name: "too long", in: tooLong, minLength: 1, wantErr: domain.ErrTooLong},
		{name: "fraction", in: `[1, 2.5]`, minLength: 1, wantErr: domain.ErrOutOfRange},
		{name: "string element", in: `[1, "2"]`, minLength: 1, wantErr: domain.ErrOutOfRange},
		{name: "above bound", in: `[1000001]`, minLength: 1, wantErr: domain.ErrOutOfRange},
		{name: "below bound", in: `[-1000001]`, minLength: 1, wantErr: domain.ErrOutOfRange},
		{name: "unsafe integer", in: `[9007199254740993]`, minLength: 1, wantErr: domain.ErrOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateIntegerArray(raw(tc.in), tc.minLength)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				assert.True(t, domain.IsBadRequest(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if tc.want != nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestValidateIntegerArray_ReportsIndexInternally(t *testing.T) {
	_, err := ValidateIntegerArray(raw(`[1, 2, true]`), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 2")
}

func TestValidateFibonacciInput(t *testing.T) {
	for _, in := range []string{`0`, `5`, `1000`, `10.0`} {
		_, err := ValidateFibonacciInput(raw(in))
		assert.NoErrorf(t, err, "input %s", in)
	}

	bad := map[string]error{
		`-1`:      domain.ErrOutOfRange,
		`1001`:    domain.ErrOutOfRange,
		`2.5`:     domain.ErrNotInteger,
		`"5"`:     domain.ErrNotInteger,
		`null`:    domain.ErrNotInteger,
		`[5]`:     domain.ErrNotInteger,
		`1e400`:   domain.ErrNotInteger,
		`{"n":1}`: domain.ErrNotInteger,
	}
	for in, want := range bad {
		_, err := ValidateFibonacciInput(raw(in))
		require.Errorf(t, err, "input %s", in)
		assert.Truef(t, errors.Is(err, want), "input %s: got %v", in, err)
		assert.True(t, domain.IsBadRequest(err))
	}
}

func TestValidateQuestion(t *testing.T) {
	in, err := ValidateQuestion(raw(`"What is the capital of France?"`))
	require.NoError(t, err)
	assert.Equal(t, "What is the capital of France?", in.Question)

	_, err = ValidateQuestion(raw(`""`))
	assert.NoError(t, err)

	limit, _ := json.Marshal(strings.Repeat("a", MaxQuestionLength))
	_, err = ValidateQuestion(limit)
	assert.NoError(t, err)

	tooLong, _ := json.Marshal(strings.Repeat("a", MaxQuestionLength+1))
	_, err = ValidateQuestion(tooLong)
	assert.True(t, errors.Is(err, domain.ErrOutOfRange))

	_, err = ValidateQuestion(raw(`42`))
	assert.True(t, errors.Is(err, domain.ErrNotString))
}

func TestValidateQuestion_CountsCharactersNotBytes(t *testing.T) {
	// 600 emoji: 2400 bytes, 1200 unidades UTF-16, 600 caracteres
	emoji, _ := json.Marshal(strings.Repeat("😀", 600))
	_, err := ValidateQuestion(emoji)
	assert.NoError(t, err)

	accented, _ := json.Marshal(strings.Repeat("é", MaxQuestionLength+1))
	_, err = ValidateQuestion(accented)
	assert.True(t, errors.Is(err, domain.ErrOutOfRange))
}
