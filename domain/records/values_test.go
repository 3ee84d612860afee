package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "22.0", want: "22.0"},
		{input: " 689418 ", want: "689418"},
		{input: "-1.5e3", want: "-1.5E+3"},
		{input: ".5", want: "0.5"},
		{input: "+7", want: "7"},
		{input: "1e400", want: "1E+400"},
		{input: "0.000001", want: "0.000001"},
		{input: "12345678901234567890.123", want: "12345678901234567890.123"},
		{input: "v1", wantErr: true},
		{input: "", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "Inf", wantErr: true},
		{input: "-Infinity", wantErr: true},
		{input: "0x1p-2", wantErr: true},
		{input: "0x10", wantErr: true},
		{input: "1_000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDecimal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDecimal_Truncate(t *testing.T) {
	tests := map[string]int64{
		"689418.0":               689418,
		"689418.9":               689418,
		"-3.7":                   -3,
		"0.25":                   0,
		"1e3":                    1000,
		"12345678901":            12345678901,
		"-0.5":                   0,
		"9.99999999999999999999": 9,
	}
	for input, want := range tests {
		n, err := MustDecimal(input).Truncate()
		require.NoError(t, err, input)
		assert.Equal(t, want, n, input)
	}

	_, err := MustDecimal("1e30").Truncate()
	assert.Error(t, err)
	_, err = MustDecimal("1e400").Truncate()
	assert.Error(t, err)
}

func TestDecimal_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Decimal{"a": MustDecimal("22.0"), "b": MustDecimal("1e3")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"22.0","b":"1E+3"}`, string(out))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-10-02")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2023, 10, 2), d)

	d, err = ParseDate("2023-10-02T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2023, 10, 2), d)

	_, err = ParseDate("2023-10-02T10:30:00")
	assert.Error(t, err)
	_, err = ParseDate("10/02/2023")
	assert.Error(t, err)
}

func TestCoerce(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		s, err := coerce[string]("abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", s)

		_, err = coerce[string](json.Number("1"))
		assert.Error(t, err)
		_, err = coerce[string](true)
		assert.Error(t, err)
	})

	t.Run("decimal", func(t *testing.T) {
		for _, raw := range []any{json.Number("1.0"), "1.0", 1.0} {
			d, err := coerce[Decimal](raw)
			require.NoError(t, err, "%v", raw)
			assert.Equal(t, 1.0, d.Float64())
		}
		_, err := coerce[Decimal](true)
		assert.Error(t, err)
		_, err = coerce[Decimal]("one")
		assert.Error(t, err)
	})

	t.Run("bool", func(t *testing.T) {
		truthy := []any{true, json.Number("1"), json.Number("1.0"), "yes", "TRUE", "on", "t", "1"}
		for _, raw := range truthy {
			b, err := coerce[bool](raw)
			require.NoError(t, err, "%v", raw)
			assert.True(t, b, "%v", raw)
		}
		falsy := []any{false, json.Number("0"), "no", "False", "off", "f", "0"}
		for _, raw := range falsy {
			b, err := coerce[bool](raw)
			require.NoError(t, err, "%v", raw)
			assert.False(t, b, "%v", raw)
		}
		for _, raw := range []any{json.Number("2"), "maybe", "x"} {
			_, err := coerce[bool](raw)
			assert.Error(t, err, "%v", raw)
		}
	})

	t.Run("date", func(t *testing.T) {
		d, err := coerce[Date]("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", d.String())

		_, err = coerce[Date](json.Number("20240229"))
		assert.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := coerce[int]("1")
		assert.Error(t, err)
	})
}

func TestField(t *testing.T) {
	var null Field[string]
	assert.True(t, null.IsNull())
	assert.Nil(t, null.Interface())
	assert.Equal(t, "<null>", null.String())
	out, err := json.Marshal(null)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	assert.True(t, Unchecked[Decimal](nil).IsNull())

	var f Field[Decimal]
	require.NoError(t, f.bind(json.Number("3.0")))
	got, ok := f.Get()
	require.True(t, ok)
	assert.Equal(t, "3.0", got.String())

	require.NoError(t, f.bind(nil))
	assert.True(t, f.IsNull())

	assert.Error(t, f.bind("three"))
}
