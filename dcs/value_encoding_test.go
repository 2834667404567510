package dcs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTupleEncodingRoundTrip(t *testing.T) {
	set := NewDenotation(T("los angeles"), T("san diego"))
	tuples := []Tuple{
		T("ca"),
		T("los angeles", 2966850),
		T("ca", 158.0e3, true),
		T(set, 2),
		T(-42, "", false),
	}

	for _, tuple := range tuples {
		t.Run(tuple.String(), func(t *testing.T) {
			enc, err := EncodeTuple(tuple)
			require.NoError(t, err)

			got, err := DecodeTuple(enc)
			require.NoError(t, err)
			require.Len(t, got, len(tuple))
			for i := range tuple {
				assert.True(t, ValuesEqual(tuple[i], got[i]), "column %d: %v != %v", i, tuple[i], got[i])
			}
		})
	}
}

func TestEncodingIsDeterministicForSets(t *testing.T) {
	a, err := EncodeTuple(T(NewDenotation(T("x"), T("y"))))
	require.NoError(t, err)
	b, err := EncodeTuple(T(NewDenotation(T("y"), T("x"))))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(a, b))
}

func TestEncodeRejectsUnknownValues(t *testing.T) {
	_, err := EncodeTuple(Tuple{struct{}{}})
	assert.Error(t, err)

	_, err = EncodeTuple(T(Universal()))
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	enc, err := EncodeTuple(T("houston", 1595138))
	require.NoError(t, err)

	_, err = DecodeTuple(enc[:len(enc)-3])
	assert.Error(t, err)

	_, err = DecodeTuple(nil)
	assert.Error(t, err)
}

func TestTupleString(t *testing.T) {
	assert.Equal(t, "(ca,)", T("ca").String())
	assert.Equal(t, "(dog, poodle)", T("dog", "poodle").String())
}
