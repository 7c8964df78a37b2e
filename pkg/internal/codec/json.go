package codec

import (
	"encoding/json"
	"io"

	"github.com/joeydtaylor/framefit/pkg/internal/types"
)

// RecordEncoder writes sample records as newline-delimited JSON.
type RecordEncoder struct {
	enc *json.Encoder
}

// RecordDecoder reads newline-delimited JSON sample records.
type RecordDecoder struct {
	dec *json.Decoder
}

func NewRecordEncoder(w io.Writer) *RecordEncoder {
	return &RecordEncoder{enc: json.NewEncoder(w)}
}

func NewRecordDecoder(r io.Reader) *RecordDecoder {
	return &RecordDecoder{dec: json.NewDecoder(r)}
}

// Encode writes one record followed by a newline.
func (e *RecordEncoder) Encode(rec types.SampleRecord) error {
	return e.enc.Encode(rec)
}

// Decode reads the next record. It returns io.EOF when the stream is exhausted.
func (d *RecordDecoder) Decode() (types.SampleRecord, error) {
	var rec types.SampleRecord
	err := d.dec.Decode(&rec)
	return rec, err
}

// DecodeAll reads records until EOF.
func (d *RecordDecoder) DecodeAll() ([]types.SampleRecord, error) {
	var out []types.SampleRecord
	for {
		rec, err := d.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
