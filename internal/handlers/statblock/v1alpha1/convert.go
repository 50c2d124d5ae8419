package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	entity "github.com/KirkDiggler/statblock-api/internal/entities/statblock"
	"github.com/KirkDiggler/statblock-api/internal/errors"
)

// StructFromJSON decodes a JSON object into a Struct
func StructFromJSON(data []byte) (*structpb.Struct, error) {
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "expected a JSON object")
	}
	return out, nil
}

// StructFromValue encodes v as JSON and decodes it into a Struct
func StructFromValue(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return StructFromJSON(data)
}

// DecodeStruct decodes a Struct into v through its JSON form. A nil Struct leaves v unchanged.
func DecodeStruct(s *structpb.Struct, v any) error {
	if s == nil {
		return nil
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request")
	}
	return nil
}

// RecordToStruct converts a record to its stored JSON form as a Struct
func RecordToStruct(record *entity.Record) (*structpb.Struct, error) {
	data, err := entity.Encode(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode stat block")
	}
	return StructFromJSON(data)
}
