package document

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode unpacks the data entries of a document value into target, which
// must be a pointer to a struct or map. Nested containers decode
// recursively; link entries are skipped. Struct fields may use
// "mapstructure" tags to rename keys.
func Decode(v Value, target any) error {
	native := ToNative(v)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := decoder.Decode(native); err != nil {
		return fmt.Errorf("decoding document data: %w", err)
	}
	return nil
}
