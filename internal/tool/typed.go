package tool

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by request types that check themselves.
type Validator interface {
	Validate() error
}

// Typed adapts a function taking a decoded request struct into a Func.
// The input map is decoded with mapstructure, so Req fields use
// `mapstructure:"..."` tags for their wire names.
func Typed[Req, Resp any](fn func(context.Context, Req) (Resp, error)) Func {
	return func(ctx context.Context, name string, input map[string]any) (any, error) {
		var req Req

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &req,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(input); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}

		if v, ok := any(req).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("%s validation failed: %w", name, err)
			}
		}

		return fn(ctx, req)
	}
}
