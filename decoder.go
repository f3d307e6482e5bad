package dragonball

// Decoder turns raw response bytes into a typed value. Decoders returning an
// *APIError have it forwarded, with the request path filled in when the error
// carries no URL; any other error becomes ParseData.
type Decoder[T any] func(data []byte) (T, error)

// NoContent discards the response bytes.
func NoContent(_ []byte) (struct{}, error) {
	return struct{}{}, nil
}

// RawBytes returns the response bytes unchanged.
func RawBytes(data []byte) ([]byte, error) {
	return data, nil
}

// JSON decodes the response with the default codec.
func JSON[T any]() Decoder[T] {
	return DecodeWith[T](DefaultCodec)
}

// DecodeWith decodes the response with codec.
func DecodeWith[T any](codec Codec) Decoder[T] {
	return func(data []byte) (T, error) {
		var v T
		if err := codec.Unmarshal(data, &v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// NonEmpty wraps a list decoder so that a successful but empty list fails
// with EmptyCollection.
func NonEmpty[E any](dec Decoder[[]E]) Decoder[[]E] {
	return func(data []byte) ([]E, error) {
		list, err := dec(data)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, ErrEmptyCollection
		}
		return list, nil
	}
}
