package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode декодирует JSON тело запроса в структуру T.
// Неизвестные поля считаются ошибкой
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	if body == nil {
		return payload, errors.New("empty request body")
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty request body")
		}
		return payload, fmt.Errorf("decode request: %w", err)
	}

	return payload, nil
}
