package payout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResult номер результата не 1-3 цифры или панна не найдена ни в одном списке
	ErrInvalidResult = errors.New("invalid result number")
	// ErrMissingOpenResult close посчитан без open результата
	ErrMissingOpenResult = errors.New("open result is not declared")
)

// InvalidResultError ошибка формата номера результата
type InvalidResultError struct {
	Number string
	Reason string
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("invalid result number %q: %s", e.Number, e.Reason)
}

func (e *InvalidResultError) Is(target error) bool {
	return target == ErrInvalidResult
}

// MissingOpenResultError close без open. Выплата при этом считается по базе
type MissingOpenResultError struct {
	CloseNumber string
}

func (e *MissingOpenResultError) Error() string {
	return fmt.Sprintf("close result %q computed without open result: base payout only", e.CloseNumber)
}

func (e *MissingOpenResultError) Is(target error) bool {
	return target == ErrMissingOpenResult
}
