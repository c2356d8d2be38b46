package digits

// DigitSum возвращает сумму десятичных цифр числа (138 -> 12)
func DigitSum(n int) int {
	if n < 0 {
		n = -n
	}

	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// LastDigit возвращает последнюю цифру числа
func LastDigit(n int) int {
	if n < 0 {
		n = -n
	}
	return n % 10
}

// MainValue возвращает "основное" значение числа:
// сумма цифр, а если она больше 9 - её последняя цифра (138 -> 12 -> 2)
func MainValue(n int) int {
	sum := DigitSum(n)
	if sum > 9 {
		return sum % 10
	}
	return sum
}
