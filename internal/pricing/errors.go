package pricing

import "errors"

var (
	// ErrUnknownService возвращается, если услуги нет в каталоге.
	ErrUnknownService = errors.New("unknown service")
	// ErrUnknownTier возвращается, если у услуги нет такого тарифа.
	ErrUnknownTier = errors.New("unknown tier")
	// ErrUnknownVariant возвращается для неизвестного варианта страницы оплаты.
	ErrUnknownVariant = errors.New("unknown checkout variant")
	// ErrYearlyNotSupported возвращается при попытке включить годовую оплату там, где её нет.
	ErrYearlyNotSupported = errors.New("yearly billing is not supported by this variant")
)

// ValidationError описывает ошибку пользовательского ввода, которая показывается
// рядом с кнопкой оплаты. Это ожидаемое состояние, а не сбой.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
