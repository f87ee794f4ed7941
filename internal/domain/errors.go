package domain

import "errors"

var (
	// Ошибка отсутствующего имени клиента или товара.
	ErrNameRequired = errors.New("name is required")
	// Ошибка отсутствующего email клиента.
	ErrEmailRequired = errors.New("email is required")
	// ErrDuplicateEmail возвращается, если email уже занят другим клиентом.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidPhoneFormat возвращается, если телефон не соответствует
	// форматам "+<10-15 цифр>" или "DDD-DDD-DDDD".
	ErrInvalidPhoneFormat = errors.New("invalid phone format")
	// ErrInvalidPrice возвращается при цене <= 0.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrInvalidStock возвращается при отрицательном остатке.
	ErrInvalidStock = errors.New("stock cannot be negative")
	// ErrInvalidCustomerID возвращается, если клиент заказа не найден.
	ErrInvalidCustomerID = errors.New("invalid customer ID")
	// ErrInvalidProductIDs возвращается, если ни один товар заказа не найден
	// (покрывает и пустой входной список).
	ErrInvalidProductIDs = errors.New("invalid product IDs")

	// Ошибка отсутствующего идентификатора клиента в заказе.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrProductsRequired = errors.New("order must reference at least one product")
	// Ошибка отрицательной суммы заказа.
	ErrTotalNegative = errors.New("total_minor must be non-negative")
	// Ошибка отсутствующей даты заказа.
	ErrOrderDateRequired = errors.New("order_date is required")

	// ErrCustomerNotFound возвращается, если клиент не найден в репозитории.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyExists сигнализирует о конфликте идентификаторов при создании.
	ErrAlreadyExists = errors.New("record already exists")
)

// validationKinds — ожидаемые ошибки валидации; всё остальное считается
// фатальным и прерывает пакетную операцию целиком.
var validationKinds = []error{
	ErrNameRequired,
	ErrEmailRequired,
	ErrDuplicateEmail,
	ErrInvalidPhoneFormat,
	ErrInvalidPrice,
	ErrInvalidStock,
	ErrInvalidCustomerID,
	ErrInvalidProductIDs,
}

// IsValidation проверяет, относится ли ошибка к ожидаемым ошибкам валидации.
func IsValidation(err error) bool {
	for _, kind := range validationKinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
