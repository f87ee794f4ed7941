package domain

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента. Возвращает ErrDuplicateEmail,
	// если email уже занят (constraint на стороне хранилища).
	Create(customer Customer) error
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(id string) (Customer, error)
	// ExistsByEmail сообщает, занят ли email существующим клиентом.
	ExistsByEmail(email string) (bool, error)
	// List возвращает клиентов, проходящих предикаты фильтра.
	List(filter CustomerFilter) ([]Customer, error)
}

// CustomerUnitOfWork выполняет fn в границе одной транзакции хранилища клиентов.
// Транзакция фиксируется, если fn вернула nil, и откатывается при ошибке:
// ошибки валидации отдельных записей writer глотает сам и до отката не доводит.
type CustomerUnitOfWork interface {
	WithinTx(fn func(repo CustomerRepository) error) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар. Уникальность имени не требуется.
	Create(product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// ListByIDs возвращает товары с совпавшими идентификаторами.
	// Несуществующие идентификаторы молча пропускаются.
	ListByIDs(ids []string) ([]Product, error)
	// List возвращает товары, проходящие предикаты фильтра.
	List(filter ProductFilter) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе со связями заказ-товар.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(id string) (Order, error)
	// List возвращает заказы, проходящие предикаты фильтра.
	List(filter OrderFilter) ([]Order, error)
}
