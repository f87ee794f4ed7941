package graphql

import (
	"context"
	"math"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
)

// Resolver — корневой резолвер схемы поверх доменных сервисов.
type Resolver struct {
	customers *crm.CustomerService
	products  *crm.ProductService
	orders    *crm.OrderService
	logger    *log.Entry
}

// NewResolver конструирует корневой резолвер.
func NewResolver(
	customers *crm.CustomerService,
	products *crm.ProductService,
	orders *crm.OrderService,
	logger *log.Entry,
) *Resolver {
	if logger == nil {
		logger = log.New().WithField("component", "graphql")
	}
	return &Resolver{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
	}
}

// NewSchema парсит схему и связывает её с резолвером.
func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, resolver)
}

// NewHandler возвращает HTTP-обработчик GraphQL-запросов.
func NewHandler(resolver *Resolver) (http.Handler, error) {
	schema, err := NewSchema(resolver)
	if err != nil {
		return nil, err
	}
	return &relay.Handler{Schema: schema}, nil
}

// Денежные значения в домене хранятся в минимальных единицах, наружу
// отдаются в основных. Округление до ближайшего цента закрывает двоичную
// неточность Float-входа.
func toMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func toMajor(minor int64) float64 {
	return float64(minor) / 100
}

type customerInput struct {
	Name  string
	Email string
	Phone *string
}

func (in customerInput) toService() crm.CustomerInput {
	input := crm.CustomerInput{Name: in.Name, Email: in.Email}
	if in.Phone != nil {
		input.Phone = *in.Phone
	}
	return input
}

type customerFilterInput struct {
	Email         *string
	NameContains  *string
	EmailContains *string
	CreatedAfter  *graphql.Time
	CreatedBefore *graphql.Time
}

func (in *customerFilterInput) toDomain() domain.CustomerFilter {
	var filter domain.CustomerFilter
	if in == nil {
		return filter
	}
	if in.Email != nil {
		filter.Email = *in.Email
	}
	if in.NameContains != nil {
		filter.NameContains = *in.NameContains
	}
	if in.EmailContains != nil {
		filter.EmailContains = *in.EmailContains
	}
	if in.CreatedAfter != nil {
		filter.CreatedAfter = &in.CreatedAfter.Time
	}
	if in.CreatedBefore != nil {
		filter.CreatedBefore = &in.CreatedBefore.Time
	}
	return filter
}

type productFilterInput struct {
	NameContains *string
	PriceMin     *float64
	PriceMax     *float64
	StockMin     *int32
	StockMax     *int32
}

func (in *productFilterInput) toDomain() domain.ProductFilter {
	var filter domain.ProductFilter
	if in == nil {
		return filter
	}
	if in.NameContains != nil {
		filter.NameContains = *in.NameContains
	}
	if in.PriceMin != nil {
		minMinor := toMinor(*in.PriceMin)
		filter.PriceMinMinor = &minMinor
	}
	if in.PriceMax != nil {
		maxMinor := toMinor(*in.PriceMax)
		filter.PriceMaxMinor = &maxMinor
	}
	filter.StockMin = in.StockMin
	filter.StockMax = in.StockMax
	return filter
}

type orderFilterInput struct {
	CustomerID   *graphql.ID
	ProductID    *graphql.ID
	TotalMin     *float64
	TotalMax     *float64
	PlacedAfter  *graphql.Time
	PlacedBefore *graphql.Time
}

func (in *orderFilterInput) toDomain() domain.OrderFilter {
	var filter domain.OrderFilter
	if in == nil {
		return filter
	}
	if in.CustomerID != nil {
		filter.CustomerID = string(*in.CustomerID)
	}
	if in.ProductID != nil {
		filter.ProductID = string(*in.ProductID)
	}
	if in.TotalMin != nil {
		minMinor := toMinor(*in.TotalMin)
		filter.TotalMinMinor = &minMinor
	}
	if in.TotalMax != nil {
		maxMinor := toMinor(*in.TotalMax)
		filter.TotalMaxMinor = &maxMinor
	}
	if in.PlacedAfter != nil {
		filter.PlacedAfter = &in.PlacedAfter.Time
	}
	if in.PlacedBefore != nil {
		filter.PlacedBefore = &in.PlacedBefore.Time
	}
	return filter
}

// Customer возвращает клиента по идентификатору.
func (r *Resolver) Customer(ctx context.Context, args struct{ ID graphql.ID }) (*customerResolver, error) {
	customer, err := r.customers.Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &customerResolver{customer: customer}, nil
}

// Customers возвращает клиентов, прошедших фильтр.
func (r *Resolver) Customers(ctx context.Context, args struct{ Filter *customerFilterInput }) ([]*customerResolver, error) {
	customers, err := r.customers.List(ctx, args.Filter.toDomain())
	if err != nil {
		return nil, err
	}
	resolvers := make([]*customerResolver, 0, len(customers))
	for _, customer := range customers {
		resolvers = append(resolvers, &customerResolver{customer: customer})
	}
	return resolvers, nil
}

// Product возвращает товар по идентификатору.
func (r *Resolver) Product(ctx context.Context, args struct{ ID graphql.ID }) (*productResolver, error) {
	product, err := r.products.Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &productResolver{product: product}, nil
}

// Products возвращает товары, прошедшие фильтр.
func (r *Resolver) Products(ctx context.Context, args struct{ Filter *productFilterInput }) ([]*productResolver, error) {
	products, err := r.products.List(ctx, args.Filter.toDomain())
	if err != nil {
		return nil, err
	}
	resolvers := make([]*productResolver, 0, len(products))
	for _, product := range products {
		resolvers = append(resolvers, &productResolver{product: product})
	}
	return resolvers, nil
}

// Order возвращает заказ по идентификатору.
func (r *Resolver) Order(ctx context.Context, args struct{ ID graphql.ID }) (*orderResolver, error) {
	order, err := r.orders.Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &orderResolver{order: order, root: r}, nil
}

// Orders возвращает заказы, прошедшие фильтр.
func (r *Resolver) Orders(ctx context.Context, args struct{ Filter *orderFilterInput }) ([]*orderResolver, error) {
	orders, err := r.orders.List(ctx, args.Filter.toDomain())
	if err != nil {
		return nil, err
	}
	resolvers := make([]*orderResolver, 0, len(orders))
	for _, order := range orders {
		resolvers = append(resolvers, &orderResolver{order: order, root: r})
	}
	return resolvers, nil
}

// CreateCustomer создаёт клиента и возвращает подтверждение.
func (r *Resolver) CreateCustomer(ctx context.Context, args struct{ Input customerInput }) (*createCustomerPayloadResolver, error) {
	customer, err := r.customers.Create(ctx, args.Input.toService())
	if err != nil {
		return nil, err
	}
	return &createCustomerPayloadResolver{customer: customer}, nil
}

// BulkCreateCustomers создаёт пакет клиентов; ошибки валидации отдельных
// записей возвращаются списком строк рядом с созданными клиентами.
func (r *Resolver) BulkCreateCustomers(ctx context.Context, args struct{ Input []customerInput }) (*bulkCreateCustomersPayloadResolver, error) {
	inputs := make([]crm.CustomerInput, 0, len(args.Input))
	for _, in := range args.Input {
		inputs = append(inputs, in.toService())
	}

	created, failures, err := r.customers.BulkCreate(ctx, inputs)
	if err != nil {
		return nil, err
	}
	return &bulkCreateCustomersPayloadResolver{customers: created, failures: failures}, nil
}

// CreateProduct создаёт товар.
func (r *Resolver) CreateProduct(ctx context.Context, args struct {
	Name  string
	Price float64
	Stock *int32
}) (*productResolver, error) {
	product, err := r.products.Create(ctx, crm.ProductInput{
		Name:       args.Name,
		PriceMinor: toMinor(args.Price),
		Stock:      args.Stock,
	})
	if err != nil {
		return nil, err
	}
	return &productResolver{product: product}, nil
}

// CreateOrder создаёт заказ с вычисленной на сервере суммой.
func (r *Resolver) CreateOrder(ctx context.Context, args struct {
	CustomerID graphql.ID
	ProductIDs []graphql.ID
	OrderDate  *graphql.Time
}) (*orderResolver, error) {
	input := crm.OrderInput{CustomerID: string(args.CustomerID)}
	for _, id := range args.ProductIDs {
		input.ProductIDs = append(input.ProductIDs, string(id))
	}
	if args.OrderDate != nil {
		orderDate := args.OrderDate.Time
		input.OrderDate = &orderDate
	}

	order, err := r.orders.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return &orderResolver{order: order, root: r}, nil
}

type customerResolver struct {
	customer domain.Customer
}

func (r *customerResolver) ID() graphql.ID { return graphql.ID(r.customer.ID) }
func (r *customerResolver) Name() string   { return r.customer.Name }
func (r *customerResolver) Email() string  { return r.customer.Email }
func (r *customerResolver) Phone() string  { return r.customer.Phone }
func (r *customerResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.customer.CreatedAt}
}

type productResolver struct {
	product domain.Product
}

func (r *productResolver) ID() graphql.ID { return graphql.ID(r.product.ID) }
func (r *productResolver) Name() string   { return r.product.Name }
func (r *productResolver) Price() float64 { return toMajor(r.product.PriceMinor) }
func (r *productResolver) Stock() int32   { return r.product.Stock }
func (r *productResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.product.CreatedAt}
}

type orderResolver struct {
	order domain.Order
	root  *Resolver
}

func (r *orderResolver) ID() graphql.ID       { return graphql.ID(r.order.ID) }
func (r *orderResolver) TotalAmount() float64 { return toMajor(r.order.TotalMinor) }
func (r *orderResolver) OrderDate() graphql.Time {
	return graphql.Time{Time: r.order.OrderDate}
}
func (r *orderResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.order.CreatedAt}
}

func (r *orderResolver) Customer(ctx context.Context) (*customerResolver, error) {
	customer, err := r.root.customers.Get(ctx, r.order.CustomerID)
	if err != nil {
		return nil, err
	}
	return &customerResolver{customer: customer}, nil
}

func (r *orderResolver) Products(ctx context.Context) ([]*productResolver, error) {
	products, err := r.root.products.ListByIDs(ctx, r.order.ProductIDs)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*productResolver, 0, len(products))
	for _, product := range products {
		resolvers = append(resolvers, &productResolver{product: product})
	}
	return resolvers, nil
}

type createCustomerPayloadResolver struct {
	customer domain.Customer
}

func (r *createCustomerPayloadResolver) Customer() *customerResolver {
	return &customerResolver{customer: r.customer}
}

func (r *createCustomerPayloadResolver) Message() string {
	return crm.MessageCustomerCreated
}

type bulkCreateCustomersPayloadResolver struct {
	customers []domain.Customer
	failures  []string
}

func (r *bulkCreateCustomersPayloadResolver) Customers() []*customerResolver {
	resolvers := make([]*customerResolver, 0, len(r.customers))
	for _, customer := range r.customers {
		resolvers = append(resolvers, &customerResolver{customer: customer})
	}
	return resolvers
}

func (r *bulkCreateCustomersPayloadResolver) Errors() []string {
	if r.failures == nil {
		return []string{}
	}
	return r.failures
}
