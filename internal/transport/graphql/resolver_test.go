package graphql_test

import (
	"context"
	"encoding/json"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/vladislavdragonenkov/crm/internal/transport/graphql"

	"github.com/vladislavdragonenkov/crm/internal/service/crm"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
)

func setupSchema(t *testing.T) *graphql.Schema {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	entry := logger.WithField("component", "test")

	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()
	uow := memory.NewCustomerUnitOfWork(customerRepo)

	customers := crm.NewCustomerService(customerRepo, uow, nil, nil, entry)
	products := crm.NewProductService(productRepo, nil, nil, entry)
	orders := crm.NewOrderService(orderRepo, customerRepo, productRepo, nil, nil, entry)

	resolver := gql.NewResolver(customers, products, orders, entry)
	schema, err := gql.NewSchema(resolver)
	require.NoError(t, err)

	return schema
}

func mustExec(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()

	resp := schema.Exec(context.Background(), query, "", vars)
	require.Empty(t, resp.Errors, "unexpected graphql errors: %v", resp.Errors)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

func execErrors(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}) []string {
	t.Helper()

	resp := schema.Exec(context.Background(), query, "", vars)
	messages := make([]string, 0, len(resp.Errors))
	for _, err := range resp.Errors {
		messages = append(messages, err.Message)
	}
	return messages
}

const createCustomerMutation = `
mutation($input: CustomerInput!) {
	createCustomer(input: $input) {
		customer { id name email phone }
		message
	}
}`

func TestCreateCustomerMutation(t *testing.T) {
	schema := setupSchema(t)

	data := mustExec(t, schema, createCustomerMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"name":  "Alice",
			"email": "alice@example.com",
			"phone": "+14155551234",
		},
	})

	payload := data["createCustomer"].(map[string]interface{})
	assert.Equal(t, "Customer created successfully", payload["message"])

	customer := payload["customer"].(map[string]interface{})
	assert.NotEmpty(t, customer["id"])
	assert.Equal(t, "Alice", customer["name"])
	assert.Equal(t, "alice@example.com", customer["email"])
	assert.Equal(t, "+14155551234", customer["phone"])
}

func TestCreateCustomerMutation_DuplicateEmail(t *testing.T) {
	schema := setupSchema(t)

	input := map[string]interface{}{
		"input": map[string]interface{}{"name": "Alice", "email": "alice@example.com"},
	}
	mustExec(t, schema, createCustomerMutation, input)

	messages := execErrors(t, schema, createCustomerMutation, input)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "alice@example.com")
}

func TestBulkCreateCustomersMutation_PartialFailure(t *testing.T) {
	schema := setupSchema(t)

	data := mustExec(t, schema, `
	mutation($input: [CustomerInput!]!) {
		bulkCreateCustomers(input: $input) {
			customers { name email }
			errors
		}
	}`, map[string]interface{}{
		"input": []interface{}{
			map[string]interface{}{"name": "Alice", "email": "alice@example.com"},
			map[string]interface{}{"name": "Bob", "email": "alice@example.com"},
			map[string]interface{}{"name": "Carol", "email": "carol@example.com", "phone": "12345"},
			map[string]interface{}{"name": "Dave", "email": "dave@example.com"},
		},
	})

	payload := data["bulkCreateCustomers"].(map[string]interface{})

	created := payload["customers"].([]interface{})
	require.Len(t, created, 2)
	assert.Equal(t, "Alice", created[0].(map[string]interface{})["name"])
	assert.Equal(t, "Dave", created[1].(map[string]interface{})["name"])

	failures := payload["errors"].([]interface{})
	require.Len(t, failures, 2)
	assert.Contains(t, failures[0], "alice@example.com")
	assert.Contains(t, failures[1], "Carol")
}

func TestCreateProductMutation(t *testing.T) {
	schema := setupSchema(t)

	data := mustExec(t, schema, `
	mutation {
		createProduct(name: "Widget", price: 19.99) {
			id name price stock
		}
	}`, nil)

	product := data["createProduct"].(map[string]interface{})
	assert.Equal(t, "Widget", product["name"])
	assert.InDelta(t, 19.99, product["price"], 0.0001)
	assert.Equal(t, float64(0), product["stock"])
}

func TestCreateProductMutation_RejectsNonPositivePrice(t *testing.T) {
	schema := setupSchema(t)

	messages := execErrors(t, schema, `
	mutation {
		createProduct(name: "Widget", price: 0) { id }
	}`, nil)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "price must be positive")
}

func TestCreateOrderMutation_ComputesTotal(t *testing.T) {
	schema := setupSchema(t)

	customerData := mustExec(t, schema, createCustomerMutation, map[string]interface{}{
		"input": map[string]interface{}{"name": "Alice", "email": "alice@example.com"},
	})
	customerID := customerData["createCustomer"].(map[string]interface{})["customer"].(map[string]interface{})["id"].(string)

	var productIDs []interface{}
	for _, spec := range []struct {
		name  string
		price float64
	}{{"Widget", 10.00}, {"Gadget", 15.50}} {
		data := mustExec(t, schema, `
		mutation($name: String!, $price: Float!) {
			createProduct(name: $name, price: $price) { id }
		}`, map[string]interface{}{"name": spec.name, "price": spec.price})
		productIDs = append(productIDs, data["createProduct"].(map[string]interface{})["id"])
	}

	data := mustExec(t, schema, `
	mutation($customerId: ID!, $productIds: [ID!]!) {
		createOrder(customerId: $customerId, productIds: $productIds) {
			id
			totalAmount
			customer { id email }
			products { name }
		}
	}`, map[string]interface{}{"customerId": customerID, "productIds": productIDs})

	order := data["createOrder"].(map[string]interface{})
	assert.InDelta(t, 25.50, order["totalAmount"], 0.0001)
	assert.Equal(t, customerID, order["customer"].(map[string]interface{})["id"])
	assert.Len(t, order["products"].([]interface{}), 2)
}

func TestCreateOrderMutation_UnknownCustomer(t *testing.T) {
	schema := setupSchema(t)

	messages := execErrors(t, schema, `
	mutation {
		createOrder(customerId: "missing", productIds: ["p1"]) { id }
	}`, nil)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "missing")
}

func TestCustomersQuery_Filter(t *testing.T) {
	schema := setupSchema(t)

	for _, in := range []map[string]interface{}{
		{"name": "Alice Smith", "email": "alice@example.com"},
		{"name": "Bob Jones", "email": "bob@example.com"},
	} {
		mustExec(t, schema, createCustomerMutation, map[string]interface{}{"input": in})
	}

	data := mustExec(t, schema, `
	query($filter: CustomerFilterInput) {
		customers(filter: $filter) { name email }
	}`, map[string]interface{}{
		"filter": map[string]interface{}{"nameContains": "smith"},
	})

	customers := data["customers"].([]interface{})
	require.Len(t, customers, 1)
	assert.Equal(t, "alice@example.com", customers[0].(map[string]interface{})["email"])
}

func TestProductsQuery_PriceRange(t *testing.T) {
	schema := setupSchema(t)

	for _, spec := range []struct {
		name  string
		price float64
	}{{"Cheap", 5.00}, {"Mid", 15.00}, {"Expensive", 50.00}} {
		mustExec(t, schema, `
		mutation($name: String!, $price: Float!) {
			createProduct(name: $name, price: $price) { id }
		}`, map[string]interface{}{"name": spec.name, "price": spec.price})
	}

	data := mustExec(t, schema, `
	query {
		products(filter: {priceMin: 10.0, priceMax: 20.0}) { name }
	}`, nil)

	products := data["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "Mid", products[0].(map[string]interface{})["name"])
}
