package graphql

// Schema описывает GraphQL-поверхность сервиса: запросы чтения с
// декларативными фильтрами и мутации создания записей. Денежные значения
// наружу отдаются как Float в основных единицах валюты.
const Schema = `
schema {
    query: Query
    mutation: Mutation
}

scalar Time

type Customer {
    id: ID!
    name: String!
    email: String!
    phone: String!
    createdAt: Time!
}

type Product {
    id: ID!
    name: String!
    price: Float!
    stock: Int!
    createdAt: Time!
}

type Order {
    id: ID!
    customer: Customer!
    products: [Product!]!
    totalAmount: Float!
    orderDate: Time!
    createdAt: Time!
}

input CustomerInput {
    name: String!
    email: String!
    phone: String
}

input CustomerFilterInput {
    email: String
    nameContains: String
    emailContains: String
    createdAfter: Time
    createdBefore: Time
}

input ProductFilterInput {
    nameContains: String
    priceMin: Float
    priceMax: Float
    stockMin: Int
    stockMax: Int
}

input OrderFilterInput {
    customerId: ID
    productId: ID
    totalMin: Float
    totalMax: Float
    placedAfter: Time
    placedBefore: Time
}

type CreateCustomerPayload {
    customer: Customer!
    message: String!
}

type BulkCreateCustomersPayload {
    customers: [Customer!]!
    errors: [String!]!
}

type Query {
    customer(id: ID!): Customer!
    customers(filter: CustomerFilterInput): [Customer!]!
    product(id: ID!): Product!
    products(filter: ProductFilterInput): [Product!]!
    order(id: ID!): Order!
    orders(filter: OrderFilterInput): [Order!]!
}

type Mutation {
    createCustomer(input: CustomerInput!): CreateCustomerPayload!
    bulkCreateCustomers(input: [CustomerInput!]!): BulkCreateCustomersPayload!
    createProduct(name: String!, price: Float!, stock: Int): Product!
    createOrder(customerId: ID!, productIds: [ID!]!, orderDate: Time): Order!
}
`
