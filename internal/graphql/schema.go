// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package graphql exposes the account and post services over GraphQL.
package graphql

// Schema is the GraphQL schema in SDL form. Expected failures (validation,
// conflicts, bad credentials) travel inside AccountResult as FieldError
// values; GraphQL-level errors are reserved for unexpected failures.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		listAccounts: [Account!]!
		currentAccount: AccountResult!
		getAccount(id: Int!): Account
		posts: [Post!]!
		post(id: Int!): Post
	}

	type Mutation {
		register(username: String!, password: String!): AccountResult!
		login(username: String!, password: String!): AccountResult!
		logout: Boolean!
		updateUsername(id: Int!, username: String): Account
		deleteAccount(id: Int!): Boolean!
		createPost(title: String!): Post!
		updatePost(id: Int!, title: String): Post
		deletePost(id: Int!): Boolean!
	}

	type Account {
		id: Int!
		username: String!
		createdAt: String!
		updatedAt: String!
	}

	type FieldError {
		field: String
		message: String!
	}

	type AccountResult {
		errors: [FieldError!]
		account: Account
	}

	type Post {
		id: Int!
		title: String!
		createdAt: String!
		updatedAt: String!
	}
`
