package performance

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/graphql"
)

// =============================================================================
// Performance Benchmarks for Response Synthesis
// =============================================================================

const benchSDL = `
type Query {
  user(id: ID!): User
  feed(first: Int): [Post!]!
  search(term: String!): [SearchResult!]!
}

interface Node { id: ID! }

type User implements Node {
  id: ID!
  name: String!
  email: String
  posts: [Post!]!
  friends: [User!]!
}

type Post implements Node {
  id: ID!
  title: String!
  body: String
  author: User!
  tags: [String!]!
  createdAt: String
}

union SearchResult = User | Post
`

const (
	simpleQuery = `query GetUser($id: ID!) { user(id: $id) { id name email } }`

	nestedQuery = `query Feed {
  feed {
    id title body tags
    author { id name friends { id name posts { id title } } }
  }
}`

	abstractQuery = `query Search($term: String!) {
  search(term: $term) {
    ... on User { id name }
    ... on Post { id title author { name } }
  }
}`
)

func newBenchProvider(tb testing.TB, opts ...automock.Option) *automock.Provider {
	tb.Helper()
	schema, err := graphql.ParseSchema(benchSDL)
	require.NoError(tb, err)
	p, err := automock.New(schema, opts...)
	require.NoError(tb, err)
	return p
}

func benchmarkExecute(b *testing.B, p *automock.Provider, req *graphql.GraphQLRequest) {
	b.Helper()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp := p.Execute(ctx, req)
		if resp.HasErrors() {
			b.Fatalf("unexpected errors: %v", resp.Errors)
		}
	}
}

func BenchmarkExecute_Simple(b *testing.B) {
	p := newBenchProvider(b)
	benchmarkExecute(b, p, &graphql.GraphQLRequest{
		Query:     simpleQuery,
		Variables: map[string]interface{}{"id": "42"},
	})
}

func BenchmarkExecute_Nested(b *testing.B) {
	for _, n := range []int{2, 5, 10} {
		b.Run(fmt.Sprintf("listLength=%d", n), func(b *testing.B) {
			p := newBenchProvider(b, automock.WithListLength(n))
			benchmarkExecute(b, p, &graphql.GraphQLRequest{Query: nestedQuery})
		})
	}
}

func BenchmarkExecute_Abstract(b *testing.B) {
	p := newBenchProvider(b)
	benchmarkExecute(b, p, &graphql.GraphQLRequest{
		Query:     abstractQuery,
		Variables: map[string]interface{}{"term": "ada"},
	})
}

func BenchmarkExecute_Overrides(b *testing.B) {
	p := newBenchProvider(b,
		automock.WithMocks(automock.MockMap{
			"Feed": automock.Literal{"feed": []interface{}{
				map[string]interface{}{"title": "Pinned"},
				map[string]interface{}{},
				map[string]interface{}{},
			}},
		}),
		automock.WithCopyFieldsFromVariables(automock.CopyFieldsFromVariables{
			"GetUser": {"user.id": "id"},
		}),
		automock.WithResolvers(automock.ResolverMap{
			"User": func(_ context.Context, _, _ map[string]interface{}, _ automock.ResolveInfo) (map[string]interface{}, error) {
				return map[string]interface{}{"email": "ada@example.com"}, nil
			},
		}),
	)

	b.Run("mock", func(b *testing.B) {
		benchmarkExecute(b, p, &graphql.GraphQLRequest{Query: nestedQuery})
	})
	b.Run("copy", func(b *testing.B) {
		benchmarkExecute(b, p, &graphql.GraphQLRequest{
			Query:     simpleQuery,
			Variables: map[string]interface{}{"id": "42"},
		})
	})
}

func BenchmarkExecute_Parallel(b *testing.B) {
	p := newBenchProvider(b)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			i++
			resp := p.Execute(ctx, &graphql.GraphQLRequest{
				Query:     simpleQuery,
				Variables: map[string]interface{}{"id": fmt.Sprintf("user-%d", i%64)},
			})
			if resp.HasErrors() {
				b.Errorf("unexpected errors: %v", resp.Errors)
				return
			}
		}
	})
}

// TestConcurrentExecute_Deterministic checks that concurrent callers sharing
// a provider all observe the response a single caller would.
func TestConcurrentExecute_Deterministic(t *testing.T) {
	p := newBenchProvider(t, automock.WithListLength(3))
	req := &graphql.GraphQLRequest{Query: nestedQuery}

	want := p.Execute(context.Background(), req)
	require.False(t, want.HasErrors())

	const workers = 16
	var wg sync.WaitGroup
	results := make([]*graphql.Response, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want.Data, got.Data, "worker %d", i)
	}
	assert.Equal(t, workers+1, len(p.Calls()))
}
