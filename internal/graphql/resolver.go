// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"

	"github.com/quillboard/quillboard/internal/account"
	"github.com/quillboard/quillboard/internal/observability"
	"github.com/quillboard/quillboard/internal/post"
	"github.com/quillboard/quillboard/pkg/errutil"
)

// Resolver is the root GraphQL resolver.
type Resolver struct {
	accounts *account.Service
	posts    *post.Service
	metrics  *observability.Metrics
}

// NewResolver creates the root resolver. metrics may be nil (tests, or
// the metrics server disabled).
func NewResolver(accounts *account.Service, posts *post.Service, metrics *observability.Metrics) (*Resolver, error) {
	if accounts == nil {
		return nil, oops.Errorf("account service is required")
	}
	if posts == nil {
		return nil, oops.Errorf("post service is required")
	}
	return &Resolver{accounts: accounts, posts: posts, metrics: metrics}, nil
}

// requestSession fetches the session handle placed by the middleware.
func requestSession(ctx context.Context) (*RequestSession, error) {
	rs := SessionFromContext(ctx)
	if rs == nil {
		return nil, oops.Code("SESSION_MISSING").Errorf("no session on request")
	}
	return rs, nil
}

// --- Query ---

// ListAccounts resolves the listAccounts query.
func (r *Resolver) ListAccounts(ctx context.Context) ([]*accountResolver, error) {
	accounts, err := r.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, r.countError(err)
	}
	resolvers := make([]*accountResolver, 0, len(accounts))
	for _, a := range accounts {
		resolvers = append(resolvers, &accountResolver{a: a})
	}
	return resolvers, nil
}

// CurrentAccount resolves the currentAccount query from the session.
func (r *Resolver) CurrentAccount(ctx context.Context) (*accountResultResolver, error) {
	rs, err := requestSession(ctx)
	if err != nil {
		return nil, r.countError(err)
	}
	res, err := r.accounts.CurrentAccount(ctx, rs.Session())
	if err != nil {
		return nil, r.countError(err)
	}
	return &accountResultResolver{res: res}, nil
}

// GetAccount resolves the getAccount query. A missing account is null,
// not an error.
func (r *Resolver) GetAccount(ctx context.Context, args struct{ ID int32 }) (*accountResolver, error) {
	a, err := r.accounts.GetAccount(ctx, int64(args.ID))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, nil
		}
		return nil, r.countError(err)
	}
	return &accountResolver{a: a}, nil
}

// Posts resolves the posts query.
func (r *Resolver) Posts(ctx context.Context) ([]*postResolver, error) {
	posts, err := r.posts.ListPosts(ctx)
	if err != nil {
		return nil, r.countError(err)
	}
	resolvers := make([]*postResolver, 0, len(posts))
	for _, p := range posts {
		resolvers = append(resolvers, &postResolver{p: p})
	}
	return resolvers, nil
}

// Post resolves the post query. A missing post is null, not an error.
func (r *Resolver) Post(ctx context.Context, args struct{ ID int32 }) (*postResolver, error) {
	p, err := r.posts.GetPost(ctx, int64(args.ID))
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, nil
		}
		return nil, r.countError(err)
	}
	return &postResolver{p: p}, nil
}

// --- Mutation ---

// Register resolves the register mutation.
func (r *Resolver) Register(ctx context.Context, args struct{ Username, Password string }) (*accountResultResolver, error) {
	res, err := r.accounts.Register(ctx, args.Username, args.Password)
	if err != nil {
		return nil, r.countError(err)
	}
	if res.Account != nil && r.metrics != nil {
		r.metrics.Registrations.Inc()
	}
	return &accountResultResolver{res: res}, nil
}

// Login resolves the login mutation. On success the session is bound to
// the account and the session cookie is issued.
func (r *Resolver) Login(ctx context.Context, args struct{ Username, Password string }) (*accountResultResolver, error) {
	rs, err := requestSession(ctx)
	if err != nil {
		return nil, r.countError(err)
	}

	res, err := r.accounts.Login(ctx, rs.Session(), args.Username, args.Password)
	if err != nil {
		r.countLogin("error")
		return nil, r.countError(err)
	}

	if res.Account != nil {
		rs.IssueCookie()
		r.countLogin("success")
	} else {
		r.countLogin("failure")
	}
	return &accountResultResolver{res: res}, nil
}

// Logout resolves the logout mutation: the session binding is cleared,
// the stored session deleted, and the cookie expired.
func (r *Resolver) Logout(ctx context.Context) (bool, error) {
	rs, err := requestSession(ctx)
	if err != nil {
		return false, r.countError(err)
	}
	if err := r.accounts.Logout(ctx, rs.Session()); err != nil {
		return false, r.countError(err)
	}
	rs.ClearCookie()
	return true, nil
}

// UpdateUsername resolves the updateUsername mutation. A missing account
// is null; an omitted or empty username leaves the account unchanged.
func (r *Resolver) UpdateUsername(ctx context.Context, args struct {
	ID       int32
	Username *string
}) (*accountResolver, error) {
	username := ""
	if args.Username != nil {
		username = *args.Username
	}

	a, err := r.accounts.UpdateUsername(ctx, int64(args.ID), username)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, nil
		}
		return nil, r.countError(err)
	}
	return &accountResolver{a: a}, nil
}

// DeleteAccount resolves the deleteAccount mutation.
func (r *Resolver) DeleteAccount(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	ok, err := r.accounts.DeleteAccount(ctx, int64(args.ID))
	return ok, r.countError(err)
}

// CreatePost resolves the createPost mutation.
func (r *Resolver) CreatePost(ctx context.Context, args struct{ Title string }) (*postResolver, error) {
	p, err := r.posts.CreatePost(ctx, args.Title)
	if err != nil {
		return nil, r.countError(err)
	}
	return &postResolver{p: p}, nil
}

// UpdatePost resolves the updatePost mutation, mirroring updateUsername's
// conventions.
func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID    int32
	Title *string
}) (*postResolver, error) {
	title := ""
	if args.Title != nil {
		title = *args.Title
	}

	p, err := r.posts.UpdatePost(ctx, int64(args.ID), title)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			return nil, nil
		}
		return nil, r.countError(err)
	}
	return &postResolver{p: p}, nil
}

// DeletePost resolves the deletePost mutation.
func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	ok, err := r.posts.DeletePost(ctx, int64(args.ID))
	return ok, r.countError(err)
}

func (r *Resolver) countLogin(outcome string) {
	if r.metrics != nil {
		r.metrics.Logins.WithLabelValues(outcome).Inc()
	}
}

// countError records an unexpected resolver failure under its error code
// and passes the error through. Expected failures (FieldError results,
// not-found nulls) never reach it.
func (r *Resolver) countError(err error) error {
	if err != nil && r.metrics != nil {
		r.metrics.ResolverErrors.WithLabelValues(errutil.ErrorCode(err)).Inc()
	}
	return err
}

// --- Type resolvers ---

type accountResolver struct {
	a *account.Account
}

func (r *accountResolver) ID() int32        { return int32(r.a.ID) }
func (r *accountResolver) Username() string { return r.a.Username }
func (r *accountResolver) CreatedAt() string {
	return r.a.CreatedAt.UTC().Format(time.RFC3339)
}
func (r *accountResolver) UpdatedAt() string {
	return r.a.UpdatedAt.UTC().Format(time.RFC3339)
}

type fieldErrorResolver struct {
	e account.FieldError
}

// Field returns the offending input field, or null for failures that are
// deliberately not attributed to one.
func (r *fieldErrorResolver) Field() *string {
	if r.e.Field == "" {
		return nil
	}
	f := r.e.Field
	return &f
}

func (r *fieldErrorResolver) Message() string { return r.e.Message }

type accountResultResolver struct {
	res *account.Result
}

func (r *accountResultResolver) Errors() *[]*fieldErrorResolver {
	if len(r.res.Errors) == 0 {
		return nil
	}
	resolvers := make([]*fieldErrorResolver, 0, len(r.res.Errors))
	for _, e := range r.res.Errors {
		resolvers = append(resolvers, &fieldErrorResolver{e: e})
	}
	return &resolvers
}

func (r *accountResultResolver) Account() *accountResolver {
	if r.res.Account == nil {
		return nil
	}
	return &accountResolver{a: r.res.Account}
}

type postResolver struct {
	p *post.Post
}

func (r *postResolver) ID() int32     { return int32(r.p.ID) }
func (r *postResolver) Title() string { return r.p.Title }
func (r *postResolver) CreatedAt() string {
	return r.p.CreatedAt.UTC().Format(time.RFC3339)
}
func (r *postResolver) UpdatedAt() string {
	return r.p.UpdatedAt.UTC().Format(time.RFC3339)
}
