// Package odmclient wraps a MongoDB driver collection with a typed surface:
// filters are expression trees from pkg/filter and results decode into the
// schema struct. The wrapper builds the filter document and hands it to the
// driver; connection handling and wire concerns stay with the driver.
package odmclient

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/robert-malhotra/go-mongo-odm/pkg/filter"
)

// Collection is a typed view over a driver collection whose documents decode
// into D.
type Collection[D any] struct {
	coll *mongo.Collection
	cfg  settings
}

// NewCollection wraps a driver collection.
func NewCollection[D any](coll *mongo.Collection, opts ...Option) (*Collection[D], error) {
	if coll == nil {
		return nil, ErrNilCollection
	}
	cfg := defaultSettings()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Collection[D]{coll: coll, cfg: cfg}, nil
}

// Name returns the underlying collection name.
func (c *Collection[D]) Name() string {
	return c.coll.Name()
}

// Find returns every document matching the filter expression. A nil
// expression matches all documents.
func (c *Collection[D]) Find(ctx context.Context, expr filter.Expression, opts ...*options.FindOptions) ([]D, error) {
	doc, err := filterDocument(expr)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var cursor *mongo.Cursor
	err = retryWithPolicy(ctx, c.cfg.retryPolicy, c.cfg.logger, "find", func() error {
		var findErr error
		cursor, findErr = c.coll.Find(ctx, doc, opts...)
		return findErr
	})
	if err != nil {
		c.cfg.logger.Errorf("find on %s failed: %v", c.coll.Name(), err)
		return nil, &QueryError{Op: "find", Err: err}
	}
	defer cursor.Close(ctx)

	var out []D
	if err := cursor.All(ctx, &out); err != nil {
		return nil, &QueryError{Op: "find", Err: err}
	}
	return out, nil
}

// FindOne returns the first document matching the filter expression, or
// ErrNotFound when nothing matches.
func (c *Collection[D]) FindOne(ctx context.Context, expr filter.Expression, opts ...*options.FindOneOptions) (*D, error) {
	doc, err := filterDocument(expr)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var out D
	err = retryWithPolicy(ctx, c.cfg.retryPolicy, c.cfg.logger, "findOne", func() error {
		return c.coll.FindOne(ctx, doc, opts...).Decode(&out)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		c.cfg.logger.Errorf("findOne on %s failed: %v", c.coll.Name(), err)
		return nil, &QueryError{Op: "findOne", Err: err}
	}
	return &out, nil
}

// Count returns the number of documents matching the filter expression.
func (c *Collection[D]) Count(ctx context.Context, expr filter.Expression) (int64, error) {
	doc, err := filterDocument(expr)
	if err != nil {
		return 0, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var n int64
	err = retryWithPolicy(ctx, c.cfg.retryPolicy, c.cfg.logger, "count", func() error {
		var countErr error
		n, countErr = c.coll.CountDocuments(ctx, doc)
		return countErr
	})
	if err != nil {
		return 0, &QueryError{Op: "count", Err: err}
	}
	return n, nil
}

// InsertOne stores a single document and returns its inserted ID.
func (c *Collection[D]) InsertOne(ctx context.Context, doc D) (any, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		c.cfg.logger.Errorf("insertOne on %s failed: %v", c.coll.Name(), err)
		return nil, &QueryError{Op: "insertOne", Err: err}
	}
	return res.InsertedID, nil
}

// InsertMany stores the documents in order and returns their inserted IDs.
func (c *Collection[D]) InsertMany(ctx context.Context, docs []D) ([]any, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	payload := make([]any, len(docs))
	for i, d := range docs {
		payload[i] = d
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.coll.InsertMany(ctx, payload)
	if err != nil {
		c.cfg.logger.Errorf("insertMany on %s failed: %v", c.coll.Name(), err)
		return nil, &QueryError{Op: "insertMany", Err: err}
	}
	return res.InsertedIDs, nil
}

// DeleteMany removes every document matching the filter expression and
// returns the number removed.
func (c *Collection[D]) DeleteMany(ctx context.Context, expr filter.Expression) (int64, error) {
	doc, err := filterDocument(expr)
	if err != nil {
		return 0, err
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	res, err := c.coll.DeleteMany(ctx, doc)
	if err != nil {
		c.cfg.logger.Errorf("deleteMany on %s failed: %v", c.coll.Name(), err)
		return 0, &QueryError{Op: "deleteMany", Err: err}
	}
	return res.DeletedCount, nil
}

// filterDocument serializes the expression, treating nil as match-all.
func filterDocument(expr filter.Expression) (bson.D, error) {
	if expr == nil {
		return bson.D{}, nil
	}
	return filter.Marshal(expr)
}

func (c *Collection[D]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.queryTimeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.queryTimeout)
}
