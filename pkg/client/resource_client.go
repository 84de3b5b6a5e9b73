package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/pokedex-client/pkg/pagination"
	"github.com/Sternrassler/pokedex-client/pkg/resource"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Sternrassler/pokedex-client/pkg/client"

// ResourceClient retrieves and transforms instances of one resource type.
// It holds no mutable state and is safe for concurrent use.
type ResourceClient struct {
	client   *Client
	registry *resource.Registry
	typ      resource.Type
	path     string
	pageSize int
	tracer   trace.Tracer
	logger   zerolog.Logger
}

// NewResourceClient creates a client for t. The type must have a bound path
// in reg (resource.Default when nil).
func NewResourceClient(c *Client, reg *resource.Registry, t resource.Type) (*ResourceClient, error) {
	if c == nil {
		return nil, fmt.Errorf("client: nil client for resource %q", t)
	}
	if reg == nil {
		reg = resource.Default
	}

	path, err := reg.ResolvePath(t)
	if err != nil {
		return nil, err
	}

	return &ResourceClient{
		client:   c,
		registry: reg,
		typ:      t,
		path:     path,
		pageSize: c.config.PageSize,
		tracer:   otel.Tracer(tracerName),
		logger:   c.logger.With().Str("resource", string(t)).Logger(),
	}, nil
}

// Type returns the resource type served by the client.
func (rc *ResourceClient) Type() resource.Type {
	return rc.typ
}

// Path returns the remote path of the resource type.
func (rc *ResourceClient) Path() string {
	return rc.path
}

// PageSize returns the page size used by GetAll.
func (rc *ResourceClient) PageSize() int {
	return rc.pageSize
}

// GetOne fetches a single instance by id or name.
func (rc *ResourceClient) GetOne(ctx context.Context, idOrName string) (*resource.Instance, error) {
	ctx, span := rc.tracer.Start(ctx, "pokedex.get_one", trace.WithAttributes(
		attribute.String("pokedex.resource", string(rc.typ)),
		attribute.String("pokedex.id_or_name", idOrName),
	))
	defer span.End()

	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		err := fmt.Errorf("client: %s: empty id or name", rc.typ)
		recordSpanError(span, err)
		return nil, err
	}

	body, err := rc.fetch(ctx, rc.path+"/"+url.PathEscape(idOrName), nil)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	inst, err := rc.registry.TransformBytes(body, resource.Single, rc.typ)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return inst, nil
}

// GetOneByID fetches a single instance by numeric id.
func (rc *ResourceClient) GetOneByID(ctx context.Context, id int) (*resource.Instance, error) {
	return rc.GetOne(ctx, strconv.Itoa(id))
}

// GetMany fetches one page. A limit <= 0 uses the configured page size.
// A negative offset counts back from the end of the collection, which costs
// one extra Count request; a non-negative offset never does.
func (rc *ResourceClient) GetMany(ctx context.Context, limit, offset int) ([]*resource.Instance, error) {
	ctx, span := rc.tracer.Start(ctx, "pokedex.get_many", trace.WithAttributes(
		attribute.String("pokedex.resource", string(rc.typ)),
		attribute.Int("pokedex.limit", limit),
		attribute.Int("pokedex.offset", offset),
	))
	defer span.End()

	items, err := rc.getMany(ctx, limit, offset)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("pokedex.items", len(items)))
	return items, nil
}

func (rc *ResourceClient) getMany(ctx context.Context, limit, offset int) ([]*resource.Instance, error) {
	if limit <= 0 {
		limit = rc.pageSize
	}

	resolved, err := pagination.ResolveOffset(ctx, offset, rc.Count)
	if err != nil {
		return nil, err
	}

	return rc.fetchPage(ctx, limit, resolved)
}

// GetAll fetches the whole collection page by page, in server order.
// Any failed page aborts the walk and nothing is returned.
func (rc *ResourceClient) GetAll(ctx context.Context) ([]*resource.Instance, error) {
	ctx, span := rc.tracer.Start(ctx, "pokedex.get_all", trace.WithAttributes(
		attribute.String("pokedex.resource", string(rc.typ)),
		attribute.Int("pokedex.page_size", rc.pageSize),
	))
	defer span.End()

	collector := pagination.NewCollector(rc.fetchPage, pagination.Config{
		PageSize: rc.pageSize,
		Logger:   &rc.logger,
	})
	items, err := collector.CollectAll(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("pokedex.items", len(items)))
	return items, nil
}

// Count returns the total size of the collection as reported by the server.
func (rc *ResourceClient) Count(ctx context.Context) (int, error) {
	ctx, span := rc.tracer.Start(ctx, "pokedex.count", trace.WithAttributes(
		attribute.String("pokedex.resource", string(rc.typ)),
	))
	defer span.End()

	query := url.Values{}
	query.Set("limit", "-1")
	query.Set("offset", "-1")

	body, err := rc.fetch(ctx, rc.path, query)
	if err != nil {
		recordSpanError(span, err)
		return 0, err
	}

	count, err := pagination.ParseCount(body)
	if err != nil {
		err = &resource.ShapeError{Type: rc.typ, Context: resource.Page, Field: "count", Err: err}
		recordSpanError(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int("pokedex.count", count))
	return count, nil
}

// fetchPage requests one page at an already resolved offset and transforms
// every entry in the page context.
func (rc *ResourceClient) fetchPage(ctx context.Context, limit, offset int) ([]*resource.Instance, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	body, err := rc.fetch(ctx, rc.path, query)
	if err != nil {
		return nil, err
	}
	pagesFetchedTotal.WithLabelValues(string(rc.typ)).Inc()

	env, err := pagination.ParseEnvelope(body)
	if err != nil {
		return nil, &resource.ShapeError{Type: rc.typ, Context: resource.Page, Field: "results", Err: err}
	}

	items := make([]*resource.Instance, 0, len(env.Results))
	for _, raw := range env.Results {
		inst, err := rc.registry.Transform(raw, resource.Page, rc.typ)
		if err != nil {
			return nil, err
		}
		items = append(items, inst)
	}
	return items, nil
}

// fetch performs the GET, records metrics and classifies failures.
func (rc *ResourceClient) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	label := string(rc.typ)

	start := time.Now()
	resp, err := rc.client.Get(ctx, path, query)
	requestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if err != nil {
		classified := classify(err)
		class := ClassOf(classified)

		status := "error"
		if se, ok := asStatusError(err); ok {
			status = statusLabel(se.StatusCode)
		} else if class == ErrorClassNetwork {
			status = "network_error"
		}
		requestsTotal.WithLabelValues(label, status).Inc()

		if class != "" {
			errorsTotal.WithLabelValues(string(class)).Inc()
			rc.logger.Warn().
				Err(err).
				Str("path", path).
				Str("error_class", string(class)).
				Msg("API request failed")
		}
		return nil, classified
	}

	requestsTotal.WithLabelValues(label, statusLabel(resp.StatusCode)).Inc()
	rc.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request complete")

	return resp.Body, nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
