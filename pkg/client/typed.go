package client

import (
	"context"

	"github.com/Sternrassler/pokedex-client/pkg/resource"
)

// Typed wraps a ResourceClient and decodes every instance into T.
// T is matched against the instance fields by mapstructure tags.
type Typed[T any] struct {
	rc *ResourceClient
}

// NewTyped creates a typed view of rc.
func NewTyped[T any](rc *ResourceClient) *Typed[T] {
	return &Typed[T]{rc: rc}
}

// Raw returns the underlying untyped client.
func (t *Typed[T]) Raw() *ResourceClient {
	return t.rc
}

// GetOne fetches a single item by id or name.
func (t *Typed[T]) GetOne(ctx context.Context, idOrName string) (*T, error) {
	inst, err := t.rc.GetOne(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	return decode[T](inst)
}

// GetOneByID fetches a single item by numeric id.
func (t *Typed[T]) GetOneByID(ctx context.Context, id int) (*T, error) {
	inst, err := t.rc.GetOneByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return decode[T](inst)
}

// GetMany fetches one page, see ResourceClient.GetMany.
func (t *Typed[T]) GetMany(ctx context.Context, limit, offset int) ([]*T, error) {
	insts, err := t.rc.GetMany(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](insts)
}

// GetAll fetches the whole collection.
func (t *Typed[T]) GetAll(ctx context.Context) ([]*T, error) {
	insts, err := t.rc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](insts)
}

// Count returns the size of the collection.
func (t *Typed[T]) Count(ctx context.Context) (int, error) {
	return t.rc.Count(ctx)
}

func decode[T any](inst *resource.Instance) (*T, error) {
	out := new(T)
	if err := inst.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeAll[T any](insts []*resource.Instance) ([]*T, error) {
	out := make([]*T, 0, len(insts))
	for _, inst := range insts {
		v, err := decode[T](inst)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
