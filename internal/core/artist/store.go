// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import "context"

type Repository interface {
	List(context context.Context) ([]*Artist, error)
	Get(context context.Context, id int) (*Artist, error)
	Create(context context.Context, artist *Artist) error
	Update(context context.Context, artist *Artist) error
	Delete(context context.Context, id int) error
	Search(context context.Context, term string) ([]*Artist, error)
}
