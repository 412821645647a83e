package sysfont

import (
	"errors"
	"fmt"

	"github.com/gogpu/sysfont/internal/workpool"
)

// RenderAll renders a batch of requests. Labels are rasterized in parallel
// and uploaded in order on the calling goroutine, so the publisher does
// not need to be safe for concurrent use.
//
// Requests that cannot be uploaded are skipped and reported; the returned
// error joins the failures of all requests. Every request must belong to r.
func (r *Renderer) RenderAll(reqs ...*Request) error {
	if len(reqs) == 0 {
		return nil
	}

	var errs []error
	todo := make([]*Request, 0, len(reqs))
	for _, q := range reqs {
		if q == nil {
			continue
		}
		if q.renderer != r {
			errs = append(errs, fmt.Errorf("sysfont: texture %d: request from another renderer", q.texture))
			continue
		}
		if err := q.check(); err != nil {
			errs = append(errs, fmt.Errorf("sysfont: texture %d: %w", q.texture, err))
			continue
		}
		todo = append(todo, q)
	}

	bitmaps := make([]*Bitmap, len(todo))
	if len(todo) > 0 {
		workers := r.cfg.workers
		if workers > len(todo) {
			workers = len(todo)
		}
		pool := workpool.New(workers)
		pool.Run(len(todo), func(i int) {
			bitmaps[i] = todo[i].Rasterize()
		})
		pool.Close()
	}

	for i, q := range todo {
		if err := q.publish(bitmaps[i]); err != nil {
			errs = append(errs, err)
		}
	}

	r.logger().Debug("sysfont: batch rendered",
		"requests", len(reqs),
		"uploaded", len(todo),
		"failed", len(errs))
	return errors.Join(errs...)
}
