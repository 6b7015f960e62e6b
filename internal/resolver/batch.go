package resolver

import (
	"context"
	"sync"

	"github.com/Belphemur/filmed/internal/models"
)

// ResolveAll resolves records with at most concurrency records in flight and
// streams one result per record in completion order. Unresolved records are
// sent with Err set to the resolution error. The channel is closed once every
// record is done or ctx is cancelled.
func (r *Resolver) ResolveAll(ctx context.Context, records []*models.TitleRecord, concurrency int) <-chan models.StreamResult[Resolution] {
	if concurrency <= 0 {
		concurrency = 1
	}
	ch := make(chan models.StreamResult[Resolution])

	go func() {
		defer close(ch)

		jobs := make(chan *models.TitleRecord)
		var wg sync.WaitGroup
		for range min(concurrency, max(len(records), 1)) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for rec := range jobs {
					res := r.Resolve(ctx, rec)
					select {
					case ch <- models.StreamResult[Resolution]{Value: res, Err: res.Err()}:
					case <-ctx.Done():
						return
					}
				}
			}()
		}

	feed:
		for _, rec := range records {
			select {
			case jobs <- rec:
			case <-ctx.Done():
				break feed
			}
		}
		close(jobs)
		wg.Wait()
	}()

	return ch
}
