package service

import "context"

// fetchPages is a private helper that walks 1-based pages until the source
// reports no more rows, the reported total is reached, or maxPages is hit.
func fetchPages[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page int) ([]T, int, error),
	maxPages int,
	onProgress func(loaded, total int),
) ([]T, int, error) {
	if maxPages <= 0 {
		maxPages = 1
	}

	var all []T
	total := 0

	for page := 1; page <= maxPages; page++ {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		default:
		}

		items, pageTotal, err := fetch(ctx, page)
		if err != nil {
			return nil, 0, err
		}
		if pageTotal > total {
			total = pageTotal
		}

		all = append(all, items...)

		if onProgress != nil {
			onProgress(len(all), total)
		}

		if len(items) == 0 || len(all) >= total {
			break
		}
	}

	return all, total, nil
}
