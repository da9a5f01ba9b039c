package inspect

import (
	"context"
	"sync"

	"github.com/agentstation/checkstate/pkg/config"
	"github.com/agentstation/checkstate/pkg/errors"
	"github.com/agentstation/checkstate/pkg/logging"
	"github.com/agentstation/checkstate/pkg/state"
)

// All inspects every folder of a resolved list concurrently and returns
// the records in the original folder order, which the reconciler and
// renderer rely on. A folder that does not exist on this machine is
// logged and skipped, matching the case of a set checked out partially;
// any other inspection failure fails the run.
func All(ctx context.Context, inspector Inspector, folders []config.Folder) ([]state.FolderState, error) {
	results := make([]*state.FolderState, len(folders))
	errs := make([]error, len(folders))

	var wg sync.WaitGroup
	for i, folder := range folders {
		wg.Add(1)
		go func(i int, folder config.Folder) {
			defer wg.Done()

			fs, err := inspector.Inspect(ctx, folder.Path)
			if err != nil {
				if errors.Is(err, errors.ErrPathNotFound) {
					logging.Ctx(ctx).Warn().
						Str("folder", folder.Name).
						Str("path", folder.Path).
						Msg("No such path on this machine, skipping")
					return
				}
				errs[i] = err
				return
			}
			// Keep the resolver's display name: the recorded path may
			// be spelled with a trailing separator or other OS quirks.
			fs.Name = folder.Name
			results[i] = &fs
		}(i, folder)
	}
	wg.Wait()

	states := make([]state.FolderState, 0, len(folders))
	for i := range folders {
		if errs[i] != nil {
			return nil, errs[i]
		}
		if results[i] != nil {
			states = append(states, *results[i])
		}
	}
	return states, nil
}
