package inspect

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/agentstation/utc"

	"github.com/agentstation/checkstate/pkg/logging"
	"github.com/agentstation/checkstate/pkg/state"
)

// walkStats fills the file statistics of a folder record: file count,
// total size, and the most recent modification. Git bookkeeping under
// .git is excluded so commits don't count as modifications.
func walkStats(ctx context.Context, root string, folder *state.FolderState) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Ctx(ctx).Debug().Str("path", path).Err(err).Msg("Skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		folder.FileCount++
		folder.Bytes += info.Size()
		if mtime := info.ModTime(); mtime.After(folder.Latest.Time) {
			folder.Latest = utc.Time{Time: mtime.UTC()}
			folder.LatestFile = path
		}
		return nil
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Str("path", root).Err(err).Msg("File stats walk aborted")
	}
}
