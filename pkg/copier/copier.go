// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package copier

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/walteh/magedeploy/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// copyBufferSize is the transfer size for file copies. Larger than the
// io defaults because deployment trees live on SSDs where bigger
// transfers pay off.
const copyBufferSize = 64 * 1024

// ⚙️ Options configure how a plan is materialized
type Options struct {
	// IncludeDev keeps development artifacts (TypeScript sources,
	// lockfiles, node_modules, ...) that are skipped by default.
	IncludeDev bool

	// IgnorePatterns are doublestar globs matched against each file's
	// origin-relative path. Matching files are never copied.
	IgnorePatterns []string
}

// 📦 Copier materializes resolution plans into destination trees
type Copier struct {
	opts Options
}

// 🏭 New creates a copier with the given options
func New(opts Options) *Copier {
	return &Copier{opts: opts}
}

// 🚚 Materialize copies every origin of the plan, in plan order, into
// destRoot. The first origin to claim a relative destination path wins:
// the file is written (overwriting whatever a previous run left there)
// and later origins' files for that path are skipped. The cancellation
// state of ctx is checked before every file; on cancellation the
// partial counts so far are returned together with ctx.Err().
//
// A per-file I/O failure aborts the whole call with an error carrying
// the source and destination paths; counts cover the files copied
// before the failure.
func (c *Copier) Materialize(ctx context.Context, plan scan.Plan, destRoot string) (uint64, uint64, error) {
	logger := zerolog.Ctx(ctx)

	var filesCopied, bytesCopied uint64
	seen := make(map[string]struct{}, 256)
	buf := make([]byte, copyBufferSize)

	for _, origin := range plan {
		logger.Debug().
			Str("kind", origin.Kind.String()).
			Str("path", origin.Path).
			Msg("copying origin")

		files, bytes, err := c.copyTree(ctx, origin, destRoot, seen, buf)
		filesCopied += files
		bytesCopied += bytes
		if err != nil {
			return filesCopied, bytesCopied, err
		}
	}

	return filesCopied, bytesCopied, nil
}

type walkFrame struct {
	dir string // absolute directory being read
	rel string // path of dir relative to the origin root
}

// copyTree walks one origin subtree and copies every eligible file
// that has not been claimed by an earlier origin. Symlinks are
// followed; a visited set over resolved directories guards against
// link cycles.
func (c *Copier) copyTree(ctx context.Context, origin scan.Origin, destRoot string, seen map[string]struct{}, buf []byte) (uint64, uint64, error) {
	logger := zerolog.Ctx(ctx)
	subdir := origin.DestSubdir()

	var filesCopied, bytesCopied uint64

	visited := make(map[string]struct{}, 8)
	stack := []walkFrame{{dir: origin.Path, rel: ""}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return filesCopied, bytesCopied, err
		}

		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		resolved, err := filepath.EvalSymlinks(frame.dir)
		if err != nil {
			logger.Warn().Err(err).Str("path", frame.dir).Msg("skipping unresolvable directory")
			continue
		}
		if _, ok := visited[resolved]; ok {
			continue
		}
		visited[resolved] = struct{}{}

		entries, err := os.ReadDir(frame.dir)
		if err != nil {
			logger.Warn().Err(err).Str("path", frame.dir).Msg("skipping unreadable directory")
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return filesCopied, bytesCopied, err
			}

			src := filepath.Join(frame.dir, entry.Name())
			rel := filepath.Join(frame.rel, entry.Name())

			info, err := os.Stat(src)
			if err != nil {
				logger.Warn().Err(err).Str("path", src).Msg("skipping unreadable entry")
				continue
			}

			if info.IsDir() {
				if !c.opts.IncludeDev && isDevDir(entry.Name()) {
					continue
				}
				stack = append(stack, walkFrame{dir: src, rel: rel})
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}

			if c.excluded(rel, entry.Name()) {
				continue
			}

			destRel := filepath.Join(subdir, rel)
			if _, claimed := seen[destRel]; claimed {
				continue
			}
			seen[destRel] = struct{}{}

			written, err := copyFile(src, filepath.Join(destRoot, destRel), info.Mode().Perm(), buf)
			if err != nil {
				return filesCopied, bytesCopied, err
			}
			filesCopied++
			bytesCopied += written
		}
	}

	return filesCopied, bytesCopied, nil
}

// excluded applies the development-artifact rules and the configured
// ignore patterns to one file
func (c *Copier) excluded(rel, name string) bool {
	if !c.opts.IncludeDev && isDevFile(name) {
		return true
	}
	for _, pattern := range c.opts.IgnorePatterns {
		if ok, _ := matchIgnore(pattern, rel); ok {
			return true
		}
	}
	return false
}

// copyFile streams src to dst, creating parent directories and
// carrying over the source permission bits
func copyFile(src, dst string, perm fs.FileMode, buf []byte) (uint64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, wrapCopyErr(src, dst, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, errors.Errorf("opening %s: %w", src, err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, wrapCopyErr(src, dst, err)
	}

	written, err := io.CopyBuffer(dstFile, srcFile, buf)
	if err != nil {
		dstFile.Close()
		return 0, wrapCopyErr(src, dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return 0, wrapCopyErr(src, dst, err)
	}
	// Chmod rather than OpenFile perm so the umask cannot strip bits.
	if err := os.Chmod(dst, perm); err != nil {
		return 0, wrapCopyErr(src, dst, err)
	}

	return uint64(written), nil
}

func wrapCopyErr(src, dst string, err error) error {
	if IsDiskFull(err) {
		return errors.Errorf("copying %s to %s: destination disk is full: %w", src, dst, err)
	}
	return errors.Errorf("copying %s to %s: %w", src, dst, err)
}

// 💽 IsDiskFull reports whether err is an out-of-space condition
func IsDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
