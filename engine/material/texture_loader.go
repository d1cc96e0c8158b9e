package material

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// textureLoader is the implementation of the TextureLoader interface.
type textureLoader struct {
	logger  *slog.Logger
	workers int
	maxSize int
}

// TextureLoader decodes the textures requested by a set of materials in parallel and
// assigns them. Decoding runs on a worker pool; assignment happens on the caller's goroutine
// after every decode has finished.
type TextureLoader interface {
	// Load decodes every distinct TexturePath among mats. Materials sharing a path share
	// one Texture. A failed path gets PlaceholderTexture and a logged warning.
	//
	// Parameters:
	//   - mats: the materials to load textures for
	//
	// Returns:
	//   - error: the joined load failures, each wrapping ErrAssetLoad, or nil
	Load(mats ...Material) error
}

var _ TextureLoader = &textureLoader{}

// NewTextureLoader creates a TextureLoader using one worker per spare CPU.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - TextureLoader: the new loader
func NewTextureLoader(options ...TextureLoaderOption) TextureLoader {
	l := &textureLoader{
		logger:  slog.Default(),
		workers: max(runtime.NumCPU()-1, 1),
		maxSize: DefaultMaxTextureSize,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// loadResult is the outcome of decoding one path.
type loadResult struct {
	texture *Texture
	err     error
}

func (l *textureLoader) Load(mats ...Material) error {
	var paths []string
	index := make(map[string]int)
	for _, m := range mats {
		p := m.TexturePath()
		if p == "" {
			continue
		}
		if _, ok := index[p]; !ok {
			index[p] = len(paths)
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}

	results := make([]loadResult, len(paths))
	pool := worker.NewDynamicWorkerPool(min(l.workers, len(paths)), len(paths), time.Second)
	defer pool.Stop()

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: p,
			Do: func() (any, error) {
				defer wg.Done()
				tex, err := LoadTexture(p, l.maxSize)
				results[i] = loadResult{texture: tex, err: err}
				return tex, err
			},
		})
	}
	wg.Wait()

	var errs []error
	for i, p := range paths {
		if results[i].err != nil {
			l.logger.Warn("texture load failed, using placeholder", "path", p, "error", results[i].err)
			results[i].texture = PlaceholderTexture(p)
			errs = append(errs, results[i].err)
		}
	}
	for _, m := range mats {
		if p := m.TexturePath(); p != "" {
			m.SetTexture(results[index[p]].texture)
		}
	}
	return errors.Join(errs...)
}
