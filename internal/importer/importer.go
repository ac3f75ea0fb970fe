// Package importer loads dropped asset files off the frame thread and hands
// the results back to it.
package importer

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrImageDecode       = errors.New("image decode failed")
)

type Kind int

const (
	KindModel Kind = iota
	KindImage
)

func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "model"
}

var modelExts = map[string]bool{
	".gltf": true,
	".glb":  true,
	".obj":  true,
	".iqm":  true,
	".vox":  true,
	".m3d":  true,
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// Result is one finished import. Models carry only the path, since GPU
// upload has to happen on the frame thread; images carry decoded pixels.
type Result struct {
	Source string
	Path   string
	Name   string
	Kind   Kind
	Image  image.Image
	Err    error
}

type Options struct {
	Workers      int
	MaxTokenSize int
	// AssetDir, when set, receives a copy of every imported file under
	// models/ or tokens/.
	AssetDir string
}

type Importer struct {
	opts     Options
	results  chan Result
	inflight sync.WaitGroup
}

const resultBuffer = 64

func New(opts Options) *Importer {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Importer{opts: opts, results: make(chan Result, resultBuffer)}
}

// Classify reports what kind of asset path is by its extension.
func Classify(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case modelExts[ext]:
		return KindModel, nil
	case imageExts[ext]:
		return KindImage, nil
	}
	return 0, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
}

// Import starts loading paths in the background and returns immediately.
// Every path yields exactly one Result, successful or not.
func (im *Importer) Import(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	im.inflight.Add(1)
	go func() {
		defer im.inflight.Done()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(im.opts.Workers)
		for _, p := range paths {
			g.Go(func() error {
				res := im.load(p)
				if res.Err != nil {
					log.Printf("import: %s: %v", p, res.Err)
				} else {
					log.Printf("import: loaded %s %s", res.Kind, res.Path)
				}
				select {
				case im.results <- res:
				case <-gctx.Done():
				}
				// Failures are reported through Result, never by cancelling siblings.
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Wait blocks until every started import has delivered its result.
func (im *Importer) Wait() {
	im.inflight.Wait()
}

// Drain hands every result that is ready to fn without blocking.
func (im *Importer) Drain(fn func(Result)) int {
	n := 0
	for {
		select {
		case res := <-im.results:
			fn(res)
			n++
		default:
			return n
		}
	}
}

func (im *Importer) load(src string) Result {
	res := Result{Source: src, Path: src, Name: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))}

	kind, err := Classify(src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Kind = kind

	info, err := os.Stat(src)
	if err != nil {
		res.Err = fmt.Errorf("stat: %w", err)
		return res
	}
	if info.IsDir() {
		res.Err = fmt.Errorf("%s is a directory: %w", src, ErrUnsupportedFormat)
		return res
	}

	if im.opts.AssetDir != "" {
		sub := "models"
		if kind == KindImage {
			sub = "tokens"
		}
		dst, err := copyInto(src, filepath.Join(im.opts.AssetDir, sub))
		if err != nil {
			res.Err = err
			return res
		}
		res.Path = dst
	}

	if kind == KindImage {
		img, err := decodeImage(res.Path, im.opts.MaxTokenSize)
		if err != nil {
			res.Err = err
			return res
		}
		res.Image = img
	}
	return res
}

func decodeImage(path string, maxSize int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return Downscale(img, maxSize), nil
}

// Downscale shrinks img so its longest side is at most maxSize, keeping the
// aspect ratio. Images already small enough are returned as is.
func Downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := max(w, h)
	if maxSize <= 0 || longest <= maxSize {
		return img
	}
	nw := max(1, w*maxSize/longest)
	nh := max(1, h*maxSize/longest)
	return transform.Resize(img, nw, nh, transform.Linear)
}

// copyInto copies src into dir, unless it already lives there.
func copyInto(src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if absSrc, err := filepath.Abs(src); err == nil {
		if absDst, err := filepath.Abs(dst); err == nil && absSrc == absDst {
			return dst, nil
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
