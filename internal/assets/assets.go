// Package assets serves the demo's images by path. Loading only hands out a
// Handle; the file is decoded the first time something needs its pixels, the
// way a game engine's asset server defers work to the render side.
package assets

import (
	"embed"
	"fmt"
	"image"
	"image/png"
	"io/fs"
)

//go:embed *.png
var embedded embed.FS

// Paths of the embedded images.
const (
	BunnyPath = "wabbit_alpha.png"
	TilePath  = "background_tile.png"
)

// Embedded returns the file system holding the bundled images.
func Embedded() fs.FS {
	return embedded
}

// Handle names an image inside the server's file system.
type Handle string

// Path returns the file path the handle was loaded from.
func (h Handle) Path() string {
	return string(h)
}

// Server resolves handles to decoded images and caches them. It is not safe
// for concurrent use; the game loop owns it.
type Server struct {
	fsys    fs.FS
	decoded map[Handle]image.Image
	failed  map[Handle]error
}

// NewServer creates a server reading from fsys.
func NewServer(fsys fs.FS) *Server {
	return &Server{
		fsys:    fsys,
		decoded: make(map[Handle]image.Image),
		failed:  make(map[Handle]error),
	}
}

// Load returns the handle for path without touching the file.
func (s *Server) Load(path string) Handle {
	return Handle(path)
}

// Decode returns the decoded image behind h. A failed decode is remembered and
// returned again on later calls without re-reading the file.
func (s *Server) Decode(h Handle) (image.Image, error) {
	if img, ok := s.decoded[h]; ok {
		return img, nil
	}
	if err, ok := s.failed[h]; ok {
		return nil, err
	}

	img, err := s.decode(h)
	if err != nil {
		s.failed[h] = err
		return nil, err
	}
	s.decoded[h] = img
	return img, nil
}

func (s *Server) decode(h Handle) (image.Image, error) {
	f, err := s.fsys.Open(h.Path())
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", h, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", h, err)
	}
	return img, nil
}

// Size returns the pixel size of the image behind h.
func (s *Server) Size(h Handle) (int, int, error) {
	img, err := s.Decode(h)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}
