package game

import (
	"cmp"
	"image/color"
	"log"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/internal/assets"
	"github.com/plus3/bunnymark/internal/bunnymark"
)

// ClearColor is the background behind every sprite.
var ClearColor = color.RGBA{43, 44, 47, 255}

// Screen is the image the render schedule draws into this frame.
type Screen struct {
	*ebiten.Image
}

type drawItem struct {
	transform *bunnymark.Transform
	image     *ebiten.Image
}

// RenderSystem draws every sprite centred on its Transform, lowest Z first,
// then the labels on top. World coordinates have the origin at the screen
// centre and y pointing up.
type RenderSystem struct {
	Screen  ecs.Singleton[Screen]
	Sprites ecs.Query[struct {
		*bunnymark.Transform
		*bunnymark.Sprite
	}]
	Labels ecs.Query[struct{ *bunnymark.Label }]

	Images *ImageCache

	items []drawItem
	op    ebiten.DrawImageOptions
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.MustGet().Image
	if screen == nil {
		return
	}
	screen.Fill(ClearColor)

	s.items = s.items[:0]
	for sprite := range s.Sprites.Values() {
		img := s.Images.Get(sprite.Sprite.Image)
		if img == nil {
			continue
		}
		s.items = append(s.items, drawItem{transform: sprite.Transform, image: img})
	}
	slices.SortStableFunc(s.items, func(a, b drawItem) int {
		return cmp.Compare(a.transform.Z, b.transform.Z)
	})

	bounds := screen.Bounds()
	cx, cy := float64(bounds.Dx())/2, float64(bounds.Dy())/2
	s.op.Filter = ebiten.FilterNearest
	for _, item := range s.items {
		size := item.image.Bounds()
		s.op.GeoM.Reset()
		s.op.GeoM.Translate(
			cx+item.transform.X-float64(size.Dx())/2,
			cy-item.transform.Y-float64(size.Dy())/2,
		)
		screen.DrawImage(item.image, &s.op)
	}
	clear(s.items)

	for l := range s.Labels.Values() {
		ebitenutil.DebugPrintAt(screen, l.Label.Text, int(l.Label.X), int(l.Label.Y))
	}
}

// ImageCache uploads decoded assets to the GPU once per handle. A handle
// that fails to decode is logged once and then skipped.
type ImageCache struct {
	server *assets.Server
	logger *log.Logger
	images map[assets.Handle]*ebiten.Image
}

func NewImageCache(server *assets.Server, logger *log.Logger) *ImageCache {
	return &ImageCache{
		server: server,
		logger: logger,
		images: make(map[assets.Handle]*ebiten.Image),
	}
}

// Get returns the GPU image for h, or nil if it cannot be decoded.
func (c *ImageCache) Get(h assets.Handle) *ebiten.Image {
	if img, ok := c.images[h]; ok {
		return img
	}

	decoded, err := c.server.Decode(h)
	if err != nil {
		c.logger.Printf("render: skipping sprite: %v", err)
		c.images[h] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	c.images[h] = img
	return img
}
