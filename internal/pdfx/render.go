package pdfx

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/ledongthuc/pdf"
)

// DefaultThumbnailWidth is the pixel width of rendered previews.
const DefaultThumbnailWidth = 240

// maxAspect bounds the preview height to maxAspect times its width. Taller
// pages are cropped at the bottom.
const maxAspect = 4

// US Letter, used when a page has no usable MediaBox.
var letterBox = [4]float64{0, 0, 612, 792}

var (
	paper = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ink   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	rule  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

// Fetcher downloads the document behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Renderer draws the layout of a document's first page: every text run
// becomes a block of ink at its position and size, every drawn rectangle a
// grey outline. The result is a PNG data URL.
type Renderer struct {
	fetcher Fetcher
	width   int
}

func NewRenderer(fetcher Fetcher, width int) *Renderer {
	if width <= 0 {
		width = DefaultThumbnailWidth
	}
	return &Renderer{fetcher: fetcher, width: width}
}

func (r *Renderer) Render(ctx context.Context, fileURL string) (string, error) {
	data, err := r.fetcher.Fetch(ctx, fileURL)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := r.RenderFirstPage(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("%w: encode png: %w", common.ErrRender, err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// RenderFirstPage rasterises page 1 of data at the renderer's width.
func (r *Renderer) RenderFirstPage(data []byte) (image.Image, error) {
	reader, err := openReader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRender, err)
	}

	var (
		box     [4]float64
		content pdf.Content
	)
	err = guard(func() error {
		page := reader.Page(1)
		if page.V.IsNull() {
			return fmt.Errorf("first page missing")
		}
		box = mediaBox(page.V)
		content = page.Content()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRender, err)
	}

	pageW, pageH := box[2]-box[0], box[3]-box[1]
	scale := float64(r.width) / pageW
	height := int(math.Round(math.Min(pageH*scale, float64(maxAspect*r.width))))
	height = max(1, height)

	canvas := imaging.New(r.width, height, paper)

	toPixel := func(x, y float64) (int, int) {
		return int((x - box[0]) * scale), int((box[3] - y) * scale)
	}

	for _, rc := range content.Rect {
		x0, y1 := toPixel(rc.Min.X, rc.Min.Y)
		x1, y0 := toPixel(rc.Max.X, rc.Max.Y)
		outline(canvas, image.Rect(x0, y0, x1, y1))
	}

	for _, t := range content.Text {
		x, baseline := toPixel(t.X, t.Y)
		w := max(1, int(math.Ceil(t.W*scale)))
		h := max(1, int(math.Ceil(t.FontSize*scale*0.7)))
		block := image.Rect(x, baseline-h, x+w, baseline)
		draw.Draw(canvas, block.Intersect(canvas.Bounds()), image.NewUniform(ink), image.Point{}, draw.Src)
	}

	return canvas, nil
}

func outline(dst draw.Image, r image.Rectangle) {
	r = r.Canon().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	src := image.NewUniform(rule)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Src)
	}
}

// mediaBox reads the page's MediaBox, following inherited values up the
// page tree.
func mediaBox(v pdf.Value) [4]float64 {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if mb.Kind() == pdf.Array && mb.Len() == 4 {
			var box [4]float64
			for i := range box {
				box[i] = mb.Index(i).Float64()
			}
			if box[2] > box[0] && box[3] > box[1] {
				return box
			}
		}
		v = v.Key("Parent")
	}
	return letterBox
}
