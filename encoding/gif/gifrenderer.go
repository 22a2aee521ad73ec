// Package gif renders the games of an arena as animated gifs, one frame per ply.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/gorgonia/reversi/game"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Epoch 100000, Game Number: 10000`

	// extra lines below the board: scores, name, epoch and game number, winner
	extraLines = 4
	lastFrame  = 300 // hundredths of a second
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var globPalette = color.Palette{
	color.Gray{0},
	color.Gray{253},
}

// Encoder is a structure that encodes a game state according to the reversi.OutputEncoder interface
type Encoder struct {
	H, W int
	font.Drawer

	out *gif.GIF
	io.Writer
	face font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewGifEncoder with height and width. Flush writes the frames into w.
func NewGifEncoder(w io.Writer, maxH, maxW int) *Encoder {
	return &Encoder{
		H:      -1,
		W:      -1,
		Writer: w,
		maxH:   maxH,
		maxW:   maxW,
		padH:   10,
		padW:   10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
		out: &gif.GIF{LoopCount: -1},
	}
}

// Frames returns the number of frames waiting to be flushed.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	g := ms.State()
	board := g.Board()
	repr := strings.TrimRight(fmt.Sprintf("%v", board), "\n")
	lines := strings.Split(repr, "\n")

	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))
	if !enc.initialized {
		// lazy init of specifications
		enc.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		enc.Drawer.Src = image.Black
		enc.Drawer.Face = enc.face

		// first calculate how long the max length will be
		maxW := max(font.MeasureString(enc.Face, lines[0]).Ceil(), font.MeasureString(enc.Face, dummyLongString).Ceil())
		w := maxW + 2*enc.padW
		h := (len(lines)+extraLines)*dy + 2*enc.padH

		w = min(w, enc.maxW)
		h = min(h, enc.maxH)

		if w == enc.maxW {
			enc.padW = 0
		}
		if h == enc.maxH {
			enc.padH = 0
		}

		enc.H = h
		enc.W = w
		enc.initialized = true
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)
	enc.Dst = im

	y := enc.padH + dy
	write := func(s string) {
		enc.Dot = fixed.P(enc.padW, y)
		enc.DrawString(s)
		y += dy
	}
	for _, s := range lines {
		write(s)
	}
	last := g.LastMove()
	write(fmt.Sprintf("X %v  O %v  last %v", g.Score(game.BlackPlayer), g.Score(game.WhitePlayer), last.Point))
	write(ms.Name())
	write(fmt.Sprintf("Epoch %d, Game Number: %d", ms.Epoch(), ms.GameNumber()))

	var delay int
	if ended, winner := g.Ended(); ended {
		delay = lastFrame
		if winner.IsPlayer() {
			write(fmt.Sprintf("Winner: %v", winner))
		} else {
			write("Draw")
		}
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// Flush writes the gif into the writer, and starts over with no frames.
func (enc *Encoder) Flush() error {
	if len(enc.out.Image) == 0 {
		return nil
	}
	if err := gif.EncodeAll(enc.Writer, enc.out); err != nil {
		return errors.Wrap(err, "Unable to encode the gif")
	}
	enc.out = &gif.GIF{LoopCount: -1}
	return nil
}
