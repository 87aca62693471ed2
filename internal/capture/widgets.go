package capture

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// captureView is the per-frame state the view is drawn from.
type captureView struct {
	Palette  Palette
	TextSize unit.Sp
	Dark     bool
	ErrText  string
}

// drawCaptureView draws the editor panel, the header buttons and the save button.
func drawCaptureView(gtx layout.Context, v captureView, tr Localizer, editor *widget.Editor, saveBtn, closeBtn, themeBtn *widget.Clickable) layout.Dimensions {
	pal := v.Palette
	drawBackground(gtx, pal.BGColor)

	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			// Top row: title, theme toggle, close button
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						th := material.NewTheme()
						th.Palette.Fg = pal.TextColor
						lbl := material.Label(th, unit.Sp(16), tr.T("capture.title"))
						lbl.Font.Weight = font.Medium
						return lbl.Layout(gtx)
					}),
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						return layout.Dimensions{}
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return drawThemeButton(gtx, themeBtn, v.Dark, pal.TextColor)
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return drawCloseButton(gtx, closeBtn, pal.TextDimColor)
					}),
				)
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),

			// Editable text area
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return drawEditorPanel(gtx, pal, v.TextSize, editor, tr.T("capture.hint"))
			}),

			// Error line, only after a failed save
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if v.ErrText == "" {
					return layout.Dimensions{}
				}
				return layout.Inset{Top: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					th := material.NewTheme()
					lbl := material.Label(th, unit.Sp(12), v.ErrText)
					lbl.Color = pal.ErrorColor
					lbl.MaxLines = 2
					return lbl.Layout(gtx)
				})
			}),

			layout.Rigid(layout.Spacer{Height: unit.Dp(10)}.Layout),

			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return drawActionButton(gtx, saveBtn, pal.AccentColor, tr.T("capture.save"))
			}),
		)
	})
}

// drawThemeButton draws a sun (dark theme active) or a filled moon disc.
func drawThemeButton(gtx layout.Context, btn *widget.Clickable, dark bool, col color.NRGBA) layout.Dimensions {
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		size := gtx.Dp(unit.Dp(22))
		if btn.Hovered() {
			col.A = 180
		}

		s := float32(size)
		r := int(s * 0.28)
		c := image.Pt(size/2, size/2)
		disc := clip.Ellipse{Min: c.Sub(image.Pt(r, r)), Max: c.Add(image.Pt(r, r))}

		if dark {
			width := float32(gtx.Dp(unit.Dp(2)))
			paint.FillShape(gtx.Ops, col, clip.Stroke{Path: disc.Path(gtx.Ops), Width: width}.Op())
		} else {
			paint.FillShape(gtx.Ops, col, disc.Op(gtx.Ops))
		}

		return layout.Dimensions{Size: image.Pt(size, size)}
	})
}

// drawBackground fills the whole window.
func drawBackground(gtx layout.Context, col color.NRGBA) {
	rect := clip.Rect{Max: gtx.Constraints.Max}
	paint.FillShape(gtx.Ops, col, rect.Op())
}

// drawEditorPanel draws the panel with editable text.
func drawEditorPanel(gtx layout.Context, pal Palette, textSize unit.Sp, editor *widget.Editor, hint string) layout.Dimensions {
	rr := gtx.Dp(unit.Dp(10))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: image.Pt(gtx.Constraints.Max.X, gtx.Constraints.Max.Y)},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, pal.PanelColor, rect.Op(gtx.Ops))

	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		th := material.NewTheme()
		th.Palette.Fg = pal.TextColor

		ed := material.Editor(th, editor, hint)
		ed.TextSize = textSize
		ed.Color = pal.TextColor
		ed.HintColor = pal.TextDimColor

		return ed.Layout(gtx)
	})
}

// drawCloseButton draws an X button.
func drawCloseButton(gtx layout.Context, btn *widget.Clickable, col color.NRGBA) layout.Dimensions {
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		size := gtx.Dp(unit.Dp(22))

		if btn.Hovered() {
			col = color.NRGBA{R: 255, G: 100, B: 100, A: 255}
		}

		s := float32(size)
		margin := s * 0.25
		width := float32(gtx.Dp(unit.Dp(2)))

		var path clip.Path
		path.Begin(gtx.Ops)
		path.MoveTo(f32.Pt(margin, margin))
		path.LineTo(f32.Pt(s-margin, s-margin))
		path.MoveTo(f32.Pt(s-margin, margin))
		path.LineTo(f32.Pt(margin, s-margin))
		paint.FillShape(gtx.Ops, col, clip.Stroke{Path: path.End(), Width: width}.Op())

		return layout.Dimensions{Size: image.Pt(size, size)}
	})
}

// drawActionButton draws a full-width button with a centered label.
func drawActionButton(gtx layout.Context, btn *widget.Clickable, bgColor color.NRGBA, text string) layout.Dimensions {
	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		currentBg := bgColor
		if btn.Hovered() {
			// Darken on hover
			currentBg = color.NRGBA{
				R: uint8(float32(bgColor.R) * 0.85),
				G: uint8(float32(bgColor.G) * 0.85),
				B: uint8(float32(bgColor.B) * 0.85),
				A: bgColor.A,
			}
		}

		// Record content to measure
		macro := op.Record(gtx.Ops)
		dims := layout.Inset{
			Top: unit.Dp(8), Bottom: unit.Dp(8),
			Left: unit.Dp(12), Right: unit.Dp(12),
		}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
				lbl := material.Label(th, unit.Sp(13), text)
				lbl.Font.Weight = font.Medium
				return lbl.Layout(gtx)
			})
		})
		call := macro.Stop()

		rr := gtx.Dp(unit.Dp(8))
		btnRect := clip.RRect{
			Rect: image.Rectangle{Max: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)},
			NE:   rr, NW: rr, SE: rr, SW: rr,
		}
		paint.FillShape(gtx.Ops, currentBg, btnRect.Op(gtx.Ops))

		call.Add(gtx.Ops)
		return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, dims.Size.Y)}
	})
}
