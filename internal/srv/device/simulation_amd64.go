package device

import (
	"log"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

type simulationWindow struct {
	window *app.Window
}

func (d *Display) startSimulation() {
	w := float32(d.mirror.Width * 2)
	h := float32(d.mirror.Height * 2)
	d.simulation.window = app.NewWindow(
		app.Title("monoscope"),
		app.Size(unit.Px(w), unit.Px(h)),
		app.MinSize(unit.Px(w/2), unit.Px(h/2)),
	)
	go func() {
		if err := d.gioloop(); err != nil {
			log.Fatal(err)
		}
	}()
	go app.Main()
}

func (d *Display) invalidateSimulationWindow() {
	if d.simulation.window != nil {
		d.simulation.window.Invalidate()
	}
}

func (d *Display) closeSimulationWindow() {
	if d.simulation.window != nil {
		d.simulation.window.Close()
	}
}

func (d *Display) gioloop() error {
	var ops op.Ops
	for {
		e := <-d.simulation.window.Events()
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			img := widget.Image{Src: paint.NewImageOp(d.Snapshot()), Fit: widget.Contain}
			img.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
