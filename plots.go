package galmaru

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//PlotFit will render the observed profile together with the fitted model:
//observations as points, the model curve, and the dashed bulge and disk
//components, with the magnitude axis inverted so brighter is up.
func PlotFit(prof *Profile, m *SBModel, path string) error {
	p := plot.New()
	p.Title.Text = "Surface brightness profile"
	p.X.Label.Text = "radius (\")"
	p.Y.Label.Text = "surface brightness (mag)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	obs := make(plotter.XYs, prof.Len())
	for i := range prof.R {
		obs[i].X = prof.R[i]
		obs[i].Y = prof.Mag[i]
	}
	scatter, err := plotter.NewScatter(obs)
	if err != nil {
		return fmt.Errorf("plotting fit: %w", err)
	}
	p.Add(scatter)
	p.Legend.Add("obs", scatter)

	const curvePoints = 200
	maxR := prof.MaxRadius()
	model := make(plotter.XYs, 0, curvePoints)
	bulge := make(plotter.XYs, 0, curvePoints)
	disk := make(plotter.XYs, 0, curvePoints)
	for i := 0; i < curvePoints; i++ {
		r := maxR * float64(i) / float64(curvePoints-1)
		b, d := m.ComponentsAt(r)
		model = append(model, plotter.XY{X: r, Y: m.MagAt(r)})
		bulge = append(bulge, plotter.XY{X: r, Y: b})
		disk = append(disk, plotter.XY{X: r, Y: d})
	}
	modelLine, err := plotter.NewLine(model)
	if err != nil {
		return fmt.Errorf("plotting fit: %w", err)
	}
	bulgeLine, err := plotter.NewLine(bulge)
	if err != nil {
		return fmt.Errorf("plotting fit: %w", err)
	}
	bulgeLine.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	diskLine, err := plotter.NewLine(disk)
	if err != nil {
		return fmt.Errorf("plotting fit: %w", err)
	}
	diskLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(2)}
	p.Add(modelLine, bulgeLine, diskLine)
	p.Legend.Add("model", modelLine)
	p.Legend.Add("bulge", bulgeLine)
	p.Legend.Add("disk", diskLine)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("plotting fit: %w", err)
	}
	return nil
}

//PlotTrace will render the sampled values of one parameter against draw index
func PlotTrace(c *Chain, name, path string) error {
	samples, ok := c.Samples[name]
	if !ok {
		return fmt.Errorf("plotting trace: no parameter %q in chain", name)
	}
	p := plot.New()
	p.Title.Text = name + " trace"
	p.X.Label.Text = "draw"
	p.Y.Label.Text = name

	pts := make(plotter.XYs, len(samples))
	for i, v := range samples {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotting trace: %w", err)
	}
	p.Add(line)
	if err := p.Save(6*vg.Inch, 3*vg.Inch, path); err != nil {
		return fmt.Errorf("plotting trace: %w", err)
	}
	return nil
}

//PlotPosterior will render a histogram approximating the posterior density
//of one parameter
func PlotPosterior(c *Chain, name, path string) error {
	samples, ok := c.Samples[name]
	if !ok {
		return fmt.Errorf("plotting posterior: no parameter %q in chain", name)
	}
	p := plot.New()
	p.Title.Text = name + " posterior"
	p.X.Label.Text = name
	p.Y.Label.Text = "density"

	hist, err := plotter.NewHist(plotter.Values(samples), 40)
	if err != nil {
		return fmt.Errorf("plotting posterior: %w", err)
	}
	hist.Normalize(1)
	p.Add(hist)
	if err := p.Save(6*vg.Inch, 3*vg.Inch, path); err != nil {
		return fmt.Errorf("plotting posterior: %w", err)
	}
	return nil
}
