package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/bitmeter/internal/config"
	"github.com/rileyhilliard/bitmeter/internal/monitor"
	"github.com/rileyhilliard/bitmeter/internal/prefs"
	"github.com/rileyhilliard/bitmeter/internal/store"
	"github.com/rileyhilliard/bitmeter/internal/ui"
)

// statusWindow is how much history the status sparklines cover, in seconds.
const statusWindow = 60

// staleAfter is how old the newest sample may be before status suggests the
// capture service has stopped.
const staleAfter = statusWindow * time.Second

func statusCommand(ctx context.Context, out io.Writer, opts config.LoadOptions, now time.Time) error {
	sess, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	latest, ok, err := sess.samples.Latest(ctx)
	if err != nil {
		return err
	}

	fields := []ui.Field{{Label: "Database", Value: sess.cfg.DB}}
	if !ok {
		fields = append(fields, ui.Field{Label: "Latest", Value: ui.Warning("no samples recorded yet")})
		fmt.Fprintln(out, ui.RenderFields(fields))
		return nil
	}

	pair, samples, err := sess.samples.Query(ctx, now.Unix()-statusWindow, now.Unix())
	if err != nil {
		return err
	}

	seen := time.Unix(latest.Timestamp, 0)
	age := humanize.RelTime(seen, now, "ago", "from now")
	if now.Sub(seen) > staleAfter {
		age += " " + ui.Warning("(is the capture service running?)")
	}

	fields = append(fields,
		ui.Field{Label: "Latest", Value: age},
		ui.Field{Label: "Rates", Value: fmt.Sprintf("%s %s/s  %s %s/s",
			ui.SymbolDownload, humanize.Bytes(uint64(latest.Download)),
			ui.SymbolUpload, humanize.Bytes(uint64(latest.Upload)))},
		ui.Field{Label: "Caption", Value: monitor.Caption(pair)},
	)

	ceiling := scaleCeiling(sess.prefs)
	dl, ul := perSecond(samples, now.Unix())
	fields = append(fields,
		ui.Field{Label: ui.SymbolDownload + " last min", Value: sparkline(dl, ceiling)},
		ui.Field{Label: ui.SymbolUpload + " last min", Value: sparkline(ul, ceiling)},
	)

	fmt.Fprintln(out, ui.RenderFields(fields))
	return nil
}

// perSecond spreads samples over the statusWindow seconds before now,
// oldest first. Seconds without a row count as zero.
func perSecond(samples []store.Sample, now int64) (dl, ul []float64) {
	dl = make([]float64, statusWindow)
	ul = make([]float64, statusWindow)
	start := now - statusWindow
	for _, s := range samples {
		i := s.Timestamp - start
		if i < 0 || i >= statusWindow {
			continue
		}
		dl[i] = float64(s.Download)
		ul[i] = float64(s.Upload)
	}
	return dl, ul
}

// scaleCeiling is the graph scale in bytes per second, or zero to let the
// sparkline scale itself when the preference is unusable.
func scaleCeiling(set *prefs.Set) float64 {
	scale, err := set.Number(prefs.Scale)
	if err != nil || scale <= 0 {
		return 0
	}
	return monitor.ScaleBytes(scale)
}

func sparkline(data []float64, ceiling float64) string {
	peak := 0.0
	for _, v := range data {
		peak = max(peak, v)
	}
	color := ui.ColorSuccess
	if ceiling > 0 {
		color = ui.RateColor(peak / ceiling)
	}
	return ui.RenderSparkline(data, statusWindow, ceiling, color)
}
